package middleware

import (
	"context"
	"time"
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

type Metrics interface {
	ObserveHTTP(method, route, status string, d time.Duration)
}

// Limiter decides whether one more request for key fits the budget
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
