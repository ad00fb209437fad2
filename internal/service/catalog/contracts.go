package catalog

import "github.com/m04kA/mehndi-booking-service/internal/service/pricing"

// PriceTable exposes the pricing rules in effect
type PriceTable interface {
	Rules() pricing.Rules
}

type Logger interface {
	Info(format string, v ...interface{})
}
