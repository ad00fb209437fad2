package escalation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m04kA/mehndi-booking-service/internal/domain"
)

// Sink receives escalations
type Sink interface {
	Escalate(ctx context.Context, item domain.ReconciliationItem) error
}

// Logger is the logging interface of the fanout
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Fanout delivers each escalation to every sink
type Fanout struct {
	sinks  []Sink
	logger Logger
}

func NewFanout(logger Logger, sinks ...Sink) *Fanout {
	return &Fanout{sinks: sinks, logger: logger}
}

// Escalate succeeds when at least one sink accepted the item. When every sink
// fails the item is written to the error log in full.
func (f *Fanout) Escalate(ctx context.Context, item domain.ReconciliationItem) error {
	var errs []error
	delivered := 0
	for i, s := range f.sinks {
		if err := s.Escalate(ctx, item); err != nil {
			f.logger.Warn("Escalation: sink %d failed for payment_intent=%s: %v", i, item.PaymentIntentID, err)
			errs = append(errs, err)
			continue
		}
		delivered++
	}

	if delivered > 0 {
		return nil
	}

	body, _ := json.Marshal(item)
	f.logger.Error("Escalation: NOT DELIVERED, manual action required: %s", string(body))
	if len(errs) == 0 {
		return fmt.Errorf("%w: no escalation sinks configured", domain.ErrIntegration)
	}
	return fmt.Errorf("%w: escalation failed: %w", domain.ErrIntegration, errors.Join(errs...))
}
