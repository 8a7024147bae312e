package app

import (
	"context"
	"errors"

	"courier-payouts/internal/apperr"
	"courier-payouts/internal/service/deliveries"
	"courier-payouts/internal/transport/kafka"
)

// makeDeliveriesKafka adapts the processor to the consumer. Events that can never be stored
// (malformed, or for an unknown courier) are marked permanent so the partition keeps moving.
func makeDeliveriesKafka(p *deliveries.Processor) kafka.HandleFunc {
	return func(ctx context.Context, event deliveries.Event) error {
		err := p.Handle(ctx, event)
		if err == nil {
			return nil
		}
		if errors.Is(err, apperr.Invalid) || errors.Is(err, apperr.InvalidAmount) || errors.Is(err, apperr.NotFound) {
			return kafka.Permanent(err)
		}
		return err
	}
}
