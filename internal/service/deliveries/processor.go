package deliveries

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"courier-payouts/internal/apperr"
	"courier-payouts/internal/domain"
	"courier-payouts/internal/logx"
)

const maxAddressLen = 500

// Outcomes reported to the ingestion counter.
const (
	OutcomeInserted  = "inserted"
	OutcomeDuplicate = "duplicate"
	OutcomeIgnored   = "ignored"
	OutcomeInvalid   = "invalid"
	OutcomeFailed    = "failed"
)

type counterVec interface {
	WithLabelValues(lvs ...string) prometheus.Counter
}

// Processor records fulfilled orders into the delivered-order projection.
type Processor struct {
	store            OrderStore
	invalidator      Invalidator
	outcomes         counterVec
	logger           logx.Logger
	operationTimeout time.Duration
	now              func() time.Time
	factory          *actionFactory
}

// NewProcessor creates a Processor. invalidator and outcomes may be nil.
func NewProcessor(store OrderStore, invalidator Invalidator, outcomes counterVec, logger logx.Logger, timeout time.Duration) *Processor {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Processor{
		store:            store,
		invalidator:      invalidator,
		outcomes:         outcomes,
		logger:           logger,
		operationTimeout: timeout,
		now:              time.Now,
	}
	p.factory = newActionFactory(p.onDelivered)
	return p
}

func (p *Processor) count(outcome string) {
	if p.outcomes != nil {
		p.outcomes.WithLabelValues(outcome).Inc()
	}
}

// Handle processes a single Event. Invalid events return an error wrapping apperr.Invalid,
// events for unknown couriers one wrapping apperr.NotFound; both will never succeed on redelivery.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	fn, ok := p.factory.get(e.Status)
	if !ok {
		p.count(OutcomeIgnored)
		return nil
	}
	return fn(ctx, e)
}

func validate(e Event) error {
	if strings.TrimSpace(e.OrderID) == "" {
		return apperr.Field("order_id", apperr.Invalid)
	}
	if e.CourierID <= 0 {
		return apperr.Field("courier_id", apperr.Invalid)
	}
	if e.ShippingCost.IsNegative() || !domain.HasCentPrecision(e.ShippingCost) {
		return apperr.Field("shipping_cost", apperr.InvalidAmount)
	}
	if len(e.DeliveryAddress) > maxAddressLen {
		return apperr.Field("delivery_address", apperr.Invalid)
	}
	return nil
}

func (p *Processor) onDelivered(ctx context.Context, e Event) error {
	if err := validate(e); err != nil {
		p.count(OutcomeInvalid)
		return fmt.Errorf("order %q: %w", e.OrderID, err)
	}

	deliveredAt := e.DeliveredAt.UTC()
	if e.DeliveredAt.IsZero() {
		deliveredAt = p.now().UTC()
	}
	d := &domain.DeliveredOrder{
		CourierID:       e.CourierID,
		OrderID:         strings.TrimSpace(e.OrderID),
		ShippingCost:    e.ShippingCost,
		DeliveredAt:     deliveredAt,
		DeliveryAddress: strings.TrimSpace(e.DeliveryAddress),
	}

	ctx, cancel := context.WithTimeout(ctx, p.operationTimeout)
	defer cancel()

	inserted, err := p.store.Insert(ctx, d)
	if err != nil {
		p.count(OutcomeFailed)
		return err
	}
	if !inserted {
		p.count(OutcomeDuplicate)
		p.logger.Debug("delivered order already recorded", logx.String("order_id", d.OrderID))
		return nil
	}

	p.count(OutcomeInserted)
	p.logger.Info("delivered order recorded",
		logx.CourierID(d.CourierID),
		logx.String("order_id", d.OrderID),
		logx.String("shipping_cost", domain.FormatMoney(d.ShippingCost)),
	)
	if p.invalidator != nil {
		if err := p.invalidator.Invalidate(ctx, d.CourierID); err != nil {
			p.logger.Warn("balance invalidation failed", logx.CourierID(d.CourierID), logx.Err(err))
		}
	}
	return nil
}
