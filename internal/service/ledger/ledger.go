package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"courier-payouts/internal/apperr"
	"courier-payouts/internal/domain"
	"courier-payouts/internal/logx"
	"courier-payouts/internal/ports/payouttx"
)

const (
	maxReferenceLen = 100
	maxNotesLen     = 1000
)

// maxAmount is the largest value a NUMERIC(12,2) column holds.
var maxAmount = decimal.RequireFromString("9999999999.99")

// Service is the append-only payout ledger.
type Service struct {
	couriers         courierLookup
	payouts          payoutReader
	tx               payouttx.Runner
	logger           logx.Logger
	invalidator      Invalidator
	recorded         counterVec
	writeFailures    counter
	operationTimeout time.Duration
	writeTimeout     time.Duration
	now              func() time.Time
	newID            func() uuid.UUID
}

// Option configures optional Service collaborators.
type Option func(*Service)

// WithInvalidator registers a hook run after every recorded payout.
func WithInvalidator(inv Invalidator) Option {
	return func(s *Service) { s.invalidator = inv }
}

// WithMetrics counts recorded payouts by method and failed writes.
func WithMetrics(recorded counterVec, writeFailures counter) Option {
	return func(s *Service) {
		s.recorded = recorded
		s.writeFailures = writeFailures
	}
}

// WithClock overrides the payout timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides how payout ids are generated.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(s *Service) { s.newID = gen }
}

// NewService creates the ledger. readTimeout bounds listing, writeTimeout bounds the insert transaction.
func NewService(
	couriers courierLookup,
	payouts payoutReader,
	tx payouttx.Runner,
	logger logx.Logger,
	readTimeout, writeTimeout time.Duration,
	opts ...Option,
) *Service {
	if readTimeout <= 0 {
		readTimeout = 3 * time.Second
	}
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	s := &Service{
		couriers:         couriers,
		payouts:          payouts,
		tx:               tx,
		logger:           logger,
		operationTimeout: readTimeout,
		writeTimeout:     writeTimeout,
		now:              time.Now,
		newID:            uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListPayouts returns the courier's payouts, newest first, with their total.
func (s *Service) ListPayouts(ctx context.Context, courierID int64) (domain.PayoutHistory, error) {
	if courierID <= 0 {
		return domain.PayoutHistory{}, apperr.Field("courier_id", apperr.Invalid)
	}

	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()

	ok, err := s.couriers.Exists(ctx, courierID)
	if err != nil {
		return domain.PayoutHistory{}, err
	}
	if !ok {
		return domain.PayoutHistory{}, fmt.Errorf("courier %d: %w", courierID, apperr.NotFound)
	}

	payouts, err := s.payouts.ListByCourier(ctx, courierID)
	if err != nil {
		return domain.PayoutHistory{}, err
	}
	if payouts == nil {
		payouts = []domain.Payout{}
	}

	return domain.PayoutHistory{
		CourierID: courierID,
		Records:   payouts,
		TotalPaid: domain.SumPayouts(payouts),
	}, nil
}

func validate(in *domain.NewPayout) error {
	if in.CourierID <= 0 {
		return apperr.Field("courier_id", apperr.Invalid)
	}
	if !in.Amount.IsPositive() || !domain.HasCentPrecision(in.Amount) || in.Amount.GreaterThan(maxAmount) {
		return apperr.Field("amount", apperr.InvalidAmount)
	}
	if !in.Method.Valid() {
		return apperr.Field("method", apperr.InvalidMethod)
	}
	in.Reference = strings.TrimSpace(in.Reference)
	if len(in.Reference) > maxReferenceLen {
		return apperr.Field("reference", apperr.Invalid)
	}
	in.Notes = strings.TrimSpace(in.Notes)
	if len(in.Notes) > maxNotesLen {
		return apperr.Field("notes", apperr.Invalid)
	}
	return nil
}

// RecordPayout validates and appends exactly one payout. The insert is never retried here.
// It runs detached from the caller's cancellation, bounded by the write timeout, so it
// either commits or rolls back as a whole. A failed write returns *WriteError.
func (s *Service) RecordPayout(ctx context.Context, in domain.NewPayout) (domain.Payout, error) {
	if err := validate(&in); err != nil {
		return domain.Payout{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.Payout{}, err
	}

	p := domain.Payout{
		ID:        s.newID(),
		CourierID: in.CourierID,
		Amount:    in.Amount,
		PaidAt:    s.now().UTC().Truncate(time.Microsecond),
		Method:    in.Method,
		Reference: in.Reference,
		Notes:     in.Notes,
	}
	log := s.logger.With(logx.CourierID(p.CourierID), logx.String("payout_id", p.ID.String()))

	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.writeTimeout)
	defer cancel()

	err := s.tx.WithTx(wctx, func(tx payouttx.Repository) error {
		ok, err := tx.LockCourier(wctx, p.CourierID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("courier %d: %w", p.CourierID, apperr.NotFound)
		}
		return tx.InsertPayout(wctx, &p)
	})
	if err != nil {
		if errors.Is(err, apperr.NotFound) {
			return domain.Payout{}, err
		}
		if s.writeFailures != nil {
			s.writeFailures.Inc()
		}
		log.Error("payout write failed", logx.Err(err))
		return domain.Payout{}, &WriteError{PayoutID: p.ID, Err: err}
	}

	if s.recorded != nil {
		s.recorded.WithLabelValues(string(p.Method)).Inc()
	}
	log.Info("payout recorded",
		logx.String("amount", domain.FormatMoney(p.Amount)),
		logx.String("method", string(p.Method)),
	)

	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(wctx, p.CourierID); err != nil {
			log.Warn("balance invalidation failed", logx.Err(err))
		}
	}
	return p, nil
}
