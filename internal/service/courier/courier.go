package courier

import (
	"context"
	"strings"
	"time"

	"courier-payouts/internal/apperr"
	"courier-payouts/internal/domain"
)

const maxNameLen = 200

// Service coordinates courier business logic and orchestrates repository calls.
type Service struct {
	repo             courierRepository
	operationTimeout time.Duration
}

// NewService creates and configures a courier Service.
func NewService(r courierRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLen {
		return apperr.Field("full_name", apperr.Invalid)
	}
	return nil
}

// validateCreate validates a courier for creation and fills defaults.
func validateCreate(c *domain.Courier) error {
	if c == nil {
		return apperr.Invalid
	}
	if err := validateName(c.FullName); err != nil {
		return err
	}
	c.FullName = strings.TrimSpace(c.FullName)
	c.Phone = strings.TrimSpace(c.Phone)
	if c.Phone != "" && !domain.ValidatePhone(c.Phone) {
		return apperr.Field("phone", apperr.Invalid)
	}
	if c.TransportType == "" {
		c.TransportType = domain.TransportOnFoot
	}
	if !c.TransportType.Valid() {
		return apperr.Field("transport_type", apperr.Invalid)
	}
	return nil
}

func validateUpdate(u *domain.PartialCourierUpdate) error {
	if u.ID <= 0 {
		return apperr.Field("id", apperr.Invalid)
	}
	if u.FullName == nil && u.Phone == nil && u.TransportType == nil {
		return apperr.Invalid
	}
	if u.FullName != nil {
		if err := validateName(*u.FullName); err != nil {
			return err
		}
		name := strings.TrimSpace(*u.FullName)
		u.FullName = &name
	}
	if u.Phone != nil {
		phone := strings.TrimSpace(*u.Phone)
		if phone != "" && !domain.ValidatePhone(phone) {
			return apperr.Field("phone", apperr.Invalid)
		}
		u.Phone = &phone
	}
	if u.TransportType != nil && !u.TransportType.Valid() {
		return apperr.Field("transport_type", apperr.Invalid)
	}
	return nil
}

// Get retrieves a courier by its ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Courier, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound
	}
	return c, nil
}

// List returns couriers with optional pagination
func (s *Service) List(ctx context.Context, limit, offset *int) ([]domain.Courier, error) {
	if limit != nil && *limit < 0 {
		return nil, apperr.Field("limit", apperr.Invalid)
	}
	if offset != nil && *offset < 0 {
		return nil, apperr.Field("offset", apperr.Invalid)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx, limit, offset)
}

// Create persists a new courier and returns its generated ID.
func (s *Service) Create(ctx context.Context, c *domain.Courier) (int64, error) {
	if err := validateCreate(c); err != nil {
		return 0, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Create(ctx, c)
}

// UpdatePartial applies a partial update to a courier. It returns true if a row was updated.
func (s *Service) UpdatePartial(ctx context.Context, u domain.PartialCourierUpdate) (bool, error) {
	if err := validateUpdate(&u); err != nil {
		return false, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.UpdatePartial(ctx, u)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, apperr.NotFound
	}
	return true, nil
}
