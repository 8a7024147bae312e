package repository

import (
	"context"
	"fmt"

	"courier-payouts/internal/apperr"
	"courier-payouts/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

const courierColumns = `id, full_name, COALESCE(phone, ''), transport_type, created_at`

// CourierRepo represents courier repository.
type CourierRepo struct{ db *pgxpool.Pool }

// NewCourierRepo creates a new CourierRepo.
func NewCourierRepo(db *pgxpool.Pool) *CourierRepo { return &CourierRepo{db: db} }

// Get - returns courier by its ID.
func (r *CourierRepo) Get(ctx context.Context, id int64) (*domain.Courier, error) {
	var c domain.Courier
	err := r.db.QueryRow(ctx,
		`SELECT `+courierColumns+` FROM couriers WHERE id=$1`, id,
	).Scan(&c.ID, &c.FullName, &c.Phone, &c.TransportType, &c.CreatedAt)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, unavailable(fmt.Sprintf("get courier %d", id), err)
	}
	return &c, nil
}

// Exists reports whether a courier with the given id is registered.
func (r *CourierRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM couriers WHERE id=$1)`, id).Scan(&ok)
	if err != nil {
		return false, unavailable(fmt.Sprintf("courier %d exists", id), err)
	}
	return ok, nil
}

// List returns couriers ordered by id. If limit/offset are nil, returns the full list.
func (r *CourierRepo) List(ctx context.Context, limit, offset *int) ([]domain.Courier, error) {
	q := `SELECT ` + courierColumns + ` FROM couriers ORDER BY id`
	args := make([]any, 0, 2)
	if limit != nil {
		q += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, *limit)
	}
	if offset != nil {
		q += fmt.Sprintf(" OFFSET $%d", len(args)+1)
		args = append(args, *offset)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, unavailable("list couriers", err)
	}
	defer rows.Close()
	capacity := 0
	if limit != nil && *limit > 0 {
		capacity = *limit
	}
	out := make([]domain.Courier, 0, capacity)
	for rows.Next() {
		var c domain.Courier
		if err := rows.Scan(&c.ID, &c.FullName, &c.Phone, &c.TransportType, &c.CreatedAt); err != nil {
			return nil, unavailable("scan courier", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list couriers", err)
	}
	return out, nil
}

// Create - creates a new courier. An empty phone is stored as NULL.
func (r *CourierRepo) Create(ctx context.Context, c *domain.Courier) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO couriers(full_name, phone, transport_type)
		 VALUES($1, NULLIF($2, ''), $3) RETURNING id, created_at`,
		c.FullName, c.Phone, c.TransportType).Scan(&id, &c.CreatedAt)
	if err != nil {
		if IsDuplicate(err) {
			return 0, apperr.Conflict
		}
		return 0, unavailable("create courier", err)
	}
	return id, nil
}

// UpdatePartial applies a partial update to a courier and returns true if a row was affected.
// A nil field is left as is; an empty phone clears it.
func (r *CourierRepo) UpdatePartial(ctx context.Context, u domain.PartialCourierUpdate) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE couriers
        SET
            full_name      = COALESCE($2, full_name),
            phone          = CASE WHEN $3::text IS NULL THEN phone ELSE NULLIF($3::text, '') END,
            transport_type = COALESCE($4, transport_type),
            updated_at     = now()
        WHERE id = $1
    `, u.ID, u.FullName, u.Phone, u.TransportType)

	if err != nil {
		if IsDuplicate(err) {
			return false, apperr.Conflict
		}
		return false, unavailable(fmt.Sprintf("update courier %d", u.ID), err)
	}
	return ct.RowsAffected() > 0, nil
}
