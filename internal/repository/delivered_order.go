package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"courier-payouts/internal/apperr"
	"courier-payouts/internal/domain"
)

// DeliveredOrderRepo reads and appends the delivered-order projection.
type DeliveredOrderRepo struct{ db *pgxpool.Pool }

// NewDeliveredOrderRepo creates a new DeliveredOrderRepo.
func NewDeliveredOrderRepo(db *pgxpool.Pool) *DeliveredOrderRepo {
	return &DeliveredOrderRepo{db: db}
}

// ListByCourier returns the courier's delivered orders, most recent first.
func (r *DeliveredOrderRepo) ListByCourier(ctx context.Context, courierID int64) ([]domain.DeliveredOrder, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, courier_id, order_id, shipping_cost, delivered_at, delivery_address
		FROM delivered_orders
		WHERE courier_id = $1
		ORDER BY delivered_at DESC, id DESC
	`, courierID)
	if err != nil {
		return nil, unavailable(fmt.Sprintf("list delivered orders of courier %d", courierID), err)
	}
	defer rows.Close()

	out := make([]domain.DeliveredOrder, 0)
	for rows.Next() {
		var d domain.DeliveredOrder
		if err := rows.Scan(&d.ID, &d.CourierID, &d.OrderID, &d.ShippingCost, &d.DeliveredAt, &d.DeliveryAddress); err != nil {
			return nil, unavailable("scan delivered order", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(fmt.Sprintf("list delivered orders of courier %d", courierID), err)
	}
	return out, nil
}

// Insert stores a delivered order once per order id. It reports false when the order
// was already recorded.
func (r *DeliveredOrderRepo) Insert(ctx context.Context, d *domain.DeliveredOrder) (bool, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO delivered_orders (courier_id, order_id, shipping_cost, delivered_at, delivery_address)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (order_id) DO NOTHING
		RETURNING id
	`, d.CourierID, d.OrderID, d.ShippingCost, d.DeliveredAt, d.DeliveryAddress).Scan(&d.ID)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		if IsForeignKeyViolation(err) {
			return false, fmt.Errorf("insert delivered order %s: courier %d: %w", d.OrderID, d.CourierID, apperr.NotFound)
		}
		return false, unavailable(fmt.Sprintf("insert delivered order %s", d.OrderID), err)
	}
	return true, nil
}
