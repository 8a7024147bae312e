package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"courier-payouts/internal/domain"
	"courier-payouts/internal/ports/payouttx"
)

// PayoutRepo represents the append-only payout ledger storage.
type PayoutRepo struct{ db *pgxpool.Pool }

// NewPayoutRepo creates a new PayoutRepo.
func NewPayoutRepo(db *pgxpool.Pool) *PayoutRepo { return &PayoutRepo{db: db} }

// ListByCourier returns the courier's payouts, most recent first.
func (r *PayoutRepo) ListByCourier(ctx context.Context, courierID int64) ([]domain.Payout, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, courier_id, amount, paid_at, method, reference, notes
		FROM courier_payouts
		WHERE courier_id = $1
		ORDER BY paid_at DESC, id DESC
	`, courierID)
	if err != nil {
		return nil, unavailable(fmt.Sprintf("list payouts of courier %d", courierID), err)
	}
	defer rows.Close()

	out := make([]domain.Payout, 0)
	for rows.Next() {
		var p domain.Payout
		if err := rows.Scan(&p.ID, &p.CourierID, &p.Amount, &p.PaidAt, &p.Method, &p.Reference, &p.Notes); err != nil {
			return nil, unavailable("scan payout", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(fmt.Sprintf("list payouts of courier %d", courierID), err)
	}
	return out, nil
}

// WithTx opens a transaction and executes fn within it.
func (r *PayoutRepo) WithTx(ctx context.Context, fn func(tx payouttx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return unavailable("begin tx", err)
	}

	// отменяем в случае паники
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				panic(rbErr)
			}
			panic(p)
		}
	}()

	if err := fn(&TxRepo{tx: tx}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return unavailable("commit tx", err)
	}
	return nil
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

// LockCourier takes a share lock on the courier row so it cannot vanish before commit.
func (r *TxRepo) LockCourier(ctx context.Context, courierID int64) (bool, error) {
	var id int64
	err := r.tx.QueryRow(ctx, `SELECT id FROM couriers WHERE id = $1 FOR SHARE`, courierID).Scan(&id)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, unavailable(fmt.Sprintf("lock courier %d", courierID), err)
	}
	return true, nil
}

// InsertPayout appends one ledger row.
func (r *TxRepo) InsertPayout(ctx context.Context, p *domain.Payout) error {
	_, err := r.tx.Exec(ctx, `
		INSERT INTO courier_payouts (id, courier_id, amount, paid_at, method, reference, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.ID, p.CourierID, p.Amount, p.PaidAt, p.Method, p.Reference, p.Notes)
	if err != nil {
		return unavailable(fmt.Sprintf("insert payout %s", p.ID), err)
	}
	return nil
}
