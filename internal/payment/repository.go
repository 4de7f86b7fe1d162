package payment

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrPaymentNotFound = errors.New("payment not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Payment) (*Payment, error) {
	query := `
		INSERT INTO payments (gym_id, user_id, amount_cents, method, period_start, period_end, period_label, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, gym_id, user_id, amount_cents, method, paid_at, period_start, period_end, period_label, notes
	`

	var created Payment
	err := r.db.GetContext(ctx, &created, query,
		p.GymID, p.UserID, p.AmountCents, p.Method, p.PeriodStart, p.PeriodEnd, p.PeriodLabel, p.Notes)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) Delete(ctx context.Context, gymID, id int) (*Payment, error) {
	query := `
		DELETE FROM payments
		WHERE id = $1 AND gym_id = $2
		RETURNING id, gym_id, user_id, amount_cents, method, paid_at, period_start, period_end, period_label, notes
	`

	var deleted Payment
	err := r.db.GetContext(ctx, &deleted, query, id, gymID)
	if err != nil {
		return nil, err
	}

	return &deleted, nil
}

func (r *repository) ListByUser(ctx context.Context, gymID, userID int) ([]Payment, error) {
	query := `
		SELECT id, gym_id, user_id, amount_cents, method, paid_at, period_start, period_end, period_label, notes
		FROM payments
		WHERE gym_id = $1 AND user_id = $2
		ORDER BY paid_at DESC
	`

	var payments []Payment
	err := r.db.SelectContext(ctx, &payments, query, gymID, userID)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *repository) HasCoverage(ctx context.Context, gymID, userID int, periodStart, periodEnd time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM payments
			WHERE gym_id = $1 AND user_id = $2
			  AND period_start <= $3 AND period_end >= $4
		)
	`

	var covered bool
	err := r.db.GetContext(ctx, &covered, query, gymID, userID, periodStart, periodEnd)
	if err != nil {
		return false, err
	}

	return covered, nil
}
