package payment

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, p *Payment) (*Payment, error)
	Delete(ctx context.Context, gymID, id int) (*Payment, error)
	ListByUser(ctx context.Context, gymID, userID int) ([]Payment, error)
	// HasCoverage reports whether some payment's interval fully contains
	// [periodStart, periodEnd).
	HasCoverage(ctx context.Context, gymID, userID int, periodStart, periodEnd time.Time) (bool, error)
}
