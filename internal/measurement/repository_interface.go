package measurement

import "context"

type Repository interface {
	Create(ctx context.Context, gymID, userID int, weightKg float64) (*WeightRecord, error)
	// ListRecent returns up to limit records, newest first.
	ListRecent(ctx context.Context, gymID, userID, limit int) ([]WeightRecord, error)
	Delete(ctx context.Context, gymID, userID, id int) error
}
