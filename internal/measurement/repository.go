package measurement

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrRecordNotFound = errors.New("weight record not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, gymID, userID int, weightKg float64) (*WeightRecord, error) {
	query := `
		INSERT INTO user_weights (gym_id, user_id, weight_kg)
		VALUES ($1, $2, $3)
		RETURNING id, gym_id, user_id, weight_kg, recorded_at
	`

	var record WeightRecord
	err := r.db.GetContext(ctx, &record, query, gymID, userID, weightKg)
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *repository) ListRecent(ctx context.Context, gymID, userID, limit int) ([]WeightRecord, error) {
	query := `
		SELECT id, gym_id, user_id, weight_kg, recorded_at
		FROM user_weights
		WHERE gym_id = $1 AND user_id = $2
		ORDER BY recorded_at DESC
		LIMIT $3
	`

	var records []WeightRecord
	err := r.db.SelectContext(ctx, &records, query, gymID, userID, limit)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *repository) Delete(ctx context.Context, gymID, userID, id int) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM user_weights WHERE id = $1 AND gym_id = $2 AND user_id = $3`, id, gymID, userID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}
