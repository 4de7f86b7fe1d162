package gym

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrGymNotFound = errors.New("gym not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name string) (*Gym, error) {
	query := `
		INSERT INTO gyms (name)
		VALUES ($1)
		RETURNING id, name, is_active, created_at
	`

	var g Gym
	err := r.db.GetContext(ctx, &g, query, name)
	if err != nil {
		return nil, err
	}

	return &g, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Gym, error) {
	query := `
		SELECT id, name, is_active, created_at
		FROM gyms
		WHERE id = $1
	`

	var g Gym
	err := r.db.GetContext(ctx, &g, query, id)
	if err != nil {
		return nil, err
	}

	return &g, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]Gym, error) {
	query := `
		SELECT id, name, is_active, created_at
		FROM gyms
	`
	if activeOnly {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY name ASC"

	var gyms []Gym
	err := r.db.SelectContext(ctx, &gyms, query)
	if err != nil {
		return nil, err
	}

	return gyms, nil
}

func (r *repository) SetActive(ctx context.Context, id int, active bool) error {
	query := `
		UPDATE gyms
		SET is_active = $2
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, active)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrGymNotFound
	}

	return nil
}
