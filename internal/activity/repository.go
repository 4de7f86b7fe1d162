package activity

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Recorder {
	return &repository{db: db}
}

const insertQuery = `
	INSERT INTO activity_log (gym_id, actor_id, actor_name, event_type, message, metadata)
	VALUES ($1, $2, $3, $4, $5, $6)
`

func (r *repository) Record(ctx context.Context, gymID, actorID int, actorName string, event EventType, meta map[string]string) error {
	message, metadata, err := render(event, actorName, meta)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, insertQuery, gymID, actorID, actorName, event, message, metadata)
	return err
}

func (r *repository) RecordTx(ctx context.Context, tx *sqlx.Tx, gymID, actorID int, actorName string, event EventType, meta map[string]string) error {
	message, metadata, err := render(event, actorName, meta)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, insertQuery, gymID, actorID, actorName, event, message, metadata)
	return err
}

func (r *repository) List(ctx context.Context, gymID, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, gym_id, actor_id, actor_name, event_type, message, metadata, created_at
		FROM activity_log
		WHERE gym_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var entries []Entry
	err := r.db.SelectContext(ctx, &entries, query, gymID, limit)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func render(event EventType, actorName string, meta map[string]string) (string, []byte, error) {
	if meta == nil {
		meta = map[string]string{}
	}

	metadata, err := json.Marshal(meta)
	if err != nil {
		return "", nil, err
	}

	return BuildMessage(event, actorName, meta), metadata, nil
}
