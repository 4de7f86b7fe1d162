package activity

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Recorder is the audit sink consumed by the other services. RecordTx exists
// so the signup engine can commit its audit row in the same transaction as
// the signup mutation itself.
type Recorder interface {
	Record(ctx context.Context, gymID, actorID int, actorName string, event EventType, meta map[string]string) error
	RecordTx(ctx context.Context, tx *sqlx.Tx, gymID, actorID int, actorName string, event EventType, meta map[string]string) error
	List(ctx context.Context, gymID, limit int) ([]Entry, error)
}
