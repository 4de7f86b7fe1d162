package timeslot

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrSlotNotFound     = errors.New("timeslot not found")
	ErrBaseSlotNotFound = errors.New("base timeslot not found")
)

const baseColumns = "id, gym_id, title, start_time, capacity, sort_order, is_active, created_at"
const dailyColumns = "id, gym_id, base_slot_id, slot_date, title, start_time, capacity, status, created_at"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBase(ctx context.Context, gymID int, req CreateBaseSlotRequest) (*BaseSlot, error) {
	query := `
		INSERT INTO base_timeslots (gym_id, title, start_time, capacity, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + baseColumns

	var slot BaseSlot
	err := r.db.GetContext(ctx, &slot, query, gymID, req.Title, req.StartTime, req.Capacity, req.SortOrder)
	if err != nil {
		return nil, err
	}

	return &slot, nil
}

func (r *repository) GetBase(ctx context.Context, gymID, id int) (*BaseSlot, error) {
	query := `SELECT ` + baseColumns + ` FROM base_timeslots WHERE id = $1 AND gym_id = $2`

	var slot BaseSlot
	err := r.db.GetContext(ctx, &slot, query, id, gymID)
	if err != nil {
		return nil, ErrBaseSlotNotFound
	}

	return &slot, nil
}

func (r *repository) ListBase(ctx context.Context, gymID int, activeOnly bool) ([]BaseSlot, error) {
	query := `SELECT ` + baseColumns + ` FROM base_timeslots WHERE gym_id = $1`
	if activeOnly {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY sort_order, start_time NULLS LAST, id`

	var slots []BaseSlot
	err := r.db.SelectContext(ctx, &slots, query, gymID)
	if err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *repository) UpdateBase(ctx context.Context, gymID, id int, req UpdateBaseSlotRequest) (*BaseSlot, error) {
	query := `
		UPDATE base_timeslots
		SET title = COALESCE($1, title),
		    start_time = COALESCE($2, start_time),
		    capacity = COALESCE($3, capacity),
		    sort_order = COALESCE($4, sort_order)
		WHERE id = $5 AND gym_id = $6
		RETURNING ` + baseColumns

	var slot BaseSlot
	err := r.db.GetContext(ctx, &slot, query, req.Title, req.StartTime, req.Capacity, req.SortOrder, id, gymID)
	if err != nil {
		return nil, ErrBaseSlotNotFound
	}

	return &slot, nil
}

func (r *repository) SetBaseActive(ctx context.Context, gymID, id int, active bool) (*BaseSlot, error) {
	query := `
		UPDATE base_timeslots
		SET is_active = $1
		WHERE id = $2 AND gym_id = $3
		RETURNING ` + baseColumns

	var slot BaseSlot
	err := r.db.GetContext(ctx, &slot, query, active, id, gymID)
	if err != nil {
		return nil, ErrBaseSlotNotFound
	}

	return &slot, nil
}

func (r *repository) GetDaily(ctx context.Context, gymID, id int) (*DailySlot, error) {
	query := `
		SELECT d.id, d.gym_id, d.base_slot_id, d.slot_date, d.title, d.start_time, d.capacity, d.status, d.created_at,
		       COUNT(s.id) AS enrolled
		FROM daily_timeslots d
		LEFT JOIN timeslot_signups s ON s.daily_slot_id = d.id
		WHERE d.id = $1 AND d.gym_id = $2
		GROUP BY d.id
	`

	var slot DailySlot
	err := r.db.GetContext(ctx, &slot, query, id, gymID)
	if err != nil {
		return nil, ErrSlotNotFound
	}

	return &slot, nil
}

func (r *repository) ListByDate(ctx context.Context, gymID int, date time.Time) ([]DailySlot, error) {
	query := `
		SELECT d.id, d.gym_id, d.base_slot_id, d.slot_date, d.title, d.start_time, d.capacity, d.status, d.created_at,
		       COUNT(s.id) AS enrolled
		FROM daily_timeslots d
		LEFT JOIN timeslot_signups s ON s.daily_slot_id = d.id
		WHERE d.gym_id = $1 AND d.slot_date = $2
		GROUP BY d.id
		ORDER BY d.start_time NULLS LAST, d.title
	`

	var slots []DailySlot
	err := r.db.SelectContext(ctx, &slots, query, gymID, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *repository) UpdateDaily(ctx context.Context, gymID, id int, req UpdateDailySlotRequest) (*DailySlot, error) {
	query := `
		UPDATE daily_timeslots
		SET title = COALESCE($1, title),
		    capacity = COALESCE($2, capacity)
		WHERE id = $3 AND gym_id = $4
		RETURNING ` + dailyColumns

	var slot DailySlot
	err := r.db.GetContext(ctx, &slot, query, req.Title, req.Capacity, id, gymID)
	if err != nil {
		return nil, ErrSlotNotFound
	}

	return &slot, nil
}

func (r *repository) SetStatus(ctx context.Context, gymID, id int, status string) (*DailySlot, error) {
	query := `
		UPDATE daily_timeslots
		SET status = $1
		WHERE id = $2 AND gym_id = $3
		RETURNING ` + dailyColumns

	var slot DailySlot
	err := r.db.GetContext(ctx, &slot, query, status, id, gymID)
	if err != nil {
		return nil, ErrSlotNotFound
	}

	return &slot, nil
}

func (r *repository) EnrolledCount(ctx context.Context, dailySlotID int) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM timeslot_signups WHERE daily_slot_id = $1`, dailySlotID)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repository) PublishDay(ctx context.Context, gymID int, date time.Time) (int, error) {
	query := `
		INSERT INTO daily_timeslots (gym_id, base_slot_id, slot_date, title, start_time, capacity)
		SELECT gym_id, id, $2, title, start_time, capacity
		FROM base_timeslots
		WHERE gym_id = $1 AND is_active = true
		ON CONFLICT (gym_id, slot_date, title) DO NOTHING
	`

	res, err := r.db.ExecContext(ctx, query, gymID, date.Format("2006-01-02"))
	if err != nil {
		return 0, err
	}

	created, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(created), nil
}
