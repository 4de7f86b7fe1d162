package timeslot

import (
	"fmt"
	"time"
)

const (
	StatusOpen      = "open"
	StatusClosed    = "closed"
	StatusCancelled = "cancelled"
)

// BaseSlot is a recurring timeslot template. Daily slots are materialized
// from active templates when a day is published.
type BaseSlot struct {
	ID        int       `db:"id" json:"id"`
	GymID     int       `db:"gym_id" json:"gym_id"`
	Title     string    `db:"title" json:"title"`
	StartTime *string   `db:"start_time" json:"start_time,omitempty"`
	Capacity  int       `db:"capacity" json:"capacity"`
	SortOrder int       `db:"sort_order" json:"sort_order"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// DailySlot is a concrete timeslot on a calendar date. Once materialized it
// is independent of its template: edits to the base slot do not propagate.
type DailySlot struct {
	ID         int       `db:"id" json:"id"`
	GymID      int       `db:"gym_id" json:"gym_id"`
	BaseSlotID *int      `db:"base_slot_id" json:"base_slot_id,omitempty"`
	SlotDate   time.Time `db:"slot_date" json:"slot_date"`
	Title      string    `db:"title" json:"title"`
	StartTime  *string   `db:"start_time" json:"start_time,omitempty"`
	Capacity   int       `db:"capacity" json:"capacity"`
	Status     string    `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`

	// Enrolled is filled by list queries that join against signups.
	Enrolled int `db:"enrolled" json:"enrolled"`
}

// StartAt combines the slot's date and start time. lib/pq scans TIME columns
// as strings, so the time of day is parsed here.
func (d *DailySlot) StartAt() (time.Time, bool) {
	if d.StartTime == nil || *d.StartTime == "" {
		return time.Time{}, false
	}

	t, err := time.Parse("15:04:05", *d.StartTime)
	if err != nil {
		t, err = time.Parse("15:04", *d.StartTime)
		if err != nil {
			return time.Time{}, false
		}
	}

	return time.Date(
		d.SlotDate.Year(), d.SlotDate.Month(), d.SlotDate.Day(),
		t.Hour(), t.Minute(), 0, 0, d.SlotDate.Location(),
	), true
}

// IsFull reports whether enrollment has reached capacity.
func (d *DailySlot) IsFull() bool {
	return d.Enrolled >= d.Capacity
}

type CreateBaseSlotRequest struct {
	Title     string  `json:"title" binding:"required,min=1,max=100"`
	StartTime *string `json:"start_time,omitempty"`
	Capacity  int     `json:"capacity" binding:"required,min=1"`
	SortOrder int     `json:"sort_order"`
}

type UpdateBaseSlotRequest struct {
	Title     *string `json:"title,omitempty" binding:"omitempty,min=1,max=100"`
	StartTime *string `json:"start_time,omitempty"`
	Capacity  *int    `json:"capacity,omitempty" binding:"omitempty,min=1"`
	SortOrder *int    `json:"sort_order,omitempty"`
}

type UpdateDailySlotRequest struct {
	Title    *string `json:"title,omitempty" binding:"omitempty,min=1,max=100"`
	Capacity *int    `json:"capacity,omitempty" binding:"omitempty,min=1"`
}

type PublishResult struct {
	Date    string `json:"date"`
	Created int    `json:"created"`
	Skipped bool   `json:"skipped"`
}

func (p PublishResult) String() string {
	if p.Skipped {
		return fmt.Sprintf("%s: skipped", p.Date)
	}
	return fmt.Sprintf("%s: %d slots", p.Date, p.Created)
}
