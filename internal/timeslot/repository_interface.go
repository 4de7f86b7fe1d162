package timeslot

import (
	"context"
	"time"
)

type Repository interface {
	CreateBase(ctx context.Context, gymID int, req CreateBaseSlotRequest) (*BaseSlot, error)
	GetBase(ctx context.Context, gymID, id int) (*BaseSlot, error)
	ListBase(ctx context.Context, gymID int, activeOnly bool) ([]BaseSlot, error)
	UpdateBase(ctx context.Context, gymID, id int, req UpdateBaseSlotRequest) (*BaseSlot, error)
	SetBaseActive(ctx context.Context, gymID, id int, active bool) (*BaseSlot, error)

	GetDaily(ctx context.Context, gymID, id int) (*DailySlot, error)
	ListByDate(ctx context.Context, gymID int, date time.Time) ([]DailySlot, error)
	UpdateDaily(ctx context.Context, gymID, id int, req UpdateDailySlotRequest) (*DailySlot, error)
	SetStatus(ctx context.Context, gymID, id int, status string) (*DailySlot, error)
	EnrolledCount(ctx context.Context, dailySlotID int) (int, error)

	// PublishDay materializes daily slots for every active base template
	// that does not already have one on the date. Returns how many rows
	// were created.
	PublishDay(ctx context.Context, gymID int, date time.Time) (int, error)
}
