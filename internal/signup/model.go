package signup

import (
	"fmt"
	"time"
)

const (
	ActionJoin   = "join"
	ActionCancel = "cancel"
	ActionSwitch = "switch"
)

// Signup is one member's reservation in a daily timeslot. A member holds at
// most one reservation per calendar day.
type Signup struct {
	ID          int       `db:"id" json:"id"`
	GymID       int       `db:"gym_id" json:"gym_id"`
	DailySlotID int       `db:"daily_slot_id" json:"daily_slot_id"`
	UserID      int       `db:"user_id" json:"user_id"`
	SlotDate    time.Time `db:"slot_date" json:"slot_date"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// RosterItem is one row of a slot's attendance list.
type RosterItem struct {
	SignupID  int       `db:"id" json:"signup_id"`
	UserID    int       `db:"user_id" json:"user_id"`
	FullName  string    `db:"full_name" json:"full_name"`
	CreatedAt time.Time `db:"created_at" json:"signed_up_at"`
}

// UpcomingSignup is a member's reservation joined with its slot details.
type UpcomingSignup struct {
	SignupID  int       `db:"id" json:"signup_id"`
	SlotID    int       `db:"daily_slot_id" json:"slot_id"`
	SlotDate  time.Time `db:"slot_date" json:"slot_date"`
	Title     string    `db:"title" json:"title"`
	StartTime *string   `db:"start_time" json:"start_time,omitempty"`
}

// Result describes the outcome of a signup request.
type Result struct {
	Action  string `json:"action"`
	SlotID  int    `json:"slot_id"`
	Message string `json:"message"`
}

// Rejection is a policy refusal. It is an expected outcome, not a fault,
// and maps to 409 at the API layer.
type Rejection struct {
	Reason string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("signup rejected: %s", r.Reason)
}

func reject(reason string) *Rejection {
	return &Rejection{Reason: reason}
}
