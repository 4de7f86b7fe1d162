package signup

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/joroheos90/easygymapp/internal/activity"
	"github.com/joroheos90/easygymapp/internal/period"
	"github.com/joroheos90/easygymapp/internal/timeslot"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

type Service interface {
	// Execute runs one signup transition for the member against the slot.
	// Same slot cancels, another slot on the same day switches, otherwise
	// it joins. Policy refusals come back as *Rejection.
	Execute(ctx context.Context, gymID, userID, slotID int, isAdmin bool) (*Result, error)
	Roster(ctx context.Context, gymID, slotID int) ([]RosterItem, error)
	ListUpcoming(ctx context.Context, gymID, userID int) ([]UpcomingSignup, error)
}

type service struct {
	db       *sqlx.DB
	activity activity.Recorder
	now      func() time.Time
}

func NewService(db *sqlx.DB, recorder activity.Recorder) Service {
	return &service{db: db, activity: recorder, now: time.Now}
}

// sameDaySignup is a member's existing reservation on the date, joined with
// the slot it points at.
type sameDaySignup struct {
	SignupID int `db:"signup_id"`
	timeslot.DailySlot
}

func (s *service) Execute(ctx context.Context, gymID, userID, slotID int, isAdmin bool) (*Result, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Lock the target slot first so concurrent attempts serialize on it.
	var slot timeslot.DailySlot
	err = tx.GetContext(ctx, &slot, `
		SELECT id, gym_id, base_slot_id, slot_date, title, start_time, capacity, status, created_at
		FROM daily_timeslots
		WHERE id = $1 AND gym_id = $2
		FOR UPDATE`, slotID, gymID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, timeslot.ErrSlotNotFound
		}
		return nil, err
	}

	policy := Policy{IsAdmin: isAdmin, Now: s.now()}
	if ok, reason := policy.CanUseSlot(&slot); !ok {
		return nil, reject(reason)
	}

	var actor struct {
		FullName string    `db:"full_name"`
		JoinDate time.Time `db:"join_date"`
	}
	err = tx.GetContext(ctx, &actor, `SELECT full_name, join_date FROM members WHERE id = $1 AND gym_id = $2`, userID, gymID)
	if err != nil {
		return nil, err
	}

	slotDate := slot.SlotDate.Format("2006-01-02")
	meta := map[string]string{"group_title": slot.Title, "group_date": slotDate}

	// Lock the member's existing reservation for the day, if any, so a
	// switch cannot race with a concurrent cancel.
	var existing sameDaySignup
	err = tx.GetContext(ctx, &existing, `
		SELECT s.id AS signup_id, d.id, d.gym_id, d.base_slot_id, d.slot_date, d.title, d.start_time, d.capacity, d.status, d.created_at
		FROM timeslot_signups s
		JOIN daily_timeslots d ON d.id = s.daily_slot_id
		WHERE s.gym_id = $1 AND s.user_id = $2 AND s.slot_date = $3
		FOR UPDATE OF s`, gymID, userID, slotDate)
	hasExisting := err == nil
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if hasExisting && existing.DailySlot.ID == slot.ID {
		if ok, reason := policy.CanCancel(&slot); !ok {
			return nil, reject(reason)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM timeslot_signups WHERE id = $1`, existing.SignupID); err != nil {
			return nil, err
		}

		if err := s.activity.RecordTx(ctx, tx, gymID, userID, actor.FullName, activity.EventGroupLeave, meta); err != nil {
			return nil, err
		}

		if err := tx.Commit(); err != nil {
			return nil, err
		}

		return &Result{Action: ActionCancel, SlotID: slot.ID, Message: "Reservation cancelled"}, nil
	}

	if ok, reason := policy.CanJoin(&slot); !ok {
		return nil, reject(reason)
	}

	if hasExisting {
		if ok, reason := policy.CanSwitchFrom(&existing.DailySlot); !ok {
			return nil, reject(reason)
		}
	}

	periodStart, periodEnd := period.Current(actor.JoinDate.Day(), s.now())
	var hasPaid bool
	err = tx.GetContext(ctx, &hasPaid, `
		SELECT EXISTS(
			SELECT 1 FROM payments
			WHERE gym_id = $1 AND user_id = $2
			  AND period_start <= $3 AND period_end >= $4
		)`, gymID, userID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}

	var enrolled int
	err = tx.GetContext(ctx, &enrolled, `SELECT COUNT(*) FROM timeslot_signups WHERE daily_slot_id = $1`, slot.ID)
	if err != nil {
		return nil, err
	}

	if ok, reason := policy.CanEnroll(&slot, enrolled, hasPaid); !ok {
		return nil, reject(reason)
	}

	action := ActionJoin
	message := "Reservation confirmed"
	if hasExisting {
		action = ActionSwitch
		message = "Reservation switched"
		if _, err := tx.ExecContext(ctx, `DELETE FROM timeslot_signups WHERE id = $1`, existing.SignupID); err != nil {
			return nil, err
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO timeslot_signups (gym_id, daily_slot_id, user_id, slot_date)
		VALUES ($1, $2, $3, $4)`, gymID, slot.ID, userID, slotDate)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, reject("You already have a reservation for this day")
		}
		return nil, err
	}

	// A switch records only the join; the implicit leave stays silent.
	if err := s.activity.RecordTx(ctx, tx, gymID, userID, actor.FullName, activity.EventGroupJoin, meta); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &Result{Action: action, SlotID: slot.ID, Message: message}, nil
}

func (s *service) Roster(ctx context.Context, gymID, slotID int) ([]RosterItem, error) {
	query := `
		SELECT s.id, s.user_id, m.full_name, s.created_at
		FROM timeslot_signups s
		JOIN members m ON m.id = s.user_id
		WHERE s.gym_id = $1 AND s.daily_slot_id = $2
		ORDER BY s.created_at
	`

	var roster []RosterItem
	err := s.db.SelectContext(ctx, &roster, query, gymID, slotID)
	if err != nil {
		return nil, err
	}

	return roster, nil
}

func (s *service) ListUpcoming(ctx context.Context, gymID, userID int) ([]UpcomingSignup, error) {
	query := `
		SELECT s.id, s.daily_slot_id, s.slot_date, d.title, d.start_time
		FROM timeslot_signups s
		JOIN daily_timeslots d ON d.id = s.daily_slot_id
		WHERE s.gym_id = $1 AND s.user_id = $2 AND s.slot_date >= CURRENT_DATE
		ORDER BY s.slot_date, d.start_time NULLS LAST
	`

	var signups []UpcomingSignup
	err := s.db.SelectContext(ctx, &signups, query, gymID, userID)
	if err != nil {
		return nil, err
	}

	return signups, nil
}
