package signup

import (
	"time"

	"github.com/joroheos90/easygymapp/internal/timeslot"
)

// Lock-in windows before a slot's start time. Joining and switching close
// an hour out. Cancelling stays open until 30 minutes out even though the
// user-facing message says an hour, so members get a little slack past
// what they are told.
const (
	joinWindow   = time.Hour
	switchWindow = time.Hour
	cancelWindow = 30 * time.Minute
)

// Policy evaluates the gates on a signup transition. Admins skip the
// time-based gates only; structural gates apply to everyone.
type Policy struct {
	IsAdmin bool
	Now     time.Time
}

func (p Policy) enforceTimeRules() bool {
	return !p.IsAdmin
}

// clockIn reinterprets the policy clock in loc. Slot dates and start times
// are stored without a zone, so comparisons use wall-clock values in the
// slot's frame regardless of the host zone.
func (p Policy) clockIn(loc *time.Location) time.Time {
	y, mo, d := p.Now.Date()
	h, mi, s := p.Now.Clock()
	return time.Date(y, mo, d, h, mi, s, 0, loc)
}

// CanUseSlot gates any interaction with the slot. A slot with no start time
// is unusable for everyone, admins included, because the time gates below
// have nothing to compare against.
func (p Policy) CanUseSlot(slot *timeslot.DailySlot) (bool, string) {
	switch slot.Status {
	case timeslot.StatusCancelled:
		return false, "This time slot was cancelled"
	case timeslot.StatusClosed:
		return false, "This time slot is closed"
	}

	startAt, ok := slot.StartAt()
	if !ok {
		return false, "This time slot has no start time"
	}

	if p.enforceTimeRules() {
		now := p.clockIn(startAt.Location())
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		slotDay := time.Date(slot.SlotDate.Year(), slot.SlotDate.Month(), slot.SlotDate.Day(), 0, 0, 0, 0, now.Location())
		if slotDay.Before(today) {
			return false, "This time slot is in the past"
		}
		if !now.Before(startAt) {
			return false, "This time slot has already started"
		}
	}

	return true, ""
}

// CanJoin gates entering a slot. Joining closes an hour before the start.
func (p Policy) CanJoin(slot *timeslot.DailySlot) (bool, string) {
	if !p.enforceTimeRules() {
		return true, ""
	}

	startAt, ok := slot.StartAt()
	if !ok {
		return false, "This time slot has no start time"
	}

	if !p.clockIn(startAt.Location()).Before(startAt.Add(-joinWindow)) {
		return false, "You cannot join a class with less than 1 hour remaining before it starts"
	}

	return true, ""
}

// CanEnroll checks the structural gates, payment coverage and capacity.
// These bind admins too.
func (p Policy) CanEnroll(slot *timeslot.DailySlot, enrolled int, hasPaid bool) (bool, string) {
	if !hasPaid {
		return false, "You must pay for the current period before signing up"
	}
	if enrolled >= slot.Capacity {
		return false, "This time slot is full"
	}
	return true, ""
}

// CanCancel gates releasing a reservation. Inside the cancel window the
// reservation is locked in.
func (p Policy) CanCancel(slot *timeslot.DailySlot) (bool, string) {
	if !p.enforceTimeRules() {
		return true, ""
	}

	startAt, ok := slot.StartAt()
	if !ok {
		return false, "This time slot has no start time"
	}

	if !p.clockIn(startAt.Location()).Before(startAt.Add(-cancelWindow)) {
		return false, "You cannot cancel a reservation 1 hour or less before the class starts"
	}

	return true, ""
}

// CanSwitchFrom gates leaving the current slot as part of a switch. Unlike
// a plain cancel, switching closes a full hour before the current slot
// starts.
func (p Policy) CanSwitchFrom(current *timeslot.DailySlot) (bool, string) {
	if !p.enforceTimeRules() {
		return true, ""
	}

	startAt, ok := current.StartAt()
	if !ok {
		return false, "You cannot switch out of a time slot with no start time"
	}

	if !p.clockIn(startAt.Location()).Before(startAt.Add(-switchWindow)) {
		return false, "You cannot switch with 1 hour or less remaining before your current class starts"
	}

	return true, ""
}
