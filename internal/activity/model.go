package activity

import (
	"encoding/json"
	"time"
)

type EventType string

const (
	EventLogin EventType = "login"

	EventGroupJoin  EventType = "group_join"
	EventGroupLeave EventType = "group_leave"

	EventMemberAdd    EventType = "member_add"
	EventMemberRemove EventType = "member_remove"

	EventPaymentAdd    EventType = "payment_add"
	EventPaymentRemove EventType = "payment_remove"

	EventBaseSlotActivate   EventType = "base_slot_activate"
	EventBaseSlotDeactivate EventType = "base_slot_deactivate"
)

// Entry is one append-only audit record. Message is the human-readable
// rendering built from the event type and metadata at write time.
type Entry struct {
	ID        int             `db:"id" json:"id"`
	GymID     int             `db:"gym_id" json:"gym_id"`
	ActorID   int             `db:"actor_id" json:"actor_id"`
	ActorName string          `db:"actor_name" json:"actor_name"`
	EventType EventType       `db:"event_type" json:"event_type"`
	Message   string          `db:"message" json:"message"`
	Metadata  json.RawMessage `db:"metadata" json:"metadata"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
