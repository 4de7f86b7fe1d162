package gym

import "time"

// Gym is the tenant boundary. Every member, slot, payment and signup row
// belongs to exactly one gym.
type Gym struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateGymRequest struct {
	Name string `json:"name" binding:"required"`
}
