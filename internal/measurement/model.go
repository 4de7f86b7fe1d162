package measurement

import "time"

const (
	DirectionUp     = "up"
	DirectionDown   = "down"
	DirectionSteady = "steady"
)

// trendWindow is how many recent records feed the trend.
const trendWindow = 12

type WeightRecord struct {
	ID         int       `db:"id" json:"id"`
	GymID      int       `db:"gym_id" json:"gym_id"`
	UserID     int       `db:"user_id" json:"user_id"`
	WeightKg   float64   `db:"weight_kg" json:"weight_kg"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
}

type CreateWeightRequest struct {
	WeightKg float64 `json:"weight_kg" binding:"required,gt=0,lt=500"`
}

// TrendResponse is the recent weight history with the net change across the
// window, oldest record first.
type TrendResponse struct {
	Records   []WeightRecord `json:"records"`
	DeltaKg   float64        `json:"delta_kg"`
	Direction string         `json:"direction"`
}
