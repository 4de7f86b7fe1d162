package payment

import "time"

const (
	MethodCash     = "efectivo"
	MethodTransfer = "transferencia"
	MethodSinpe    = "sinpe"
)

// Payment records money received from a member covering the half-open
// interval [PeriodStart, PeriodEnd). The store enforces PeriodEnd > PeriodStart.
type Payment struct {
	ID          int       `db:"id" json:"id"`
	GymID       int       `db:"gym_id" json:"gym_id"`
	UserID      int       `db:"user_id" json:"user_id"`
	AmountCents int64     `db:"amount_cents" json:"amount_cents"`
	Method      string    `db:"method" json:"method"`
	PaidAt      time.Time `db:"paid_at" json:"paid_at"`
	PeriodStart time.Time `db:"period_start" json:"period_start"`
	PeriodEnd   time.Time `db:"period_end" json:"period_end"`
	PeriodLabel *string   `db:"period_label" json:"period_label,omitempty"`
	Notes       *string   `db:"notes" json:"notes,omitempty"`
}

type CreatePaymentRequest struct {
	UserID      int     `json:"user_id" binding:"required"`
	AmountCents int64   `json:"amount_cents" binding:"required,min=1"`
	Method      string  `json:"method" binding:"required,oneof=efectivo transferencia sinpe"`
	PeriodStart string  `json:"period_start"` // YYYY-MM-DD; empty means current period
	PeriodEnd   string  `json:"period_end"`
	Notes       *string `json:"notes"`
}

type PaidStatusResponse struct {
	Paid        bool      `json:"paid"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
}
