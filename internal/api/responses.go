// Package api holds the response envelopes shared across handlers and
// referenced by the swagger annotations.
package api

// ErrorResponse carries a single user-facing error string, including the
// signup policy's rejection reasons.
type ErrorResponse struct {
	Error string `json:"error" example:"This time slot is full"`
}

// MessageResponse acknowledges an operation that returns no payload.
type MessageResponse struct {
	Message string `json:"message" example:"Reservation cancelled"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
