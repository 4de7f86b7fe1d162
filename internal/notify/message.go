package notify

const (
	TypeSignupConfirmation = "signup_confirmation"
	TypePaymentReceipt     = "payment_receipt"
)

// Message is one queued notification. It carries everything the worker
// needs so delivery does not touch the database.
type Message struct {
	Type     string `json:"type"`
	GymID    int    `json:"gym_id"`
	UserID   int    `json:"user_id"`
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Attempts int    `json:"attempts"`
}
