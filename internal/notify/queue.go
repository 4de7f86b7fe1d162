package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/joroheos90/easygymapp/internal/member"
	"github.com/joroheos90/easygymapp/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey  = "easygym:notifications"
	failedKey = "easygym:notifications:failed"
)

// Queue pushes notifications onto a redis list for the worker to drain.
type Queue struct {
	rdb     redis.Cmdable
	members member.Repository
}

func NewQueue(rdb redis.Cmdable, members member.Repository) *Queue {
	return &Queue{rdb: rdb, members: members}
}

func (q *Queue) SignupConfirmed(ctx context.Context, gymID, userID int, slotTitle, slotDate string) error {
	m, err := q.members.GetByID(ctx, gymID, userID)
	if err != nil {
		return err
	}

	return q.enqueue(ctx, Message{
		Type:    TypeSignupConfirmation,
		GymID:   gymID,
		UserID:  userID,
		To:      m.Email,
		Subject: fmt.Sprintf("Reservation confirmed: %s on %s", slotTitle, slotDate),
		Body: fmt.Sprintf("Hi %s,\n\nYour spot in %s on %s is confirmed. See you there!\n",
			m.FullName, slotTitle, slotDate),
	})
}

func (q *Queue) PaymentReceived(ctx context.Context, gymID, userID int, amount, periodLabel string) error {
	m, err := q.members.GetByID(ctx, gymID, userID)
	if err != nil {
		return err
	}

	return q.enqueue(ctx, Message{
		Type:    TypePaymentReceipt,
		GymID:   gymID,
		UserID:  userID,
		To:      m.Email,
		Subject: fmt.Sprintf("Payment received for %s", periodLabel),
		Body: fmt.Sprintf("Hi %s,\n\nWe received your payment of %s for %s. Thank you!\n",
			m.FullName, amount, periodLabel),
	})
}

func (q *Queue) enqueue(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	if err := q.rdb.LPush(ctx, queueKey, payload).Err(); err != nil {
		return err
	}

	if length, err := q.rdb.LLen(ctx, queueKey).Result(); err == nil {
		metrics.NotificationQueueLength.Set(float64(length))
	}

	return nil
}

func (q *Queue) Length(ctx context.Context) (int64, error) {
	return q.rdb.LLen(ctx, queueKey).Result()
}
