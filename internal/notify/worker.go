package notify

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/joroheos90/easygymapp/internal/logger"
	"github.com/joroheos90/easygymapp/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	popTimeout  = 5 * time.Second
	maxAttempts = 3
)

// Worker drains the notification queue and delivers messages over SMTP.
// Failed messages are retried, then parked on a failed list for manual
// inspection.
type Worker struct {
	rdb    redis.Cmdable
	mailer Mailer
}

func NewWorker(rdb redis.Cmdable, mailer Mailer) *Worker {
	return &Worker{rdb: rdb, mailer: mailer}
}

// Start blocks until the context is cancelled. Run it in its own goroutine.
func (w *Worker) Start(ctx context.Context) {
	logger.Info("Notification worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Notification worker stopping")
			return
		default:
		}

		res, err := w.rdb.BRPop(ctx, popTimeout, queueKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			logger.Errorf("Notification queue pop failed: %v", err)
			time.Sleep(time.Second)
			continue
		}

		// BRPop returns [key, value].
		if len(res) == 2 {
			w.process(ctx, res[1])
		}

		if length, err := w.rdb.LLen(ctx, queueKey).Result(); err == nil {
			metrics.NotificationQueueLength.Set(float64(length))
		}
	}
}

func (w *Worker) process(ctx context.Context, payload string) {
	var msg Message
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		logger.Errorf("Dropping malformed notification: %v", err)
		return
	}

	if err := w.mailer.Send(msg.To, msg.Subject, msg.Body); err != nil {
		msg.Attempts++
		logger.Errorf("Failed to send %s to %s (attempt %d): %v", msg.Type, msg.To, msg.Attempts, err)
		w.requeue(ctx, msg)
		return
	}

	metrics.RecordNotification(msg.Type, "sent")
	logger.Infof("Sent %s to %s", msg.Type, msg.To)
}

func (w *Worker) requeue(ctx context.Context, msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}

	key := queueKey
	if msg.Attempts >= maxAttempts {
		key = failedKey
		metrics.RecordNotification(msg.Type, "failed")
	}

	if err := w.rdb.LPush(ctx, key, payload).Err(); err != nil {
		logger.Errorf("Failed to requeue notification: %v", err)
	}
}
