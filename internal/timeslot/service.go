package timeslot

import (
	"context"
	"time"

	"github.com/joroheos90/easygymapp/internal/logger"
	"github.com/joroheos90/easygymapp/internal/metrics"
)

type Service interface {
	// PublishDay materializes the day's slots from active templates.
	// Skipped weekdays return a result with Skipped set and create nothing.
	PublishDay(ctx context.Context, gymID int, date time.Time) (PublishResult, error)
	// PublishRange publishes every day from start up to and including end.
	PublishRange(ctx context.Context, gymID int, start, end time.Time) ([]PublishResult, error)
	// PublishWeek publishes the next seven days starting from the given day.
	PublishWeek(ctx context.Context, gymID int, from time.Time) ([]PublishResult, error)
}

type service struct {
	repo         Repository
	skipWeekdays map[time.Weekday]bool
}

func NewService(repo Repository, skipWeekdays []int) Service {
	skip := make(map[time.Weekday]bool, len(skipWeekdays))
	for _, d := range skipWeekdays {
		skip[time.Weekday(d)] = true
	}
	return &service{repo: repo, skipWeekdays: skip}
}

func (s *service) PublishDay(ctx context.Context, gymID int, date time.Time) (PublishResult, error) {
	dateStr := date.Format("2006-01-02")

	if s.skipWeekdays[date.Weekday()] {
		return PublishResult{Date: dateStr, Skipped: true}, nil
	}

	created, err := s.repo.PublishDay(ctx, gymID, date)
	if err != nil {
		return PublishResult{}, err
	}

	if created > 0 {
		metrics.RecordSlotsPublished(created)
		logger.Infof("Published %d slots for gym %d on %s", created, gymID, dateStr)
	}

	return PublishResult{Date: dateStr, Created: created}, nil
}

func (s *service) PublishRange(ctx context.Context, gymID int, start, end time.Time) ([]PublishResult, error) {
	var results []PublishResult
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		res, err := s.PublishDay(ctx, gymID, d)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}

	return results, nil
}

func (s *service) PublishWeek(ctx context.Context, gymID int, from time.Time) ([]PublishResult, error) {
	return s.PublishRange(ctx, gymID, from, from.AddDate(0, 0, 6))
}
