package payment

import (
	"context"
	"time"

	"github.com/joroheos90/easygymapp/internal/member"
	"github.com/joroheos90/easygymapp/internal/period"
)

type Service interface {
	// HasPaidCurrentPeriod reports whether the member has a payment covering
	// the billing period containing ref (anchored to their join date).
	HasPaidCurrentPeriod(ctx context.Context, gymID, userID int, ref time.Time) (bool, error)
	CurrentPeriodFor(ctx context.Context, gymID, userID int, ref time.Time) (time.Time, time.Time, error)
	// ListDebtors returns active members with no payment covering their
	// current period as of ref.
	ListDebtors(ctx context.Context, gymID int, ref time.Time) ([]member.Member, error)
}

type service struct {
	payments Repository
	members  member.Repository
}

func NewService(payments Repository, members member.Repository) Service {
	return &service{payments: payments, members: members}
}

func (s *service) CurrentPeriodFor(ctx context.Context, gymID, userID int, ref time.Time) (time.Time, time.Time, error) {
	m, err := s.members.GetByID(ctx, gymID, userID)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	start, end := period.Current(m.JoinDate.Day(), ref)
	return start, end, nil
}

func (s *service) HasPaidCurrentPeriod(ctx context.Context, gymID, userID int, ref time.Time) (bool, error) {
	start, end, err := s.CurrentPeriodFor(ctx, gymID, userID, ref)
	if err != nil {
		return false, err
	}

	return s.payments.HasCoverage(ctx, gymID, userID, start, end)
}

func (s *service) ListDebtors(ctx context.Context, gymID int, ref time.Time) ([]member.Member, error) {
	members, err := s.members.List(ctx, gymID, true)
	if err != nil {
		return nil, err
	}

	// Small gyms: one coverage query per member is fine. Denormalize the
	// period if this ever becomes a hot path.
	debtors := make([]member.Member, 0)
	for _, m := range members {
		start, end := period.Current(m.JoinDate.Day(), ref)
		covered, err := s.payments.HasCoverage(ctx, gymID, m.ID, start, end)
		if err != nil {
			return nil, err
		}
		if !covered {
			debtors = append(debtors, m)
		}
	}

	return debtors, nil
}
