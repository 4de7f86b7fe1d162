package payment

import (
	"context"
	"testing"
	"time"

	"github.com/joroheos90/easygymapp/internal/member"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPaymentRepo struct{ mock.Mock }
type MockMemberRepo struct{ mock.Mock }

func (m *MockPaymentRepo) Create(ctx context.Context, p *Payment) (*Payment, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payment), args.Error(1)
}

func (m *MockPaymentRepo) Delete(ctx context.Context, gymID, id int) (*Payment, error) {
	args := m.Called(ctx, gymID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payment), args.Error(1)
}

func (m *MockPaymentRepo) ListByUser(ctx context.Context, gymID, userID int) ([]Payment, error) {
	args := m.Called(ctx, gymID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Payment), args.Error(1)
}

func (m *MockPaymentRepo) HasCoverage(ctx context.Context, gymID, userID int, periodStart, periodEnd time.Time) (bool, error) {
	args := m.Called(ctx, gymID, userID, periodStart, periodEnd)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemberRepo) Create(ctx context.Context, gymID int, fullName, email, passwordHash, role string, joinDate time.Time) (*member.Member, error) {
	args := m.Called(ctx, gymID, fullName, email, passwordHash, role, joinDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepo) GetByID(ctx context.Context, gymID, id int) (*member.Member, error) {
	args := m.Called(ctx, gymID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepo) FindByEmail(ctx context.Context, email string) (*member.Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepo) FindByPhone(ctx context.Context, gymID int, phone string) (*member.Member, error) {
	args := m.Called(ctx, gymID, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepo) List(ctx context.Context, gymID int, activeOnly bool) ([]member.Member, error) {
	args := m.Called(ctx, gymID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]member.Member), args.Error(1)
}

func (m *MockMemberRepo) Update(ctx context.Context, gymID, id int, req member.UpdateMemberRequest) (*member.Member, error) {
	args := m.Called(ctx, gymID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func date(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

func TestHasPaidCurrentPeriod(t *testing.T) {
	pr := new(MockPaymentRepo)
	mr := new(MockMemberRepo)

	// Joined on the 15th; reference date Jan 20 puts the period at Jan 15 - Feb 15.
	mr.On("GetByID", mock.Anything, 1, 7).Return(&member.Member{
		ID:       7,
		GymID:    1,
		JoinDate: date(2023, time.June, 15),
	}, nil)
	pr.On("HasCoverage", mock.Anything, 1, 7, date(2024, time.January, 15), date(2024, time.February, 15)).
		Return(true, nil)

	svc := NewService(pr, mr)

	paid, err := svc.HasPaidCurrentPeriod(context.Background(), 1, 7, date(2024, time.January, 20))
	require.NoError(t, err)
	assert.True(t, paid)

	pr.AssertExpectations(t)
	mr.AssertExpectations(t)
}

func TestListDebtors(t *testing.T) {
	pr := new(MockPaymentRepo)
	mr := new(MockMemberRepo)

	mr.On("List", mock.Anything, 1, true).Return([]member.Member{
		{ID: 1, GymID: 1, FullName: "Paid Member", JoinDate: date(2023, time.June, 1)},
		{ID: 2, GymID: 1, FullName: "Debtor Member", JoinDate: date(2023, time.June, 1)},
	}, nil)

	ref := date(2024, time.March, 10)
	pr.On("HasCoverage", mock.Anything, 1, 1, date(2024, time.March, 1), date(2024, time.April, 1)).Return(true, nil)
	pr.On("HasCoverage", mock.Anything, 1, 2, date(2024, time.March, 1), date(2024, time.April, 1)).Return(false, nil)

	svc := NewService(pr, mr)

	debtors, err := svc.ListDebtors(context.Background(), 1, ref)
	require.NoError(t, err)
	require.Len(t, debtors, 1)
	assert.Equal(t, "Debtor Member", debtors[0].FullName)
}
