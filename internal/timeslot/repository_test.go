package timeslot

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func TestPublishDay(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	date := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO daily_timeslots (gym_id, base_slot_id, slot_date, title, start_time, capacity) SELECT gym_id, id, $2, title, start_time, capacity FROM base_timeslots WHERE gym_id = $1 AND is_active = true ON CONFLICT (gym_id, slot_date, title) DO NOTHING")).
		WithArgs(1, "2024-03-11").
		WillReturnResult(sqlmock.NewResult(0, 4))

	created, err := repo.PublishDay(context.Background(), 1, date)
	require.NoError(t, err)
	require.Equal(t, 4, created)
}

func TestPublishDayIdempotent(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	date := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO daily_timeslots")).
		WithArgs(1, "2024-03-11").
		WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := repo.PublishDay(context.Background(), 1, date)
	require.NoError(t, err)
	require.Equal(t, 0, created)
}

func TestListByDate(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	date := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)
	now := time.Now()
	start := "06:00:00"

	rows := sqlmock.NewRows([]string{"id", "gym_id", "base_slot_id", "slot_date", "title", "start_time", "capacity", "status", "created_at", "enrolled"}).
		AddRow(1, 1, 10, date, "6am", start, 12, StatusOpen, now, 8).
		AddRow(2, 1, 11, date, "7am", "07:00:00", 12, StatusOpen, now, 12)

	mock.ExpectQuery("SELECT d.id, d.gym_id, d.base_slot_id").
		WithArgs(1, "2024-03-11").
		WillReturnRows(rows)

	slots, err := repo.ListByDate(context.Background(), 1, date)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	require.Equal(t, 8, slots[0].Enrolled)
	require.True(t, slots[1].IsFull())
}

func TestGetDailyNotFound(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery("SELECT d.id, d.gym_id").
		WithArgs(99, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetDaily(context.Background(), 1, 99)
	require.ErrorIs(t, err, ErrSlotNotFound)
}
