package signup

import (
	"context"
	"testing"
	"time"

	"github.com/joroheos90/easygymapp/internal/activity"
	"github.com/joroheos90/easygymapp/internal/timeslot"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRecorder struct{ mock.Mock }

func (m *MockRecorder) Record(ctx context.Context, gymID, actorID int, actorName string, event activity.EventType, meta map[string]string) error {
	args := m.Called(ctx, gymID, actorID, actorName, event, meta)
	return args.Error(0)
}

func (m *MockRecorder) RecordTx(ctx context.Context, tx *sqlx.Tx, gymID, actorID int, actorName string, event activity.EventType, meta map[string]string) error {
	args := m.Called(ctx, tx, gymID, actorID, actorName, event, meta)
	return args.Error(0)
}

func (m *MockRecorder) List(ctx context.Context, gymID, limit int) ([]activity.Entry, error) {
	args := m.Called(ctx, gymID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]activity.Entry), args.Error(1)
}

var (
	slotDay  = time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)
	morning  = time.Date(2024, time.March, 11, 10, 0, 0, 0, time.UTC)
	joinDate = time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC)

	// Billing period containing the morning, anchored to the join day.
	periodStart = time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)
	periodEnd   = time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
)

const slotColumns = "id, gym_id, base_slot_id, slot_date, title, start_time, capacity, status, created_at"

func setupEngine(t *testing.T) (*service, sqlmock.Sqlmock, *MockRecorder, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	recorder := new(MockRecorder)
	svc := &service{
		db:       sqlxDB,
		activity: recorder,
		now:      func() time.Time { return morning },
	}

	closer := func() {
		sqlxDB.Close()
	}

	return svc, mock, recorder, closer
}

func slotRow(id int, startTime string, capacity int) *sqlmock.Rows {
	cols := []string{"id", "gym_id", "base_slot_id", "slot_date", "title", "start_time", "capacity", "status", "created_at"}
	return sqlmock.NewRows(cols).AddRow(id, 1, 10, slotDay, "6pm", startTime, capacity, timeslot.StatusOpen, time.Now())
}

func existingRow(signupID, slotID int, startTime string) *sqlmock.Rows {
	cols := []string{"signup_id", "id", "gym_id", "base_slot_id", "slot_date", "title", "start_time", "capacity", "status", "created_at"}
	return sqlmock.NewRows(cols).AddRow(signupID, slotID, 1, 10, slotDay, "6pm", startTime, 12, timeslot.StatusOpen, time.Now())
}

func expectSlotLock(dbMock sqlmock.Sqlmock, slotID int, rows *sqlmock.Rows) {
	dbMock.ExpectQuery("SELECT " + slotColumns + " FROM daily_timeslots").
		WithArgs(slotID, 1).
		WillReturnRows(rows)
}

func expectActorFetch(dbMock sqlmock.Sqlmock) {
	dbMock.ExpectQuery("SELECT full_name, join_date FROM members").
		WithArgs(7, 1).
		WillReturnRows(sqlmock.NewRows([]string{"full_name", "join_date"}).AddRow("Jane Doe", joinDate))
}

func expectExistingLookup(dbMock sqlmock.Sqlmock, rows *sqlmock.Rows) {
	dbMock.ExpectQuery("SELECT s.id AS signup_id").
		WithArgs(1, 7, "2024-03-11").
		WillReturnRows(rows)
}

func emptyExistingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"signup_id"})
}

func expectPaidCheck(dbMock sqlmock.Sqlmock, paid bool) {
	dbMock.ExpectQuery("SELECT EXISTS").
		WithArgs(1, 7, periodStart, periodEnd).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(paid))
}

func expectEnrolledCount(dbMock sqlmock.Sqlmock, slotID, count int) {
	dbMock.ExpectQuery(`SELECT COUNT\(\*\) FROM timeslot_signups`).
		WithArgs(slotID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(count))
}

func TestExecuteJoin(t *testing.T) {
	svc, dbMock, recorder, close := setupEngine(t)
	defer close()

	dbMock.ExpectBegin()
	expectSlotLock(dbMock, 5, slotRow(5, "18:00:00", 12))
	expectActorFetch(dbMock)
	expectExistingLookup(dbMock, emptyExistingRows())
	expectPaidCheck(dbMock, true)
	expectEnrolledCount(dbMock, 5, 3)
	dbMock.ExpectExec("INSERT INTO timeslot_signups").
		WithArgs(1, 5, 7, "2024-03-11").
		WillReturnResult(sqlmock.NewResult(1, 1))
	recorder.On("RecordTx", mock.Anything, mock.Anything, 1, 7, "Jane Doe", activity.EventGroupJoin,
		map[string]string{"group_title": "6pm", "group_date": "2024-03-11"}).Return(nil)
	dbMock.ExpectCommit()

	result, err := svc.Execute(context.Background(), 1, 7, 5, false)
	require.NoError(t, err)
	assert.Equal(t, ActionJoin, result.Action)
	assert.Equal(t, 5, result.SlotID)

	require.NoError(t, dbMock.ExpectationsWereMet())
	recorder.AssertExpectations(t)
}

func TestExecuteCancel(t *testing.T) {
	svc, dbMock, recorder, close := setupEngine(t)
	defer close()

	dbMock.ExpectBegin()
	expectSlotLock(dbMock, 5, slotRow(5, "18:00:00", 12))
	expectActorFetch(dbMock)
	expectExistingLookup(dbMock, existingRow(42, 5, "18:00:00"))
	dbMock.ExpectExec("DELETE FROM timeslot_signups").
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	recorder.On("RecordTx", mock.Anything, mock.Anything, 1, 7, "Jane Doe", activity.EventGroupLeave,
		map[string]string{"group_title": "6pm", "group_date": "2024-03-11"}).Return(nil)
	dbMock.ExpectCommit()

	result, err := svc.Execute(context.Background(), 1, 7, 5, false)
	require.NoError(t, err)
	assert.Equal(t, ActionCancel, result.Action)

	require.NoError(t, dbMock.ExpectationsWereMet())
	recorder.AssertExpectations(t)
}

func TestExecuteCancelInsideWindow(t *testing.T) {
	svc, dbMock, _, close := setupEngine(t)
	defer close()

	// The slot starts 10:15, 15 minutes from "now".
	dbMock.ExpectBegin()
	expectSlotLock(dbMock, 5, slotRow(5, "10:15:00", 12))
	expectActorFetch(dbMock)
	expectExistingLookup(dbMock, existingRow(42, 5, "10:15:00"))
	dbMock.ExpectRollback()

	_, err := svc.Execute(context.Background(), 1, 7, 5, false)
	var rejection *Rejection
	require.ErrorAs(t, err, &rejection)
	assert.Contains(t, rejection.Reason, "1 hour or less")

	require.NoError(t, dbMock.ExpectationsWereMet())
}

func TestExecuteJoinInsideWindow(t *testing.T) {
	svc, dbMock, _, close := setupEngine(t)
	defer close()

	// The slot starts 10:30, half an hour from "now".
	dbMock.ExpectBegin()
	expectSlotLock(dbMock, 5, slotRow(5, "10:30:00", 12))
	expectActorFetch(dbMock)
	expectExistingLookup(dbMock, emptyExistingRows())
	dbMock.ExpectRollback()

	_, err := svc.Execute(context.Background(), 1, 7, 5, false)
	var rejection *Rejection
	require.ErrorAs(t, err, &rejection)
	assert.Contains(t, rejection.Reason, "less than 1 hour remaining")

	require.NoError(t, dbMock.ExpectationsWereMet())
}

func TestExecuteSwitchInsideWindow(t *testing.T) {
	svc, dbMock, _, close := setupEngine(t)
	defer close()

	// The target slot is hours away but the current one starts 10:30, so
	// the member is locked into it for switching purposes.
	dbMock.ExpectBegin()
	expectSlotLock(dbMock, 5, slotRow(5, "18:00:00", 12))
	expectActorFetch(dbMock)
	expectExistingLookup(dbMock, existingRow(42, 9, "10:30:00"))
	dbMock.ExpectRollback()

	_, err := svc.Execute(context.Background(), 1, 7, 5, false)
	var rejection *Rejection
	require.ErrorAs(t, err, &rejection)
	assert.Contains(t, rejection.Reason, "cannot switch")

	require.NoError(t, dbMock.ExpectationsWereMet())
}

func TestExecuteUnpaidRejected(t *testing.T) {
	svc, dbMock, recorder, close := setupEngine(t)
	defer close()

	dbMock.ExpectBegin()
	expectSlotLock(dbMock, 5, slotRow(5, "18:00:00", 12))
	expectActorFetch(dbMock)
	expectExistingLookup(dbMock, emptyExistingRows())
	expectPaidCheck(dbMock, false)
	expectEnrolledCount(dbMock, 5, 3)
	dbMock.ExpectRollback()

	_, err := svc.Execute(context.Background(), 1, 7, 5, false)
	var rejection *Rejection
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, "You must pay for the current period before signing up", rejection.Reason)

	require.NoError(t, dbMock.ExpectationsWereMet())
	recorder.AssertNotCalled(t, "RecordTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecuteFullSlotRejected(t *testing.T) {
	svc, dbMock, _, close := setupEngine(t)
	defer close()

	dbMock.ExpectBegin()
	expectSlotLock(dbMock, 5, slotRow(5, "18:00:00", 12))
	expectActorFetch(dbMock)
	expectExistingLookup(dbMock, emptyExistingRows())
	expectPaidCheck(dbMock, true)
	expectEnrolledCount(dbMock, 5, 12)
	dbMock.ExpectRollback()

	_, err := svc.Execute(context.Background(), 1, 7, 5, false)
	var rejection *Rejection
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, "This time slot is full", rejection.Reason)

	require.NoError(t, dbMock.ExpectationsWereMet())
}

func TestExecuteSwitchRecordsOnlyJoin(t *testing.T) {
	svc, dbMock, recorder, close := setupEngine(t)
	defer close()

	dbMock.ExpectBegin()
	expectSlotLock(dbMock, 5, slotRow(5, "18:00:00", 12))
	expectActorFetch(dbMock)
	// Existing reservation on another slot of the same day.
	expectExistingLookup(dbMock, existingRow(42, 9, "19:00:00"))
	expectPaidCheck(dbMock, true)
	expectEnrolledCount(dbMock, 5, 3)
	dbMock.ExpectExec("DELETE FROM timeslot_signups").
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectExec("INSERT INTO timeslot_signups").
		WithArgs(1, 5, 7, "2024-03-11").
		WillReturnResult(sqlmock.NewResult(2, 1))
	recorder.On("RecordTx", mock.Anything, mock.Anything, 1, 7, "Jane Doe", activity.EventGroupJoin,
		map[string]string{"group_title": "6pm", "group_date": "2024-03-11"}).Return(nil)
	dbMock.ExpectCommit()

	result, err := svc.Execute(context.Background(), 1, 7, 5, false)
	require.NoError(t, err)
	assert.Equal(t, ActionSwitch, result.Action)

	require.NoError(t, dbMock.ExpectationsWereMet())
	recorder.AssertExpectations(t)
	recorder.AssertNotCalled(t, "RecordTx",
		mock.Anything, mock.Anything, 1, 7, "Jane Doe", activity.EventGroupLeave, mock.Anything)
}

func TestExecuteDuplicateDayRejected(t *testing.T) {
	svc, dbMock, recorder, close := setupEngine(t)
	defer close()

	// A concurrent request slipped in between the lookup and the insert,
	// so the one-reservation-per-day constraint fires.
	dbMock.ExpectBegin()
	expectSlotLock(dbMock, 5, slotRow(5, "18:00:00", 12))
	expectActorFetch(dbMock)
	expectExistingLookup(dbMock, emptyExistingRows())
	expectPaidCheck(dbMock, true)
	expectEnrolledCount(dbMock, 5, 3)
	dbMock.ExpectExec("INSERT INTO timeslot_signups").
		WithArgs(1, 5, 7, "2024-03-11").
		WillReturnError(&pq.Error{Code: "23505"})
	dbMock.ExpectRollback()

	_, err := svc.Execute(context.Background(), 1, 7, 5, false)
	var rejection *Rejection
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, "You already have a reservation for this day", rejection.Reason)

	require.NoError(t, dbMock.ExpectationsWereMet())
	recorder.AssertNotCalled(t, "RecordTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecuteSlotNotFound(t *testing.T) {
	svc, dbMock, _, close := setupEngine(t)
	defer close()

	dbMock.ExpectBegin()
	expectSlotLock(dbMock, 99, sqlmock.NewRows([]string{"id"}))
	dbMock.ExpectRollback()

	_, err := svc.Execute(context.Background(), 1, 7, 99, false)
	require.ErrorIs(t, err, timeslot.ErrSlotNotFound)

	require.NoError(t, dbMock.ExpectationsWereMet())
}
