package integration_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joroheos90/easygymapp/internal/timeslot"
)

func TestPublishDay_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	cleanDatabase(t, db)

	gymID := createTestGym(t, db, "Publish Gym")

	_, err := db.Exec(`
		INSERT INTO base_timeslots (gym_id, title, start_time, capacity, sort_order)
		VALUES ($1, '6am', '06:00:00', 12, 1),
		       ($1, '7am', '07:00:00', 12, 2),
		       ($1, 'Retired', '08:00:00', 12, 3)
	`, gymID)
	require.NoError(t, err)

	_, err = db.Exec(`UPDATE base_timeslots SET is_active = false WHERE gym_id = $1 AND title = 'Retired'`, gymID)
	require.NoError(t, err)

	repo := timeslot.NewRepository(db)
	ctx := context.Background()

	date := time.Now().AddDate(0, 0, 1)

	created, err := repo.PublishDay(ctx, gymID, date)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	// Publishing again is a no-op.
	created, err = repo.PublishDay(ctx, gymID, date)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	slots, err := repo.ListByDate(ctx, gymID, date)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "6am", slots[0].Title)
	assert.Equal(t, 0, slots[0].Enrolled)
}

func TestPublishDayTenantIsolation_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	cleanDatabase(t, db)

	gymA := createTestGym(t, db, "Gym A")
	gymB := createTestGym(t, db, "Gym B")

	_, err := db.Exec(`
		INSERT INTO base_timeslots (gym_id, title, start_time, capacity)
		VALUES ($1, '6am', '06:00:00', 12)
	`, gymA)
	require.NoError(t, err)

	repo := timeslot.NewRepository(db)
	ctx := context.Background()

	date := time.Now().AddDate(0, 0, 1)

	created, err := repo.PublishDay(ctx, gymA, date)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	created, err = repo.PublishDay(ctx, gymB, date)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	slots, err := repo.ListByDate(ctx, gymB, date)
	require.NoError(t, err)
	assert.Empty(t, slots)
}
