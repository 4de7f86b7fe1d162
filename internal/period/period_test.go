package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCurrent(t *testing.T) {
	tests := []struct {
		name      string
		anchorDay int
		ref       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "before anchor day rolls back a month",
			anchorDay: 15,
			ref:       date(2024, time.January, 10),
			wantStart: date(2023, time.December, 15),
			wantEnd:   date(2024, time.January, 15),
		},
		{
			name:      "after anchor day stays in month",
			anchorDay: 15,
			ref:       date(2024, time.January, 20),
			wantStart: date(2024, time.January, 15),
			wantEnd:   date(2024, time.February, 15),
		},
		{
			name:      "on anchor day starts new period",
			anchorDay: 15,
			ref:       date(2024, time.January, 15),
			wantStart: date(2024, time.January, 15),
			wantEnd:   date(2024, time.February, 15),
		},
		{
			name:      "anchor 31 clamps to leap February",
			anchorDay: 31,
			ref:       date(2024, time.February, 15),
			wantStart: date(2024, time.January, 31),
			wantEnd:   date(2024, time.February, 29),
		},
		{
			name:      "anchor 31 clamps to non-leap February",
			anchorDay: 31,
			ref:       date(2023, time.February, 15),
			wantStart: date(2023, time.January, 31),
			wantEnd:   date(2023, time.February, 28),
		},
		{
			name:      "anchor 31 clamps to thirty-day month",
			anchorDay: 31,
			ref:       date(2024, time.April, 10),
			wantStart: date(2024, time.March, 31),
			wantEnd:   date(2024, time.April, 30),
		},
		{
			name:      "december wraps into january",
			anchorDay: 10,
			ref:       date(2023, time.December, 20),
			wantStart: date(2023, time.December, 10),
			wantEnd:   date(2024, time.January, 10),
		},
		{
			name:      "january before anchor wraps back to december",
			anchorDay: 10,
			ref:       date(2024, time.January, 5),
			wantStart: date(2023, time.December, 10),
			wantEnd:   date(2024, time.January, 10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := Current(tt.anchorDay, tt.ref)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestContains(t *testing.T) {
	start := date(2024, time.January, 15)
	end := date(2024, time.February, 15)

	assert.True(t, Contains(start, end, start), "start is inclusive")
	assert.True(t, Contains(start, end, date(2024, time.February, 14)))
	assert.False(t, Contains(start, end, end), "end is exclusive")
	assert.False(t, Contains(start, end, date(2024, time.January, 14)))
}
