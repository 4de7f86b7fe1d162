// Package period computes per-member billing periods. Each member's period
// is a month-long window anchored to the day of month they joined.
package period

import "time"

// Current returns the billing period containing ref for the given anchor
// day. The window is half open: start is inclusive, end exclusive. Anchor
// days past the end of a month clamp to that month's last day.
func Current(anchorDay int, ref time.Time) (start, end time.Time) {
	year, month, day := ref.Date()
	if day < anchorDay {
		month--
		if month < time.January {
			month = time.December
			year--
		}
	}

	start = anchoredDate(year, month, anchorDay, ref.Location())

	endYear, endMonth := year, month+1
	if endMonth > time.December {
		endMonth = time.January
		endYear++
	}
	end = anchoredDate(endYear, endMonth, anchorDay, ref.Location())

	return start, end
}

// Contains reports whether d falls inside [start, end).
func Contains(start, end, d time.Time) bool {
	return !d.Before(start) && d.Before(end)
}

func anchoredDate(year int, month time.Month, day int, loc *time.Location) time.Time {
	if max := daysIn(year, month); day > max {
		day = max
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

func daysIn(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
