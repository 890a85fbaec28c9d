package ui

import (
	"fmt"
	"time"

	internalage "github.com/amonks/tasklist/internal/age"
)

// FormatTimeAgo returns a compact age string like "2m ago".
func FormatTimeAgo(then time.Time, now time.Time) string {
	duration, ok := internalage.Since(then, now)
	if !ok {
		return "-"
	}
	return FormatDurationShort(duration) + " ago"
}

// FormatTaskAge returns a task's compact age, like "3h". Completed tasks
// stop aging when they are completed.
func FormatTaskAge(createdAt time.Time, completedAt *time.Time, now time.Time) string {
	duration, ok := internalage.TaskData(createdAt, completedAt, now)
	if !ok {
		return "-"
	}
	return FormatDurationShort(duration)
}

// FormatDurationShort formats a duration using short units (s/m/h/d).
func FormatDurationShort(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}

	duration = duration.Truncate(time.Second)
	seconds := int64(duration.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh", hours)
	}

	days := hours / 24
	return fmt.Sprintf("%dd", days)
}
