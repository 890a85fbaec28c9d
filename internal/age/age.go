// Package age computes how long a task has been open.
package age

import "time"

// Since returns how long ago then was, clamped to zero. ok is false when
// then is unset.
func Since(then time.Time, now time.Time) (time.Duration, bool) {
	if then.IsZero() {
		return 0, false
	}
	if now.Before(then) {
		return 0, true
	}
	return now.Sub(then), true
}

// TaskData computes a task's display age. An active task ages until now; a
// completed task's age is frozen at its completion time.
func TaskData(createdAt time.Time, completedAt *time.Time, now time.Time) (time.Duration, bool) {
	if completedAt == nil {
		return Since(createdAt, now)
	}
	if completedAt.IsZero() {
		return 0, false
	}
	return Since(createdAt, *completedAt)
}
