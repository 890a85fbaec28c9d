package tasklist

import (
	internalstrings "github.com/amonks/tasklist/internal/strings"
)

// EditOutcome reports what CommitTaskEdit did with a pending edit.
type EditOutcome int

const (
	// EditCommitted means the edit was saved.
	EditCommitted EditOutcome = iota

	// EditRejected means the edit had a blank title and was not saved.
	// The task is unchanged and the editor should stay open.
	EditRejected

	// EditDiscarded means the task had never been titled and the edit left
	// it blank, so the task was deleted.
	EditDiscarded

	// EditStale means the task no longer exists and the edit was dropped.
	EditStale
)

func (o EditOutcome) String() string {
	switch o {
	case EditCommitted:
		return "committed"
	case EditRejected:
		return "rejected"
	case EditDiscarded:
		return "discarded"
	case EditStale:
		return "stale"
	default:
		return "unknown"
	}
}

// TaskEdit is the pending content of an inline task editor.
type TaskEdit struct {
	Title       string
	Description string
}

// IsBlank reports whether both fields are blank.
func (e TaskEdit) IsBlank() bool {
	return internalstrings.IsBlank(e.Title) && internalstrings.IsBlank(e.Description)
}

// CommitTaskEdit saves a pending edit for the task.
//
// The title must not be blank. When the task was never titled and the edit
// is entirely blank, the task is deleted instead. An edit for a task that has
// been deleted in the meantime is dropped.
func (s *Store) CommitTaskEdit(taskID string, edit TaskEdit) EditOutcome {
	current, ok := s.Task(taskID)
	if !ok {
		return EditStale
	}

	title := internalstrings.TrimSpace(edit.Title)
	if title == "" {
		if current.Title == "" && edit.IsBlank() {
			if s.DeleteTask(taskID) {
				return EditDiscarded
			}
			return EditStale
		}
		return EditRejected
	}

	description := internalstrings.TrimTrailingNewlines(internalstrings.NormalizeNewlines(edit.Description))
	s.UpdateTask(taskID, TaskUpdate{Title: &title, Description: &description})
	if _, ok := s.Task(taskID); !ok {
		return EditStale
	}
	return EditCommitted
}

// DismissTaskEdit abandons a pending edit. A task that was never titled is
// deleted, as it would otherwise linger as an empty record. It reports
// whether the task was deleted.
func (s *Store) DismissTaskEdit(taskID string) bool {
	current, ok := s.Task(taskID)
	if !ok || current.Title != "" || !internalstrings.IsBlank(current.Description) {
		return false
	}
	return s.DeleteTask(taskID)
}
