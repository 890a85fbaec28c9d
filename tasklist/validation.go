package tasklist

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTitle indicates a title that is blank after trimming.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrTaskNotFound indicates no task matches the given ID.
	ErrTaskNotFound = errors.New("task not found")

	// ErrSectionNotFound indicates no section matches the given ID.
	ErrSectionNotFound = errors.New("section not found")

	// ErrAmbiguousIDPrefix indicates an ID prefix matches more than one ID.
	ErrAmbiguousIDPrefix = errors.New("ambiguous ID prefix")

	// ErrDuplicateTaskID indicates two tasks share an ID.
	ErrDuplicateTaskID = errors.New("duplicate task ID")

	// ErrDuplicateSectionID indicates two sections share an ID.
	ErrDuplicateSectionID = errors.New("duplicate section ID")

	// ErrSectionMismatch indicates a task whose SectionID does not match the
	// section that contains it.
	ErrSectionMismatch = errors.New("task section back-reference mismatch")

	// ErrCompletedBeforeCreated indicates a completion timestamp earlier than
	// the creation timestamp.
	ErrCompletedBeforeCreated = errors.New("task completed before it was created")

	// ErrMissingID indicates a task or section without an ID.
	ErrMissingID = errors.New("missing ID")
)

// InvariantError describes the first invariant violation found in a tree.
type InvariantError struct {
	// Path locates the offending item, e.g. "sections[1].tasks[0]".
	Path string
	Err  error
}

func (e *InvariantError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *InvariantError) Unwrap() error {
	return e.Err
}

// CheckInvariants verifies that sections form a consistent tree:
// IDs are present and unique, every task points back at its section, and no
// task was completed before it was created.
func CheckInvariants(sections []Section) error {
	sectionIDs := make(map[string]struct{}, len(sections))
	taskIDs := make(map[string]struct{})

	for i, section := range sections {
		path := fmt.Sprintf("sections[%d]", i)
		if section.ID == "" {
			return &InvariantError{Path: path + ".id", Err: ErrMissingID}
		}
		if _, ok := sectionIDs[section.ID]; ok {
			return &InvariantError{Path: path + ".id", Err: fmt.Errorf("%w: %s", ErrDuplicateSectionID, section.ID)}
		}
		sectionIDs[section.ID] = struct{}{}

		for j, task := range section.Tasks {
			taskPath := fmt.Sprintf("%s.tasks[%d]", path, j)
			if task.ID == "" {
				return &InvariantError{Path: taskPath + ".id", Err: ErrMissingID}
			}
			if _, ok := taskIDs[task.ID]; ok {
				return &InvariantError{Path: taskPath + ".id", Err: fmt.Errorf("%w: %s", ErrDuplicateTaskID, task.ID)}
			}
			taskIDs[task.ID] = struct{}{}

			if task.SectionID != section.ID {
				return &InvariantError{
					Path: taskPath + ".sectionId",
					Err:  fmt.Errorf("%w: %q in section %q", ErrSectionMismatch, task.SectionID, section.ID),
				}
			}
			if task.CompletedAt != nil && task.CompletedAt.Before(task.CreatedAt) {
				return &InvariantError{Path: taskPath + ".completedAt", Err: ErrCompletedBeforeCreated}
			}
		}
	}

	return nil
}

// relinkSections rewrites every task's SectionID from containment.
// It reports whether any back-reference changed.
func relinkSections(sections []Section) bool {
	changed := false
	for i := range sections {
		for j := range sections[i].Tasks {
			if sections[i].Tasks[j].SectionID != sections[i].ID {
				sections[i].Tasks[j].SectionID = sections[i].ID
				changed = true
			}
		}
	}
	return changed
}
