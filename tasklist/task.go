// Package tasklist implements the section/task state engine of the personal
// task organizer.
//
// Tasks live in named, ordered sections. The Store owns the whole tree,
// applies every mutation, checks the tree's invariants after each change,
// and writes a JSON snapshot of the full section list through a Backend.
//
// The public API mirrors what a UI needs:
//   - AddSection, UpdateSection, DeleteSection for sections
//   - AddTask, UpdateTask, CompleteTask, DeleteTask, CommitTaskEdit for tasks
//   - MoveTask and ApplyDrop for drag-and-drop reordering
//   - QuickAdd for the global "new task" shortcut
//   - Project for the active and completed read-only views
package tasklist

import "time"

// Task is a single unit of work.
type Task struct {
	// ID is unique across the whole store and never changes.
	ID string `json:"id"`

	// Title is the short summary. It is empty only for a task that was just
	// created and not yet edited.
	Title string `json:"title"`

	// Description provides optional detail.
	Description string `json:"description"`

	// CreatedAt is when the task was created.
	CreatedAt time.Time `json:"createdAt"`

	// CompletedAt is when the task was completed. Nil means the task is active.
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	// SectionID mirrors the section that contains the task.
	SectionID string `json:"sectionId"`
}

// IsCompleted reports whether the task has a completion timestamp.
func (t Task) IsCompleted() bool {
	return t.CompletedAt != nil
}

// Section is a named, ordered group of tasks.
type Section struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Tasks      []Task `json:"tasks"`
	IsExpanded bool   `json:"isExpanded"`
}

// CompletedCount returns how many of the section's tasks are completed.
func (s Section) CompletedCount() int {
	count := 0
	for _, task := range s.Tasks {
		if task.IsCompleted() {
			count++
		}
	}
	return count
}

// View identifies which projection a collaborator is showing.
type View string

const (
	// ViewActive shows tasks without a completion timestamp.
	ViewActive View = "active"

	// ViewCompleted shows tasks with a completion timestamp.
	ViewCompleted View = "completed"
)

// IsValid returns true if the view is a known value.
func (v View) IsValid() bool {
	return v == ViewActive || v == ViewCompleted
}

// TaskUpdate configures fields to merge into a task.
// Nil pointers mean "don't update this field".
type TaskUpdate struct {
	Title       *string
	Description *string
}

// IsEmpty reports whether the update changes nothing.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil
}

// SectionUpdate configures fields to merge into a section.
// Nil pointers mean "don't update this field".
type SectionUpdate struct {
	Title      *string
	IsExpanded *bool
}

// IsEmpty reports whether the update changes nothing.
func (u SectionUpdate) IsEmpty() bool {
	return u.Title == nil && u.IsExpanded == nil
}

// StringPtr returns a pointer to value.
func StringPtr(value string) *string {
	return &value
}

// BoolPtr returns a pointer to value.
func BoolPtr(value bool) *bool {
	return &value
}

func cloneTask(task Task) Task {
	if task.CompletedAt != nil {
		completedAt := *task.CompletedAt
		task.CompletedAt = &completedAt
	}
	return task
}

func cloneSection(section Section) Section {
	tasks := make([]Task, len(section.Tasks))
	for i, task := range section.Tasks {
		tasks[i] = cloneTask(task)
	}
	section.Tasks = tasks
	return section
}

func cloneSections(sections []Section) []Section {
	cloned := make([]Section, len(sections))
	for i, section := range sections {
		cloned[i] = cloneSection(section)
	}
	return cloned
}
