package tasklist

import (
	internalstrings "github.com/amonks/tasklist/internal/strings"
)

// AddSection appends a new, empty, expanded section and returns its ID.
// A title that is blank after trimming is rejected.
func (s *Store) AddSection(title string) (string, bool) {
	title = internalstrings.TrimSpace(title)
	if title == "" {
		return "", false
	}

	var id string
	changed := s.mutate("add section", func(sections []Section) ([]Section, bool) {
		id = GenerateID(s.now(), idTaken(sections))
		return append(sections, Section{
			ID:         id,
			Title:      title,
			Tasks:      []Task{},
			IsExpanded: true,
		}), true
	})
	if !changed {
		return "", false
	}
	return id, true
}

// DeleteSection removes a section together with its tasks.
func (s *Store) DeleteSection(sectionID string) bool {
	return s.mutate("delete section", func(sections []Section) ([]Section, bool) {
		idx := sectionIndex(sections, sectionID)
		if idx < 0 {
			return sections, false
		}
		return append(sections[:idx], sections[idx+1:]...), true
	})
}

// UpdateSection merges update into the section. A blank title is ignored,
// since section titles may not be empty.
func (s *Store) UpdateSection(sectionID string, update SectionUpdate) bool {
	if update.Title != nil {
		title := internalstrings.TrimSpace(*update.Title)
		if title == "" {
			update.Title = nil
		} else {
			update.Title = &title
		}
	}
	if update.IsEmpty() {
		return false
	}

	return s.mutate("update section", func(sections []Section) ([]Section, bool) {
		idx := sectionIndex(sections, sectionID)
		if idx < 0 {
			return sections, false
		}
		section := &sections[idx]
		changed := false
		if update.Title != nil && section.Title != *update.Title {
			section.Title = *update.Title
			changed = true
		}
		if update.IsExpanded != nil && section.IsExpanded != *update.IsExpanded {
			section.IsExpanded = *update.IsExpanded
			changed = true
		}
		return sections, changed
	})
}

// AddTask appends a new, untitled task to the section and returns its ID.
func (s *Store) AddTask(sectionID string) (string, bool) {
	var id string
	changed := s.mutate("add task", func(sections []Section) ([]Section, bool) {
		idx := sectionIndex(sections, sectionID)
		if idx < 0 {
			return sections, false
		}
		now := s.timestamp()
		id = GenerateID(now, idTaken(sections))
		sections[idx].Tasks = append(sections[idx].Tasks, Task{
			ID:        id,
			CreatedAt: now,
			SectionID: sections[idx].ID,
		})
		return sections, true
	})
	if !changed {
		return "", false
	}
	return id, true
}

// UpdateTask merges update into the task, wherever it lives.
func (s *Store) UpdateTask(taskID string, update TaskUpdate) bool {
	if update.IsEmpty() {
		return false
	}

	return s.mutate("update task", func(sections []Section) ([]Section, bool) {
		sectionIdx, taskIdx := findTask(sections, taskID)
		if sectionIdx < 0 {
			return sections, false
		}
		task := &sections[sectionIdx].Tasks[taskIdx]
		changed := false
		if update.Title != nil && task.Title != *update.Title {
			task.Title = *update.Title
			changed = true
		}
		if update.Description != nil && task.Description != *update.Description {
			task.Description = *update.Description
			changed = true
		}
		return sections, changed
	})
}

// CompleteTask toggles the task's completion. An active task gets a
// completion timestamp, a completed task loses it.
func (s *Store) CompleteTask(taskID string) bool {
	return s.mutate("complete task", func(sections []Section) ([]Section, bool) {
		sectionIdx, taskIdx := findTask(sections, taskID)
		if sectionIdx < 0 {
			return sections, false
		}
		task := &sections[sectionIdx].Tasks[taskIdx]
		if task.CompletedAt != nil {
			task.CompletedAt = nil
			return sections, true
		}
		completedAt := s.timestamp()
		if completedAt.Before(task.CreatedAt) {
			completedAt = task.CreatedAt
		}
		task.CompletedAt = &completedAt
		return sections, true
	})
}

// DeleteTask removes the task from its section.
func (s *Store) DeleteTask(taskID string) bool {
	return s.mutate("delete task", func(sections []Section) ([]Section, bool) {
		sectionIdx, taskIdx := findTask(sections, taskID)
		if sectionIdx < 0 {
			return sections, false
		}
		tasks := sections[sectionIdx].Tasks
		sections[sectionIdx].Tasks = append(tasks[:taskIdx], tasks[taskIdx+1:]...)
		return sections, true
	})
}

// MoveTask moves the task at sourceIndex of the source section to destIndex
// of the destination section. Indices address the unfiltered task sequence.
// See Reorder for the exact semantics. Moves are rejected while the
// completed view is shown.
func (s *Store) MoveTask(sourceSectionID string, sourceIndex int, destSectionID string, destIndex int) bool {
	move := Move{
		From: Location{SectionID: sourceSectionID, Index: sourceIndex},
		To:   Location{SectionID: destSectionID, Index: destIndex},
	}
	return s.mutate("move task", func(sections []Section) ([]Section, bool) {
		if s.view == ViewCompleted {
			s.logger.Debug("ignoring move while completed view is shown")
			return sections, false
		}
		return Reorder(sections, move)
	})
}

// ApplyDrop applies a drag-and-drop result. A drop without a destination
// changes nothing.
func (s *Store) ApplyDrop(result DropResult) bool {
	if result.Destination == nil {
		return false
	}
	return s.MoveTask(result.Source.SectionID, result.Source.Index, result.Destination.SectionID, result.Destination.Index)
}

// QuickAdd creates a task in the first section that has an active task and
// returns the new task's ID and section ID. It does nothing when no section
// has an active task.
func (s *Store) QuickAdd() (taskID string, sectionID string, ok bool) {
	s.mu.Lock()
	for _, section := range s.sections {
		for _, task := range section.Tasks {
			if !task.IsCompleted() {
				sectionID = section.ID
				break
			}
		}
		if sectionID != "" {
			break
		}
	}
	s.mu.Unlock()

	if sectionID == "" {
		return "", "", false
	}
	taskID, ok = s.AddTask(sectionID)
	if !ok {
		return "", "", false
	}
	return taskID, sectionID, true
}
