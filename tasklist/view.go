package tasklist

// SectionSummary is the section metadata shared by both projections.
type SectionSummary struct {
	ID             string
	Title          string
	IsExpanded     bool
	CompletedCount int
	TotalCount     int
}

// Progress returns the completed share of the section's tasks, from 0 to 1.
// It is 0 for a section without tasks.
func (s *SectionSummary) Progress() float64 {
	if s.TotalCount == 0 {
		return 0
	}
	return float64(s.CompletedCount) / float64(s.TotalCount)
}

// ProjectedTask is a task as it appears in one projection.
type ProjectedTask struct {
	Task

	// Index is the task's position in the unfiltered section sequence,
	// which is the index space MoveTask works in.
	Index int
}

// SectionView is one section inside a projection.
type SectionView struct {
	*SectionSummary
	Tasks []ProjectedTask
}

// Projection holds the active and completed views of a section list.
type Projection struct {
	Active    []SectionView
	Completed []SectionView
}

// View returns the sections for the given view.
func (p Projection) View(view View) []SectionView {
	if view == ViewCompleted {
		return p.Completed
	}
	return p.Active
}

// Project derives the active and completed views from sections.
//
// Every section appears in both views, in store order, even when its filtered
// task list is empty. Each task keeps its relative order. Both views point at
// the same SectionSummary for a given section.
func Project(sections []Section) Projection {
	projection := Projection{
		Active:    make([]SectionView, 0, len(sections)),
		Completed: make([]SectionView, 0, len(sections)),
	}

	for _, section := range sections {
		summary := &SectionSummary{
			ID:         section.ID,
			Title:      section.Title,
			IsExpanded: section.IsExpanded,
			TotalCount: len(section.Tasks),
		}

		active := SectionView{SectionSummary: summary, Tasks: []ProjectedTask{}}
		completed := SectionView{SectionSummary: summary, Tasks: []ProjectedTask{}}
		for i, task := range section.Tasks {
			projected := ProjectedTask{Task: cloneTask(task), Index: i}
			if task.IsCompleted() {
				completed.Tasks = append(completed.Tasks, projected)
				summary.CompletedCount++
				continue
			}
			active.Tasks = append(active.Tasks, projected)
		}

		projection.Active = append(projection.Active, active)
		projection.Completed = append(projection.Completed, completed)
	}

	return projection
}
