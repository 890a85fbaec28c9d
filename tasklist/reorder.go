package tasklist

// Location is a position inside a section's task sequence.
type Location struct {
	SectionID string
	Index     int
}

// Move describes one drag-and-drop move between two locations.
type Move struct {
	From Location
	To   Location
}

// DropResult is what a drag-and-drop layer reports when a drag ends.
// Destination is nil when the item was dropped outside any section.
type DropResult struct {
	Source      Location
	Destination *Location
}

// Reorder applies move to sections and returns the rearranged copy.
//
// The task at From.Index is removed first and then inserted at To.Index of
// the (possibly shortened) destination sequence, so indices after the
// source position shift down by one before To.Index applies. A destination
// index past the end appends. The moved task takes the destination
// section's ID. Reorder returns false and the original slice when either
// section is unknown, the source index is out of range, or the destination
// index is negative. The input slice is never modified.
func Reorder(sections []Section, move Move) ([]Section, bool) {
	sourceIdx := sectionIndex(sections, move.From.SectionID)
	destIdx := sectionIndex(sections, move.To.SectionID)
	if sourceIdx < 0 || destIdx < 0 {
		return sections, false
	}

	sourceTasks := sections[sourceIdx].Tasks
	if move.From.Index < 0 || move.From.Index >= len(sourceTasks) {
		return sections, false
	}
	if move.To.Index < 0 {
		return sections, false
	}

	result := make([]Section, len(sections))
	copy(result, sections)

	remaining := make([]Task, 0, len(sourceTasks))
	remaining = append(remaining, sourceTasks[:move.From.Index]...)
	remaining = append(remaining, sourceTasks[move.From.Index+1:]...)
	moved := cloneTask(sourceTasks[move.From.Index])

	if sourceIdx == destIdx {
		result[sourceIdx].Tasks = insertTask(remaining, move.To.Index, moved)
		return result, true
	}

	moved.SectionID = sections[destIdx].ID
	result[sourceIdx].Tasks = remaining
	destTasks := make([]Task, len(sections[destIdx].Tasks))
	copy(destTasks, sections[destIdx].Tasks)
	result[destIdx].Tasks = insertTask(destTasks, move.To.Index, moved)
	return result, true
}

func insertTask(tasks []Task, index int, task Task) []Task {
	if index > len(tasks) {
		index = len(tasks)
	}
	tasks = append(tasks, Task{})
	copy(tasks[index+1:], tasks[index:])
	tasks[index] = task
	return tasks
}

func sectionIndex(sections []Section, id string) int {
	for i := range sections {
		if sections[i].ID == id {
			return i
		}
	}
	return -1
}
