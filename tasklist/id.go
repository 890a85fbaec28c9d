package tasklist

import (
	"fmt"
	"time"

	"github.com/amonks/tasklist/internal/ids"
)

// GenerateID returns a fresh ID that taken reports as unused.
func GenerateID(timestamp time.Time, taken func(string) bool) string {
	return ids.New(timestamp, taken)
}

// IDIndex indexes task and section IDs for prefix matching and display.
type IDIndex struct {
	tasks    []string
	sections []string
}

// NewIDIndex builds an IDIndex from sections and their tasks.
func NewIDIndex(sections []Section) IDIndex {
	sectionIDs := make([]string, 0, len(sections))
	var taskIDs []string
	for _, section := range sections {
		sectionIDs = append(sectionIDs, section.ID)
		for _, task := range section.Tasks {
			taskIDs = append(taskIDs, task.ID)
		}
	}
	return IDIndex{
		tasks:    ids.NormalizeUniqueIDs(taskIDs),
		sections: ids.NormalizeUniqueIDs(sectionIDs),
	}
}

// ResolveTask returns the full task ID for a prefix.
func (index IDIndex) ResolveTask(prefix string) (string, error) {
	return resolvePrefix(index.tasks, prefix, ErrTaskNotFound)
}

// ResolveSection returns the full section ID for a prefix.
func (index IDIndex) ResolveSection(prefix string) (string, error) {
	return resolvePrefix(index.sections, prefix, ErrSectionNotFound)
}

// TaskPrefixLengths returns the shortest unique prefix length for each task ID.
func (index IDIndex) TaskPrefixLengths() map[string]int {
	return ids.UniquePrefixLengths(index.tasks)
}

// SectionPrefixLengths returns the shortest unique prefix length for each
// section ID.
func (index IDIndex) SectionPrefixLengths() map[string]int {
	return ids.UniquePrefixLengths(index.sections)
}

func resolvePrefix(candidates []string, prefix string, notFound error) (string, error) {
	match, found, ambiguous := ids.MatchPrefix(candidates, prefix)
	if !found {
		return "", fmt.Errorf("%w: %s", notFound, prefix)
	}
	if ambiguous {
		return "", fmt.Errorf("%w: %s", ErrAmbiguousIDPrefix, prefix)
	}
	return match, nil
}
