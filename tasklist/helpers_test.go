package tasklist

import (
	"testing"
	"time"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestStore(t *testing.T) (*Store, *MemoryBackend, *testClock) {
	t.Helper()

	backend := NewMemoryBackend()
	clock := &testClock{now: time.Date(2026, 1, 20, 10, 30, 0, 0, time.UTC)}
	store, err := Open(backend, Options{Now: clock.Now})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store, backend, clock
}

func mustAddTask(t *testing.T, store *Store, sectionID, title string) string {
	t.Helper()

	id, ok := store.AddTask(sectionID)
	if !ok {
		t.Fatalf("add task to section %q failed", sectionID)
	}
	if title != "" {
		if outcome := store.CommitTaskEdit(id, TaskEdit{Title: title}); outcome != EditCommitted {
			t.Fatalf("commit title %q: got %s", title, outcome)
		}
	}
	return id
}

func taskTitles(section Section) []string {
	titles := make([]string, 0, len(section.Tasks))
	for _, task := range section.Tasks {
		titles = append(titles, task.Title)
	}
	return titles
}

func mustSection(t *testing.T, store *Store, id string) Section {
	t.Helper()

	section, ok := store.Section(id)
	if !ok {
		t.Fatalf("section %q not found", id)
	}
	return section
}

func assertBackReferences(t *testing.T, sections []Section) {
	t.Helper()

	for _, section := range sections {
		for _, task := range section.Tasks {
			if task.SectionID != section.ID {
				t.Fatalf("task %q has section %q but lives in %q", task.ID, task.SectionID, section.ID)
			}
		}
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
