package main

import (
	"strings"
	"testing"
	"time"

	"github.com/amonks/tasklist/tasklist"
)

func TestShouldUseEditor(t *testing.T) {
	cases := []struct {
		name        string
		hasFlags    bool
		edit        bool
		noEdit      bool
		interactive bool
		want        bool
	}{
		{name: "edit flag wins", hasFlags: true, edit: true, want: true},
		{name: "no-edit flag wins", interactive: true, noEdit: true, want: false},
		{name: "flags skip editor", hasFlags: true, interactive: true, want: false},
		{name: "interactive default", interactive: true, want: true},
		{name: "non-interactive default", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := shouldUseEditor(tc.hasFlags, tc.edit, tc.noEdit, tc.interactive)
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestResolveDescriptionFromStdin(t *testing.T) {
	got, err := resolveDescriptionFromStdin("-", strings.NewReader("from stdin\r\n"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "from stdin" {
		t.Fatalf("expected %q, got %q", "from stdin", got)
	}

	got, err = resolveDescriptionFromStdin("literal", strings.NewReader("ignored"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "literal" {
		t.Fatalf("expected literal, got %q", got)
	}
}

func TestParseIndex(t *testing.T) {
	if got, err := parseIndex("src-index", "3"); err != nil || got != 3 {
		t.Fatalf("expected 3, got %d (%v)", got, err)
	}
	for _, value := range []string{"-1", "x", ""} {
		if _, err := parseIndex("src-index", value); err == nil {
			t.Fatalf("expected error for %q", value)
		}
	}
}

func TestLogHighlighter(t *testing.T) {
	highlight := logHighlighter(map[string]int{"abc123": 2}, func(id string, prefixLen int) string {
		return id[:prefixLen] + "|" + id[prefixLen:]
	})

	if got := highlight("ABC123"); got != "AB|C123" {
		t.Fatalf("expected case-insensitive lookup, got %q", got)
	}
	if got := highlight("zzz"); got != "|zzz" {
		t.Fatalf("expected unknown id unhighlighted, got %q", got)
	}
	if got := highlight(""); got != "" {
		t.Fatalf("expected empty id, got %q", got)
	}
}

func listFixture() []tasklist.Section {
	created := time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC)
	completed := created.Add(30 * time.Minute)
	return []tasklist.Section{
		{
			ID:         "1",
			Title:      "Personal Tasks",
			IsExpanded: true,
			Tasks: []tasklist.Task{
				{ID: "aaaa1111", Title: "Buy milk", CreatedAt: created, SectionID: "1"},
				{ID: "bbbb2222", Title: "Mail letter", CreatedAt: created, CompletedAt: &completed, SectionID: "1"},
				{ID: "cccc3333", Title: "Call mom", CreatedAt: created, SectionID: "1"},
			},
		},
		{ID: "2", Title: "Work", Tasks: []tasklist.Task{}},
	}
}

func taskIDs(entry listedSection) []string {
	ids := make([]string, 0, len(entry.tasks))
	for _, task := range entry.tasks {
		ids = append(ids, task.ID)
	}
	return ids
}

func TestListedSections(t *testing.T) {
	cases := []struct {
		name      string
		completed bool
		all       bool
		want      []string
		indices   []int
	}{
		{name: "active", want: []string{"aaaa1111", "cccc3333"}, indices: []int{0, 2}},
		{name: "completed", completed: true, want: []string{"bbbb2222"}, indices: []int{1}},
		{name: "all", all: true, want: []string{"aaaa1111", "bbbb2222", "cccc3333"}, indices: []int{0, 1, 2}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			listed := listedSections(listFixture(), tc.completed, tc.all)
			if len(listed) != 2 {
				t.Fatalf("expected both sections, got %d", len(listed))
			}
			got := taskIDs(listed[0])
			if strings.Join(got, ",") != strings.Join(tc.want, ",") {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i, task := range listed[0].tasks {
				if task.Index != tc.indices[i] {
					t.Fatalf("expected index %d for %s, got %d", tc.indices[i], task.ID, task.Index)
				}
			}
			if len(listed[1].tasks) != 0 {
				t.Fatalf("expected empty second section, got %v", taskIDs(listed[1]))
			}
		})
	}
}

func TestFormatSectionList(t *testing.T) {
	now := time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)
	listed := listedSections(listFixture(), false, false)

	output := formatSectionList(listed, func(id string) string { return id }, now)

	for _, want := range []string{
		"Personal Tasks (1) [###-------] 1/3",
		"Work (2) [----------] 0/0 collapsed",
		"No tasks.",
		"Buy milk",
		"1h",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected output to contain %q:\n%s", want, output)
		}
	}
	if strings.Contains(output, "Mail letter") {
		t.Fatalf("completed task listed in active view:\n%s", output)
	}
}

func TestFormatSectionListEmpty(t *testing.T) {
	output := formatSectionList(nil, func(id string) string { return id }, time.Now())
	if !strings.Contains(output, "No sections found") {
		t.Fatalf("unexpected output %q", output)
	}
}

func TestFormatTaskDetail(t *testing.T) {
	sections := listFixture()
	task := sections[0].Tasks[1]
	task.Description = "Stamps are in the drawer."

	output := formatTaskDetail(task, sections[0], func(id string) string { return id })

	for _, want := range []string{
		"ID:        bbbb2222",
		"Title:     Mail letter",
		"Section:   Personal Tasks (1)",
		"Status:    done",
		"Completed:",
		"Description:",
		"drawer",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected detail to contain %q:\n%s", want, output)
		}
	}
}
