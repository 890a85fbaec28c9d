package tasklist

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestEncodeSnapshot_Shape(t *testing.T) {
	created := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	sections := []Section{
		{ID: "1", Title: "Personal Tasks", IsExpanded: true, Tasks: []Task{
			{ID: "abc", Title: "Read", Description: "chapter 3", CreatedAt: created, SectionID: "1"},
		}},
		{ID: "2", Title: "Work"},
	}

	data, err := EncodeSnapshot(sections)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Fatalf("expected trailing newline")
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("snapshot should be a JSON array: %v", err)
	}
	if _, ok := raw[0]["isExpanded"]; !ok {
		t.Fatalf("expected camelCase isExpanded key, got %v", raw[0])
	}
	tasks, ok := raw[1]["tasks"].([]any)
	if !ok || len(tasks) != 0 {
		t.Fatalf("expected empty tasks array for section without tasks, got %v", raw[1]["tasks"])
	}
	task := raw[0]["tasks"].([]any)[0].(map[string]any)
	for _, key := range []string{"id", "title", "description", "createdAt", "sectionId"} {
		if _, ok := task[key]; !ok {
			t.Errorf("expected task key %q", key)
		}
	}
	if _, ok := task["completedAt"]; ok {
		t.Errorf("active task should not carry completedAt")
	}
}

func TestDecodeSnapshot_RoundTrip(t *testing.T) {
	created := time.Date(2026, 3, 4, 5, 6, 7, 800, time.UTC)
	completed := created.Add(2 * time.Hour)
	sections := []Section{
		{ID: "1", Title: "Home", IsExpanded: false, Tasks: []Task{
			{ID: "x1", Title: "Laundry", CreatedAt: created, CompletedAt: &completed, SectionID: "1"},
			{ID: "x2", Title: "Dishes", Description: "all of them\nreally", CreatedAt: created, SectionID: "1"},
		}},
	}

	data, err := EncodeSnapshot(sections)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	assertSameTree(t, sections, decoded)
}

func TestDecodeSnapshot_RelinksSectionIDs(t *testing.T) {
	data := []byte(`[
		{"id":"a","title":"A","isExpanded":true,"tasks":[
			{"id":"t1","title":"one","description":"","createdAt":"2024-05-01T10:00:00Z"},
			{"id":"t2","title":"two","description":"","createdAt":"2024-05-01T10:00:00Z","sectionId":"stale"}
		]}
	]`)

	sections, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	assertBackReferences(t, sections)
}

func TestDecodeSnapshot_AcceptsNullCompletedAt(t *testing.T) {
	data := []byte(`[{"id":"a","title":"A","tasks":[
		{"id":"t1","title":"one","createdAt":"2024-05-01T10:00:00Z","completedAt":null}
	]}]`)

	sections, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sections[0].Tasks[0].IsCompleted() {
		t.Fatalf("null completedAt should decode as active")
	}
}

func TestDecodeSnapshot_ReportsProblems(t *testing.T) {
	data := []byte(`[{"id":"a","title":"A","tasks":[{"id":"t1","createdAt":"2024-05-01T10:00:00Z"}]}]`)

	_, err := DecodeSnapshot(data)
	var snapshotErr *SnapshotError
	if !errors.As(err, &snapshotErr) {
		t.Fatalf("expected SnapshotError, got %v", err)
	}
	if len(snapshotErr.Problems) == 0 {
		t.Fatalf("expected at least one problem")
	}
	if !strings.Contains(snapshotErr.Problems[0], "[0].tasks[0]") {
		t.Fatalf("expected problem to locate the task, got %q", snapshotErr.Problems[0])
	}
}

func TestDecodeSnapshot_InvariantViolation(t *testing.T) {
	data := []byte(`[
		{"id":"a","title":"A","tasks":[]},
		{"id":"a","title":"B","tasks":[]}
	]`)

	_, err := DecodeSnapshot(data)
	var snapshotErr *SnapshotError
	if !errors.As(err, &snapshotErr) {
		t.Fatalf("expected SnapshotError, got %v", err)
	}
	if !strings.Contains(err.Error(), "duplicate section ID") {
		t.Fatalf("expected duplicate section error, got %v", err)
	}
}

func TestJSONPointerToPath(t *testing.T) {
	cases := []struct {
		ptr  string
		want string
	}{
		{ptr: "", want: ""},
		{ptr: "#", want: ""},
		{ptr: "/0", want: "[0]"},
		{ptr: "/1/tasks/2/createdAt", want: "[1].tasks[2].createdAt"},
		{ptr: "#/0/a~1b", want: "[0].a/b"},
	}

	for _, tc := range cases {
		if got := jsonPointerToPath(tc.ptr); got != tc.want {
			t.Errorf("jsonPointerToPath(%q) = %q, want %q", tc.ptr, got, tc.want)
		}
	}
}

func TestDefaultSections(t *testing.T) {
	sections := DefaultSections(nil)
	if len(sections) != len(DefaultSectionTitles) {
		t.Fatalf("expected %d sections, got %d", len(DefaultSectionTitles), len(sections))
	}
	if err := CheckInvariants(sections); err != nil {
		t.Fatalf("default sections violate invariants: %v", err)
	}
	if sections[1].ID != "2" || sections[1].Title != "Work" {
		t.Fatalf("unexpected second section: %+v", sections[1])
	}
}
