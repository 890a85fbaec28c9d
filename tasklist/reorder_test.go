package tasklist

import (
	"testing"
	"time"
)

func reorderFixture() []Section {
	created := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	task := func(id, sectionID string) Task {
		return Task{ID: id, Title: id, CreatedAt: created, SectionID: sectionID}
	}
	return []Section{
		{ID: "a", Title: "A", IsExpanded: true, Tasks: []Task{task("t1", "a"), task("t2", "a"), task("t3", "a")}},
		{ID: "b", Title: "B", IsExpanded: true, Tasks: []Task{task("u1", "b")}},
		{ID: "c", Title: "C", IsExpanded: true, Tasks: []Task{}},
	}
}

func TestReorder(t *testing.T) {
	cases := []struct {
		name    string
		move    Move
		wantA   []string
		wantB   []string
		wantC   []string
		changed bool
	}{
		{
			name:    "forward within section removes then inserts",
			move:    Move{From: Location{"a", 0}, To: Location{"a", 2}},
			wantA:   []string{"t2", "t3", "t1"},
			wantB:   []string{"u1"},
			wantC:   []string{},
			changed: true,
		},
		{
			name:    "backward within section",
			move:    Move{From: Location{"a", 2}, To: Location{"a", 0}},
			wantA:   []string{"t3", "t1", "t2"},
			wantB:   []string{"u1"},
			wantC:   []string{},
			changed: true,
		},
		{
			name:    "same position",
			move:    Move{From: Location{"a", 1}, To: Location{"a", 1}},
			wantA:   []string{"t1", "t2", "t3"},
			wantB:   []string{"u1"},
			wantC:   []string{},
			changed: true,
		},
		{
			name:    "across sections",
			move:    Move{From: Location{"a", 1}, To: Location{"b", 0}},
			wantA:   []string{"t1", "t3"},
			wantB:   []string{"t2", "u1"},
			wantC:   []string{},
			changed: true,
		},
		{
			name:    "into empty section",
			move:    Move{From: Location{"b", 0}, To: Location{"c", 0}},
			wantA:   []string{"t1", "t2", "t3"},
			wantB:   []string{},
			wantC:   []string{"u1"},
			changed: true,
		},
		{
			name:    "destination past end appends",
			move:    Move{From: Location{"a", 0}, To: Location{"b", 99}},
			wantA:   []string{"t2", "t3"},
			wantB:   []string{"u1", "t1"},
			wantC:   []string{},
			changed: true,
		},
		{
			name:  "unknown source section",
			move:  Move{From: Location{"x", 0}, To: Location{"a", 0}},
			wantA: []string{"t1", "t2", "t3"},
			wantB: []string{"u1"},
			wantC: []string{},
		},
		{
			name:  "unknown destination section",
			move:  Move{From: Location{"a", 0}, To: Location{"x", 0}},
			wantA: []string{"t1", "t2", "t3"},
			wantB: []string{"u1"},
			wantC: []string{},
		},
		{
			name:  "source index out of range",
			move:  Move{From: Location{"a", 3}, To: Location{"a", 0}},
			wantA: []string{"t1", "t2", "t3"},
			wantB: []string{"u1"},
			wantC: []string{},
		},
		{
			name:  "negative source index",
			move:  Move{From: Location{"a", -1}, To: Location{"a", 0}},
			wantA: []string{"t1", "t2", "t3"},
			wantB: []string{"u1"},
			wantC: []string{},
		},
		{
			name:  "negative destination index",
			move:  Move{From: Location{"a", 0}, To: Location{"b", -1}},
			wantA: []string{"t1", "t2", "t3"},
			wantB: []string{"u1"},
			wantC: []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sections := reorderFixture()
			got, changed := Reorder(sections, tc.move)
			if changed != tc.changed {
				t.Fatalf("expected changed=%v, got %v", tc.changed, changed)
			}
			for i, want := range [][]string{tc.wantA, tc.wantB, tc.wantC} {
				titles := taskTitles(got[i])
				if !equalStrings(titles, want) {
					t.Errorf("section %s: expected %v, got %v", got[i].ID, want, titles)
				}
			}
			assertBackReferences(t, got)
		})
	}
}

func TestReorder_DoesNotModifyInput(t *testing.T) {
	sections := reorderFixture()

	got, changed := Reorder(sections, Move{From: Location{"a", 0}, To: Location{"b", 1}})
	if !changed {
		t.Fatalf("expected move to apply")
	}
	if titles := taskTitles(sections[0]); !equalStrings(titles, []string{"t1", "t2", "t3"}) {
		t.Fatalf("input source section changed: %v", titles)
	}
	if titles := taskTitles(sections[1]); !equalStrings(titles, []string{"u1"}) {
		t.Fatalf("input destination section changed: %v", titles)
	}
	if sections[0].Tasks[0].SectionID != "a" {
		t.Fatalf("input task back-reference changed")
	}
	if got[1].Tasks[1].SectionID != "b" {
		t.Fatalf("moved task should point at its new section, got %q", got[1].Tasks[1].SectionID)
	}
}

func TestReorder_PreservesTaskCount(t *testing.T) {
	moves := []Move{
		{From: Location{"a", 0}, To: Location{"c", 0}},
		{From: Location{"c", 0}, To: Location{"b", 1}},
		{From: Location{"b", 0}, To: Location{"a", 5}},
		{From: Location{"a", 2}, To: Location{"a", 0}},
	}

	sections := reorderFixture()
	for _, move := range moves {
		var changed bool
		sections, changed = Reorder(sections, move)
		if !changed {
			t.Fatalf("move %+v did not apply", move)
		}
		total := 0
		for _, section := range sections {
			total += len(section.Tasks)
		}
		if total != 4 {
			t.Fatalf("expected 4 tasks after %+v, got %d", move, total)
		}
		if err := CheckInvariants(sections); err != nil {
			t.Fatalf("invariants violated after %+v: %v", move, err)
		}
	}
}
