package tasktui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	internalstrings "github.com/amonks/tasklist/internal/strings"
	"github.com/amonks/tasklist/internal/ui"
	"github.com/amonks/tasklist/tasklist"
)

type rowKind int

const (
	rowSection rowKind = iota
	rowTask
)

// row is one selectable line of the list. Task rows carry the projected
// task, whose Index addresses the unfiltered section sequence.
type row struct {
	kind    rowKind
	section *tasklist.SectionSummary
	task    tasklist.ProjectedTask
	empty   bool
}

func (r row) key() string {
	if r.kind == rowTask {
		return "task:" + r.task.ID
	}
	return "section:" + r.section.ID
}

// buildRows flattens a projection into list rows. Tasks of collapsed
// sections are hidden.
func buildRows(sections []tasklist.SectionView) []row {
	rows := make([]row, 0, len(sections)*4)
	for _, section := range sections {
		rows = append(rows, row{kind: rowSection, section: section.SectionSummary, empty: len(section.Tasks) == 0})
		if !section.IsExpanded {
			continue
		}
		for _, task := range section.Tasks {
			rows = append(rows, row{kind: rowTask, section: section.SectionSummary, task: task})
		}
	}
	return rows
}

func formatSectionRow(r row, width int) string {
	marker := "v"
	if !r.section.IsExpanded {
		marker = ">"
	}
	progress := ui.FormatProgress(r.section.CompletedCount, r.section.TotalCount, 10)
	line := fmt.Sprintf("%s %s  %s", marker, r.section.Title, progress)
	if r.empty {
		line += "  (empty)"
	}
	return truncateText(line, width)
}

func formatTaskRow(r row, width int) string {
	check := "[ ]"
	if r.task.IsCompleted() {
		check = "[x]"
	}
	title := strings.TrimSpace(r.task.Title)
	if title == "" {
		title = "(untitled)"
	}
	line := fmt.Sprintf("  %s %s", check, title)
	if detail := internalstrings.FirstLine(r.task.Description); detail != "" {
		line += "  - " + detail
	}
	return truncateText(line, width)
}

func truncateText(value string, width int) string {
	if width <= 0 {
		return value
	}
	return runewidth.Truncate(value, width, "...")
}
