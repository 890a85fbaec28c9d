package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/amonks/tasklist/internal/markdown"
	"github.com/amonks/tasklist/internal/ui"
	"github.com/amonks/tasklist/tasklist"
)

const taskDetailLineWidth = 80

func formatTaskDetail(task tasklist.Task, section tasklist.Section, highlight func(string) string) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "ID:        %s\n", highlight(task.ID))
	fmt.Fprintf(&builder, "Title:     %s\n", taskTitle(task))
	fmt.Fprintf(&builder, "Section:   %s (%s)\n", section.Title, section.ID)
	fmt.Fprintf(&builder, "Status:    %s\n", taskStatus(task))
	now := time.Now()
	fmt.Fprintf(&builder, "Created:   %s (%s)\n", task.CreatedAt.Local().Format("2006-01-02 15:04:05"), ui.FormatTimeAgo(task.CreatedAt, now))
	if task.CompletedAt != nil {
		fmt.Fprintf(&builder, "Completed: %s\n", task.CompletedAt.Local().Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(&builder, "Age:       %s\n", ui.FormatTaskAge(task.CreatedAt, task.CompletedAt, now))

	if strings.TrimSpace(task.Description) != "" {
		fmt.Fprintf(&builder, "\nDescription:\n%s\n", renderMarkdownOrDash(task.Description, taskDetailLineWidth))
	}
	return builder.String()
}

func renderMarkdownOrDash(value string, width int) string {
	formatted := markdown.SafeRender(width, 0, []byte(value))
	if strings.TrimSpace(string(formatted)) == "" {
		return "-"
	}
	return strings.TrimRight(string(formatted), "\n")
}
