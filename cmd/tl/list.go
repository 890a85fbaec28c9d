package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/tasklist/internal/listflags"
	"github.com/amonks/tasklist/internal/ui"
	"github.com/amonks/tasklist/tasklist"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks by section",
	Long: `List tasks by section.

By default only open tasks are shown. Use --completed for the completed
view, or --all for every task. The # column is the task's position in its
section, as accepted by "tl move".`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listCompleted bool
	listAll       bool
	listJSON      bool
)

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listCompleted, "completed", false, "Show completed tasks")
	listflags.AddAllFlag(listCmd, &listAll)
	listflags.AddJSONFlag(listCmd, &listJSON)
}

func runList(cmd *cobra.Command, args []string) error {
	if listCompleted && listAll {
		return fmt.Errorf("--completed and --all cannot be combined")
	}

	return withTaskList(func(store *tasklist.Store) error {
		sections := listedSections(store.Sections(), listCompleted, listAll)
		if listJSON {
			return encodeJSONToStdout(sectionsForJSON(sections))
		}

		highlight := logHighlighter(store.IDIndex().TaskPrefixLengths(), ui.HighlightID)
		fmt.Print(formatSectionList(sections, highlight, time.Now()))
		return nil
	})
}

// listedSection is a section together with the tasks one listing shows.
type listedSection struct {
	summary *tasklist.SectionSummary
	tasks   []tasklist.ProjectedTask
}

func listedSections(sections []tasklist.Section, completed, all bool) []listedSection {
	projection := tasklist.Project(sections)
	view := tasklist.ViewActive
	if completed {
		view = tasklist.ViewCompleted
	}

	var listed []listedSection
	for i, section := range projection.View(view) {
		entry := listedSection{summary: section.SectionSummary, tasks: section.Tasks}
		if all {
			entry.tasks = make([]tasklist.ProjectedTask, 0, len(sections[i].Tasks))
			for index, task := range sections[i].Tasks {
				entry.tasks = append(entry.tasks, tasklist.ProjectedTask{Task: task, Index: index})
			}
		}
		listed = append(listed, entry)
	}
	return listed
}

func sectionsForJSON(listed []listedSection) []tasklist.Section {
	sections := make([]tasklist.Section, 0, len(listed))
	for _, entry := range listed {
		tasks := make([]tasklist.Task, 0, len(entry.tasks))
		for _, task := range entry.tasks {
			tasks = append(tasks, task.Task)
		}
		sections = append(sections, tasklist.Section{
			ID:         entry.summary.ID,
			Title:      entry.summary.Title,
			Tasks:      tasks,
			IsExpanded: entry.summary.IsExpanded,
		})
	}
	return sections
}

func formatSectionList(listed []listedSection, highlight func(string) string, now time.Time) string {
	if len(listed) == 0 {
		return "No sections found. Use \"tl section add\" to create one.\n"
	}

	var builder strings.Builder
	for i, entry := range listed {
		if i > 0 {
			builder.WriteByte('\n')
		}
		builder.WriteString(formatSectionHeading(entry.summary))
		builder.WriteByte('\n')
		if len(entry.tasks) == 0 {
			builder.WriteString("No tasks.\n")
			continue
		}
		builder.WriteString(formatTaskTable(entry.tasks, highlight, now))
	}
	return builder.String()
}

func formatSectionHeading(summary *tasklist.SectionSummary) string {
	heading := fmt.Sprintf("%s (%s) %s", summary.Title, summary.ID, ui.FormatProgress(summary.CompletedCount, summary.TotalCount, 10))
	if !summary.IsExpanded {
		heading += " collapsed"
	}
	return heading
}

func formatTaskTable(tasks []tasklist.ProjectedTask, highlight func(string) string, now time.Time) string {
	builder := ui.NewTableBuilder([]string{"#", "ID", "STATUS", "AGE", "TITLE"}, len(tasks))
	for _, task := range tasks {
		builder.AddRow([]string{
			strconv.Itoa(task.Index),
			highlight(task.ID),
			taskStatus(task.Task),
			ui.FormatTaskAge(task.CreatedAt, task.CompletedAt, now),
			ui.TruncateTableCell(taskTitle(task.Task)),
		})
	}
	return builder.String()
}

func taskStatus(task tasklist.Task) string {
	if task.IsCompleted() {
		return "done"
	}
	return "open"
}

func taskTitle(task tasklist.Task) string {
	if strings.TrimSpace(task.Title) == "" {
		return "(untitled)"
	}
	return task.Title
}
