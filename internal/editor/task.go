package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"

	"github.com/amonks/tasklist/tasklist"
)

// TaskData represents the data used to render the TOML template.
type TaskData struct {
	// IsUpdate is true when editing a task that already has a title.
	IsUpdate bool
	// ID is the task ID.
	ID string
	// Section is the title of the section the task lives in.
	Section string
	// Title is the task title.
	Title string
	// Completed reports whether the task is completed (only for updates).
	Completed bool
	// Description is the task description.
	Description string
}

// DataFromTask creates TaskData from a task for editing.
func DataFromTask(task tasklist.Task, sectionTitle string) TaskData {
	return TaskData{
		IsUpdate:    task.Title != "",
		ID:          task.ID,
		Section:     sectionTitle,
		Title:       task.Title,
		Completed:   task.IsCompleted(),
		Description: task.Description,
	}
}

var taskTemplate = template.Must(template.New("task").Parse(`title = {{ printf "%q" .Title }}
{{- if .IsUpdate }}
completed = {{ .Completed }}
{{- end }}
# section: {{ .Section }}
# id: {{ .ID }}
---
{{ .Description }}
`))

// RenderTaskTOML renders the task data as a TOML string for editing.
func RenderTaskTOML(data TaskData) (string, error) {
	var buf bytes.Buffer
	if err := taskTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedTask represents the parsed result from the TOML editor output.
type ParsedTask struct {
	Title       string `toml:"title"`
	Completed   *bool  `toml:"completed"`
	Description string
}

// Edit returns the title and description as a pending task edit.
func (p *ParsedTask) Edit() tasklist.TaskEdit {
	return tasklist.TaskEdit{Title: p.Title, Description: p.Description}
}

// ParseTaskTOML parses the TOML content from the editor. A blank title is
// not an error here; the store decides what a blank edit means.
func ParseTaskTOML(content string) (*ParsedTask, error) {
	frontmatter, body := splitFrontmatter(content)

	var parsed ParsedTask
	meta, err := toml.Decode(frontmatter, &parsed)
	if err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse TOML: unknown field %q", undecoded[0].String())
	}
	parsed.Title = strings.TrimSpace(parsed.Title)
	parsed.Description = strings.TrimLeft(body, "\n")

	return &parsed, nil
}

func splitFrontmatter(content string) (string, string) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimLeft(content, "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	separatorIndex := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			separatorIndex = i
			break
		}
	}
	if separatorIndex == -1 {
		return content, ""
	}

	frontmatter := strings.Join(lines[:separatorIndex], "\n")
	body := strings.Join(lines[separatorIndex+1:], "\n")
	return frontmatter, body
}

// EditTask opens the editor for a task and returns the parsed result.
func EditTask(task tasklist.Task, sectionTitle string) (*ParsedTask, error) {
	return EditTaskWithData(DataFromTask(task, sectionTitle))
}

// EditTaskWithData opens the editor with pre-populated data and returns the parsed result.
func EditTaskWithData(data TaskData) (*ParsedTask, error) {
	content, err := RenderTaskTOML(data)
	if err != nil {
		return nil, err
	}

	tmpfile, err := os.CreateTemp("", "tl-task-*.md")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}

	return ParseTaskTOML(string(edited))
}
