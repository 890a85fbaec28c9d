package tasktui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amonks/tasklist/tasklist"
)

type editorField int

const (
	fieldTitle editorField = iota
	fieldDescription
)

// taskEditor is the inline form for a task's title and description.
type taskEditor struct {
	taskID      string
	section     string
	original    tasklist.TaskEdit
	title       textinput.Model
	description textarea.Model
	field       editorField
}

func newTaskEditor(task tasklist.Task, sectionTitle string, width int) taskEditor {
	title := textinput.New()
	title.Prompt = ""
	title.Placeholder = "What needs doing?"
	title.SetValue(task.Title)

	description := textarea.New()
	description.ShowLineNumbers = false
	description.Prompt = ""
	description.Placeholder = "Details (optional)"
	description.SetValue(task.Description)

	editor := taskEditor{
		taskID:      task.ID,
		section:     sectionTitle,
		original:    tasklist.TaskEdit{Title: task.Title, Description: task.Description},
		title:       title,
		description: description,
	}
	editor.setWidth(width)
	editor.title.Focus()
	return editor
}

func (e *taskEditor) setWidth(width int) {
	inputWidth := width - 6
	if inputWidth < 10 {
		inputWidth = 10
	}
	e.title.Width = inputWidth
	e.description.SetWidth(inputWidth)
	e.description.SetHeight(6)
}

func (e taskEditor) edit() tasklist.TaskEdit {
	return tasklist.TaskEdit{Title: e.title.Value(), Description: e.description.Value()}
}

func (e taskEditor) isDirty() bool {
	current := e.edit()
	return strings.TrimSpace(current.Title) != strings.TrimSpace(e.original.Title) ||
		current.Description != e.original.Description
}

func (e taskEditor) advanceField() taskEditor {
	if e.field == fieldTitle {
		e.field = fieldDescription
		e.title.Blur()
		e.description.Focus()
		return e
	}
	e.field = fieldTitle
	e.description.Blur()
	e.title.Focus()
	return e
}

func (e taskEditor) update(msg tea.Msg) (taskEditor, tea.Cmd) {
	var cmd tea.Cmd
	if e.field == fieldTitle {
		e.title, cmd = e.title.Update(msg)
		return e, cmd
	}
	e.description, cmd = e.description.Update(msg)
	return e, cmd
}

func (e taskEditor) view() string {
	heading := "Edit task"
	if e.original.Title == "" {
		heading = "New task"
	}
	lines := []string{
		labelStyle.Render(heading) + valueMuted.Render(fmt.Sprintf("  in %s", e.section)),
		"",
		labelStyle.Render("Title:") + " " + e.title.View(),
		"",
		labelStyle.Render("Description:"),
		e.description.View(),
	}
	return strings.Join(lines, "\n")
}

// sectionPrompt asks for a section title, either for a new section or to
// rename an existing one.
type sectionPrompt struct {
	sectionID string
	input     textinput.Model
}

func newSectionPrompt(sectionID, title string, width int) sectionPrompt {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "Section title"
	input.SetValue(title)
	input.Width = width - 6
	if input.Width < 10 {
		input.Width = 10
	}
	input.Focus()
	return sectionPrompt{sectionID: sectionID, input: input}
}

func (p sectionPrompt) view() string {
	heading := "New section"
	if p.sectionID != "" {
		heading = "Rename section"
	}
	return labelStyle.Render(heading) + "\n\n" + labelStyle.Render("Title:") + " " + p.input.View()
}
