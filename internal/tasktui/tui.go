// Package tasktui is the interactive terminal front end for a task list.
package tasktui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	internalstrings "github.com/amonks/tasklist/internal/strings"
	"github.com/amonks/tasklist/tasklist"
)

type mode int

const (
	modeBrowse mode = iota
	modeEditTask
	modeSectionTitle
)

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusError
)

type modalKind int

const (
	modalNone modalKind = iota
	modalHelp
	modalDeleteTask
	modalDeleteSection
	modalDiscardEdits
)

type confirmModal struct {
	kind        modalKind
	targetID    string
	message     string
	confirmText string
	cancelText  string
	selected    int
}

type model struct {
	ctx         context.Context
	store       *tasklist.Store
	width       int
	height      int
	mode        mode
	rows        []row
	cursor      int
	offset      int
	editor      taskEditor
	prompt      sectionPrompt
	modal       confirmModal
	status      string
	statusLevel statusLevel
}

// Run starts the terminal UI on store and blocks until the user quits.
func Run(ctx context.Context, store *tasklist.Store) error {
	if store == nil {
		return fmt.Errorf("task store is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	program := tea.NewProgram(newModel(ctx, store), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func newModel(ctx context.Context, store *tasklist.Store) model {
	m := model{
		ctx:   ctx,
		store: store,
		mode:  modeBrowse,
		modal: confirmModal{kind: modalNone},
	}
	m.refresh("")
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		if m.mode == modeEditTask {
			m.editor.setWidth(m.width)
		}
		m.ensureCursorVisible()
		return m, nil
	}

	if m.modal.kind != modalNone {
		return m.updateModal(msg)
	}

	switch m.mode {
	case modeEditTask:
		return m.updateEditor(msg)
	case modeSectionTitle:
		return m.updatePrompt(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	return m.handleKey(key)
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading tasks..."
	}

	var body string
	switch m.mode {
	case modeEditTask:
		body = paneStyle.Width(m.width - 2).Render(m.editor.view())
	case modeSectionTitle:
		body = paneStyle.Width(m.width - 2).Render(m.prompt.view())
	default:
		body = m.renderRows()
	}

	view := strings.Join([]string{m.renderTabs(), m.renderHelpLine(), body, m.renderStatusLine()}, "\n")
	if m.modal.kind != modalNone {
		view = m.renderModalOverlay(view)
	}
	return view
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.modal = confirmModal{kind: modalHelp}
		return m, nil
	case "tab", "shift+tab", "backtab", "[", "]":
		if m.store.View() == tasklist.ViewActive {
			return m.activateView(tasklist.ViewCompleted), nil
		}
		return m.activateView(tasklist.ViewActive), nil
	case "1":
		return m.activateView(tasklist.ViewActive), nil
	case "2":
		return m.activateView(tasklist.ViewCompleted), nil
	case "up", "k":
		m.moveCursor(-1)
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		return m, nil
	case "home", "g":
		m.moveCursor(-len(m.rows))
		return m, nil
	case "end", "G":
		m.moveCursor(len(m.rows))
		return m, nil
	case "ctrl+n":
		return m.quickAdd()
	case "a":
		return m.addTask()
	case "enter":
		if current, ok := m.currentRow(); ok && current.kind == rowSection {
			return m.toggleExpanded(), nil
		}
		return m.editTask()
	case "e":
		return m.editTask()
	case " ", "space", "x":
		return m.toggleComplete(), nil
	case "d", "delete":
		return m.promptDelete(), nil
	case "K", "shift+up":
		return m.moveWithinSection(-1), nil
	case "J", "shift+down":
		return m.moveWithinSection(1), nil
	case "shift+left", "H":
		return m.moveAcrossSections(-1), nil
	case "shift+right", "L":
		return m.moveAcrossSections(1), nil
	case "z":
		return m.toggleExpanded(), nil
	case "r":
		return m.renameSection()
	case "S":
		m.prompt = newSectionPrompt("", "", m.width)
		m.mode = modeSectionTitle
		return m, nil
	}
	return m, nil
}

func (m model) activateView(view tasklist.View) model {
	if m.store.View() == view {
		return m
	}
	m.store.SetView(view)
	key := ""
	if current, ok := m.currentRow(); ok {
		key = current.key()
	}
	m.refresh(key)
	return m
}

// refresh rebuilds rows from the store and keeps the cursor on the row with
// the given key when it is still visible.
func (m *model) refresh(key string) {
	m.rows = buildRows(m.store.Projection().View(m.store.View()))
	if key != "" {
		for i, r := range m.rows {
			if r.key() == key {
				m.cursor = i
				m.ensureCursorVisible()
				return
			}
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
}

func (m *model) moveCursor(delta int) {
	if len(m.rows) == 0 {
		return
	}
	next := m.cursor + delta
	if next < 0 {
		next = 0
	}
	if next >= len(m.rows) {
		next = len(m.rows) - 1
	}
	m.cursor = next
	m.ensureCursorVisible()
}

func (m model) bodyHeight() int {
	height := m.height - 3
	if height < 1 {
		height = 1
	}
	return height
}

func (m *model) ensureCursorVisible() {
	height := m.bodyHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+height {
		m.offset = m.cursor - height + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m model) currentRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m model) currentSectionID() string {
	current, ok := m.currentRow()
	if !ok {
		return ""
	}
	return current.section.ID
}

func (m model) quickAdd() (tea.Model, tea.Cmd) {
	taskID, sectionID, ok := m.store.QuickAdd()
	if !ok {
		m.setStatus("No section with open tasks to add to", statusError)
		return m, nil
	}
	return m.openEditor(taskID, sectionID)
}

func (m model) addTask() (tea.Model, tea.Cmd) {
	sectionID := m.currentSectionID()
	if sectionID == "" {
		m.setStatus("Add a section first (S)", statusError)
		return m, nil
	}
	taskID, ok := m.store.AddTask(sectionID)
	if !ok {
		m.setStatus("Could not add task", statusError)
		return m, nil
	}
	m.store.UpdateSection(sectionID, tasklist.SectionUpdate{IsExpanded: tasklist.BoolPtr(true)})
	return m.openEditor(taskID, sectionID)
}

func (m model) editTask() (tea.Model, tea.Cmd) {
	current, ok := m.currentRow()
	if !ok || current.kind != rowTask {
		return m, nil
	}
	return m.openEditor(current.task.ID, current.section.ID)
}

func (m model) openEditor(taskID, sectionID string) (tea.Model, tea.Cmd) {
	task, ok := m.store.Task(taskID)
	if !ok {
		m.refresh("")
		return m, nil
	}
	sectionTitle := ""
	if section, ok := m.store.Section(sectionID); ok {
		sectionTitle = section.Title
	}
	m.editor = newTaskEditor(task, sectionTitle, m.width)
	m.mode = modeEditTask
	m.refresh("task:" + taskID)
	return m, nil
}

func (m model) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+s":
			return m.commitEdit(), nil
		case "esc":
			if m.editor.isDirty() {
				m.modal = confirmModal{
					kind:        modalDiscardEdits,
					message:     "Discard unsaved task changes?",
					confirmText: "Discard",
					cancelText:  "Keep editing",
					selected:    1,
				}
				return m, nil
			}
			return m.dismissEdit(), nil
		case "tab", "shift+tab", "backtab":
			m.editor = m.editor.advanceField()
			return m, nil
		case "enter":
			if m.editor.field == fieldTitle {
				return m.commitEdit(), nil
			}
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.update(msg)
	return m, cmd
}

func (m model) commitEdit() model {
	taskID := m.editor.taskID
	switch outcome := m.store.CommitTaskEdit(taskID, m.editor.edit()); outcome {
	case tasklist.EditCommitted:
		m.mode = modeBrowse
		m.setStatus("Task saved", statusInfo)
		m.refresh("task:" + taskID)
	case tasklist.EditRejected:
		m.setStatus("Title cannot be empty", statusError)
	case tasklist.EditDiscarded:
		m.mode = modeBrowse
		m.setStatus("Empty task discarded", statusInfo)
		m.refresh("")
	default:
		m.mode = modeBrowse
		m.setStatus("Task no longer exists", statusError)
		m.refresh("")
	}
	m.reportPersistError()
	return m
}

func (m model) dismissEdit() model {
	if m.store.DismissTaskEdit(m.editor.taskID) {
		m.setStatus("Empty task discarded", statusInfo)
	} else {
		m.setStatus("", statusNone)
	}
	m.mode = modeBrowse
	m.refresh("task:" + m.editor.taskID)
	m.reportPersistError()
	return m
}

func (m model) toggleComplete() model {
	current, ok := m.currentRow()
	if !ok || current.kind != rowTask {
		return m
	}
	neighbor := m.neighborKey()
	if m.store.CompleteTask(current.task.ID) {
		if current.task.IsCompleted() {
			m.setStatus("Task reopened", statusInfo)
		} else {
			m.setStatus("Task completed", statusInfo)
		}
	}
	m.refresh(neighbor)
	m.reportPersistError()
	return m
}

// neighborKey picks the row the cursor should land on when the current row
// leaves the view.
func (m model) neighborKey() string {
	for _, i := range []int{m.cursor + 1, m.cursor - 1} {
		if i >= 0 && i < len(m.rows) {
			return m.rows[i].key()
		}
	}
	return ""
}

func (m model) promptDelete() model {
	current, ok := m.currentRow()
	if !ok {
		return m
	}
	if current.kind == rowTask {
		title := current.task.Title
		if title == "" {
			title = "(untitled)"
		}
		m.modal = confirmModal{
			kind:        modalDeleteTask,
			targetID:    current.task.ID,
			message:     fmt.Sprintf("Delete task %q?", title),
			confirmText: "Delete",
			cancelText:  "Cancel",
			selected:    1,
		}
		return m
	}
	m.modal = confirmModal{
		kind:        modalDeleteSection,
		targetID:    current.section.ID,
		message:     fmt.Sprintf("Delete section %q and its %d tasks?", current.section.Title, current.section.TotalCount),
		confirmText: "Delete",
		cancelText:  "Cancel",
		selected:    1,
	}
	return m
}

func (m model) moveWithinSection(delta int) model {
	current, ok := m.currentRow()
	if !ok || current.kind != rowTask {
		return m
	}
	if m.store.View() != tasklist.ViewActive {
		m.setStatus("Reordering is only available in the active view", statusError)
		return m
	}
	target := m.cursor + delta
	if target < 0 || target >= len(m.rows) {
		return m
	}
	neighbor := m.rows[target]
	if neighbor.kind != rowTask || neighbor.section.ID != current.section.ID {
		return m
	}
	if m.store.MoveTask(current.section.ID, current.task.Index, current.section.ID, neighbor.task.Index) {
		m.setStatus("", statusNone)
	}
	m.refresh(current.key())
	m.reportPersistError()
	return m
}

func (m model) moveAcrossSections(delta int) model {
	current, ok := m.currentRow()
	if !ok || current.kind != rowTask {
		return m
	}
	if m.store.View() != tasklist.ViewActive {
		m.setStatus("Reordering is only available in the active view", statusError)
		return m
	}
	sections := m.store.Sections()
	idx := -1
	for i, section := range sections {
		if section.ID == current.section.ID {
			idx = i
			break
		}
	}
	target := idx + delta
	if idx < 0 || target < 0 || target >= len(sections) {
		return m
	}
	destination := sections[target]
	if m.store.MoveTask(current.section.ID, current.task.Index, destination.ID, len(destination.Tasks)) {
		m.store.UpdateSection(destination.ID, tasklist.SectionUpdate{IsExpanded: tasklist.BoolPtr(true)})
		m.setStatus(fmt.Sprintf("Moved to %s", destination.Title), statusInfo)
	}
	m.refresh(current.key())
	m.reportPersistError()
	return m
}

func (m model) toggleExpanded() model {
	current, ok := m.currentRow()
	if !ok {
		return m
	}
	expanded := !current.section.IsExpanded
	m.store.UpdateSection(current.section.ID, tasklist.SectionUpdate{IsExpanded: &expanded})
	m.refresh("section:" + current.section.ID)
	m.reportPersistError()
	return m
}

func (m model) renameSection() (tea.Model, tea.Cmd) {
	current, ok := m.currentRow()
	if !ok {
		return m, nil
	}
	m.prompt = newSectionPrompt(current.section.ID, current.section.Title, m.width)
	m.mode = modeSectionTitle
	return m, nil
}

func (m model) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.mode = modeBrowse
			return m, nil
		case "enter":
			return m.commitPrompt(), nil
		}
	}

	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	return m, cmd
}

func (m model) commitPrompt() model {
	title := m.prompt.input.Value()
	if internalstrings.IsBlank(title) {
		m.setStatus("Section title cannot be empty", statusError)
		return m
	}

	if m.prompt.sectionID == "" {
		sectionID, ok := m.store.AddSection(title)
		if ok {
			m.setStatus("Section added", statusInfo)
			m.mode = modeBrowse
			m.refresh("section:" + sectionID)
		}
		m.reportPersistError()
		return m
	}

	m.store.UpdateSection(m.prompt.sectionID, tasklist.SectionUpdate{Title: &title})
	m.mode = modeBrowse
	m.setStatus("Section renamed", statusInfo)
	m.refresh("section:" + m.prompt.sectionID)
	m.reportPersistError()
	return m
}

func (m model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.modal.kind == modalHelp {
		switch key.String() {
		case "?", "esc":
			m.modal = confirmModal{kind: modalNone}
			return m, nil
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		return m, nil
	}
	switch key.String() {
	case "left", "right", "tab", "shift+tab", "backtab", "h", "l":
		m.modal.selected = 1 - m.modal.selected
		return m, nil
	case "y":
		return m.resolveModal(true), nil
	case "n":
		return m.resolveModal(false), nil
	case "enter":
		return m.resolveModal(m.modal.selected == 0), nil
	case "esc":
		return m.resolveModal(false), nil
	}
	return m, nil
}

func (m model) resolveModal(confirm bool) model {
	modal := m.modal
	m.modal = confirmModal{kind: modalNone}
	if !confirm {
		return m
	}
	switch modal.kind {
	case modalDeleteTask:
		neighbor := m.neighborKey()
		if m.store.DeleteTask(modal.targetID) {
			m.setStatus("Task deleted", statusInfo)
		}
		m.refresh(neighbor)
	case modalDeleteSection:
		if m.store.DeleteSection(modal.targetID) {
			m.setStatus("Section deleted", statusInfo)
		}
		m.refresh("")
	case modalDiscardEdits:
		return m.dismissEdit()
	}
	m.reportPersistError()
	return m
}

func (m *model) reportPersistError() {
	if err := m.store.Err(); err != nil {
		m.setStatus(fmt.Sprintf("Save failed: %v", err), statusError)
	}
}

func (m *model) setStatus(text string, level statusLevel) {
	m.status = text
	m.statusLevel = level
}

func (m model) renderTabs() string {
	projection := m.store.Projection()
	activeCount, completedCount := 0, 0
	for _, section := range projection.Active {
		activeCount += len(section.Tasks)
	}
	for _, section := range projection.Completed {
		completedCount += len(section.Tasks)
	}
	labels := []struct {
		view  tasklist.View
		label string
	}{
		{tasklist.ViewActive, fmt.Sprintf("[1] Active (%d)", activeCount)},
		{tasklist.ViewCompleted, fmt.Sprintf("[2] Completed (%d)", completedCount)},
	}
	parts := make([]string, 0, len(labels))
	for _, tab := range labels {
		style := tabInactiveStyle
		if tab.view == m.store.View() {
			style = tabActiveStyle
		}
		parts = append(parts, style.Render(tab.label))
	}
	content := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	helpHint := valueMuted.Render("Press ? for help")
	spacerWidth := m.width - lipgloss.Width(content) - lipgloss.Width(helpHint)
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	return tabBarStyle.Width(m.width).Render(content + strings.Repeat(" ", spacerWidth) + helpHint)
}

func (m model) renderRows() string {
	height := m.bodyHeight()
	if len(m.rows) == 0 {
		return valueMuted.Render("No sections. Press S to add one.")
	}

	end := m.offset + height
	if end > len(m.rows) {
		end = len(m.rows)
	}
	lines := make([]string, 0, height)
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		var line string
		style := taskStyle
		if r.kind == rowSection {
			line = formatSectionRow(r, m.width)
			style = sectionStyle
		} else {
			line = formatTaskRow(r, m.width)
			if r.task.IsCompleted() {
				style = doneStyle
			}
		}
		if i == m.cursor {
			style = selectedStyle
		}
		lines = append(lines, style.Render(line))
	}
	return strings.Join(lines, "\n")
}

func (m model) renderHelpLine() string {
	return helpBarStyle.Render(truncateText(m.helpSummary(), m.width))
}

func (m model) helpSummary() string {
	switch m.mode {
	case modeEditTask:
		return "Keys: tab next field | ctrl+s save | esc cancel"
	case modeSectionTitle:
		return "Keys: enter save | esc cancel"
	}
	if m.store.View() == tasklist.ViewCompleted {
		return "Keys: j/k move | x reopen | d delete | z fold | tab active view | ? help | q quit"
	}
	return "Keys: j/k move | a add | enter edit | x done | K/J reorder | ctrl+n quick add | ? help | q quit"
}

func (m model) renderStatusLine() string {
	text := m.status
	if internalstrings.IsBlank(text) {
		return ""
	}
	style := valueMuted
	if m.statusLevel == statusError {
		style = statusErrorStyle
	} else if m.statusLevel == statusInfo {
		style = statusSuccessStyle
	}
	return style.Render(truncateText(text, m.width))
}

func (m model) renderModalOverlay(content string) string {
	if m.modal.kind == modalNone {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.modalView())
}

func (m model) modalView() string {
	modalStyle := lipgloss.NewStyle().Border(borderASCII).Padding(1, 2)
	wrapWidth := m.width - 10
	if wrapWidth < 20 {
		wrapWidth = 20
	}
	if m.modal.kind == modalHelp {
		return modalStyle.Render(wordwrap.String(m.helpContent(), wrapWidth))
	}
	options := []string{m.modal.confirmText, m.modal.cancelText}
	buttons := make([]string, 0, len(options))
	for i, option := range options {
		style := valueMuted
		if i == m.modal.selected {
			style = selectedButton
		}
		buttons = append(buttons, style.Render("["+option+"]"))
	}
	content := strings.Join([]string{wordwrap.String(m.modal.message, wrapWidth), "", strings.Join(buttons, " ")}, "\n")
	return modalStyle.Render(content)
}

func (m model) helpContent() string {
	sections := []string{
		labelStyle.Render("Global"),
		"q or ctrl+c: quit",
		"tab / 1 / 2: switch between active and completed",
		"?: toggle help",
		"",
		labelStyle.Render("Navigation"),
		"up/down or j/k: move selection",
		"g/G: first/last row",
		"enter or z on a section: fold or unfold",
		"",
		labelStyle.Render("Tasks"),
		"a: add a task to the selected section",
		"ctrl+n: add a task to the first section with open tasks",
		"enter or e: edit the selected task",
		"x or space: complete or reopen",
		"d: delete",
		"K/J: move up/down within the section",
		"shift+left/right: move to the previous/next section",
		"",
		labelStyle.Render("Sections"),
		"S: add a section",
		"r: rename the selected section",
		"d on a section: delete it with its tasks",
		"",
		labelStyle.Render("Editing"),
		"tab: switch between title and description",
		"ctrl+s: save, esc: cancel",
	}
	return strings.Join(sections, "\n")
}
