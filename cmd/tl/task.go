package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amonks/tasklist/internal/editor"
	"github.com/amonks/tasklist/internal/listflags"
	internalstrings "github.com/amonks/tasklist/internal/strings"
	"github.com/amonks/tasklist/internal/ui"
	"github.com/amonks/tasklist/tasklist"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <section> [title]",
	Short: "Add a task to the end of a section",
	Long: `Add a task to the end of a section.

By default, opens $EDITOR to edit a TOML representation of the task
when running interactively and no title is given. Use --no-edit to skip
the editor, or --edit to force opening the editor even when not
interactive.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runTaskAdd,
}

var (
	taskAddTitle       string
	taskAddDescription string
	taskAddEdit        bool
	taskAddNoEdit      bool
)

var taskEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a task in $EDITOR",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskEdit,
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a task's title or description",
	Long: `Update a task's title or description.

Without flags, opens $EDITOR when running interactively.`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskUpdate,
}

var (
	taskUpdateTitle       string
	taskUpdateDescription string
	taskUpdateEdit        bool
	taskUpdateNoEdit      bool
)

var taskCompleteCmd = &cobra.Command{
	Use:   "complete <id>...",
	Short: "Mark tasks as completed",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskComplete,
}

var taskReopenCmd = &cobra.Command{
	Use:   "reopen <id>...",
	Short: "Mark completed tasks as open again",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskReopen,
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskDelete,
}

var taskShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show detailed information about a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskShow,
}

var taskShowJSON bool

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd, taskEditCmd, taskUpdateCmd, taskCompleteCmd, taskReopenCmd, taskDeleteCmd, taskShowCmd)
	addTaskFlagAliases(taskAddCmd, taskUpdateCmd)

	taskAddCmd.Flags().StringVar(&taskAddTitle, "title", "", "Task title")
	taskAddCmd.Flags().StringVarP(&taskAddDescription, "description", "d", "", "Description (use '-' to read from stdin)")
	taskAddCmd.Flags().BoolVarP(&taskAddEdit, "edit", "e", false, "Open $EDITOR (default if interactive)")
	taskAddCmd.Flags().BoolVar(&taskAddNoEdit, "no-edit", false, "Do not open $EDITOR")

	taskUpdateCmd.Flags().StringVar(&taskUpdateTitle, "title", "", "New title")
	taskUpdateCmd.Flags().StringVarP(&taskUpdateDescription, "description", "d", "", "New description (use '-' to read from stdin)")
	taskUpdateCmd.Flags().BoolVarP(&taskUpdateEdit, "edit", "e", false, "Open $EDITOR (default if interactive)")
	taskUpdateCmd.Flags().BoolVar(&taskUpdateNoEdit, "no-edit", false, "Do not open $EDITOR")

	listflags.AddJSONFlag(taskShowCmd, &taskShowJSON)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	edit := tasklist.TaskEdit{Title: taskAddTitle}
	if len(args) > 1 {
		edit.Title = args[1]
	}
	if cmd.Flags().Changed("description") {
		desc, err := resolveDescriptionFromStdin(taskAddDescription, os.Stdin)
		if err != nil {
			return err
		}
		edit.Description = desc
	}

	hasInput := len(args) > 1 || hasChangedFlags(cmd, "title", "description")
	if shouldUseEditor(hasInput, taskAddEdit, taskAddNoEdit, editor.IsInteractive()) {
		parsed, err := editor.EditTaskWithData(editor.TaskData{
			Section:     args[0],
			Title:       edit.Title,
			Description: edit.Description,
		})
		if err != nil {
			return err
		}
		edit = parsed.Edit()
	} else if internalstrings.IsBlank(edit.Title) {
		return fmt.Errorf("title is required (use --edit to open editor)")
	}

	if internalstrings.IsBlank(edit.Title) {
		return tasklist.ErrEmptyTitle
	}

	return withTaskList(func(store *tasklist.Store) error {
		sectionID, err := store.IDIndex().ResolveSection(args[0])
		if err != nil {
			return err
		}
		taskID, ok := store.AddTask(sectionID)
		if !ok {
			return fmt.Errorf("add task to section %s", sectionID)
		}
		if err := commitEdit(store, taskID, edit); err != nil {
			return err
		}
		return printTaskResult(store, "Created", taskID)
	})
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	return editTaskInEditor(args[0], nil)
}

func runTaskUpdate(cmd *cobra.Command, args []string) error {
	hasFlags := hasChangedFlags(cmd, "title", "description")
	var description string
	if cmd.Flags().Changed("description") {
		desc, err := resolveDescriptionFromStdin(taskUpdateDescription, os.Stdin)
		if err != nil {
			return err
		}
		description = desc
	}

	if shouldUseEditor(hasFlags, taskUpdateEdit, taskUpdateNoEdit, editor.IsInteractive()) {
		return editTaskInEditor(args[0], func(data *editor.TaskData) {
			if cmd.Flags().Changed("title") {
				data.Title = taskUpdateTitle
			}
			if cmd.Flags().Changed("description") {
				data.Description = description
			}
		})
	}

	if !hasFlags {
		return fmt.Errorf("nothing to update (use --title, --description, or --edit)")
	}

	var update tasklist.TaskUpdate
	if cmd.Flags().Changed("title") {
		title := internalstrings.TrimSpace(taskUpdateTitle)
		if title == "" {
			return tasklist.ErrEmptyTitle
		}
		update.Title = &title
	}
	if cmd.Flags().Changed("description") {
		update.Description = &description
	}

	return withTaskList(func(store *tasklist.Store) error {
		taskID, err := store.IDIndex().ResolveTask(args[0])
		if err != nil {
			return err
		}
		store.UpdateTask(taskID, update)
		return printTaskResult(store, "Updated", taskID)
	})
}

// editTaskInEditor runs $EDITOR on a task without holding the snapshot lock,
// then commits the result against the current snapshot.
func editTaskInEditor(prefix string, prepare func(*editor.TaskData)) error {
	var original tasklist.Task
	var sectionTitle string
	err := withTaskList(func(store *tasklist.Store) error {
		taskID, err := store.IDIndex().ResolveTask(prefix)
		if err != nil {
			return err
		}
		original, _ = store.Task(taskID)
		if section, ok := store.Section(original.SectionID); ok {
			sectionTitle = section.Title
		}
		return nil
	})
	if err != nil {
		return err
	}

	var parsed *editor.ParsedTask
	if prepare == nil {
		parsed, err = editor.EditTask(original, sectionTitle)
	} else {
		data := editor.DataFromTask(original, sectionTitle)
		prepare(&data)
		parsed, err = editor.EditTaskWithData(data)
	}
	if err != nil {
		return err
	}

	return withTaskList(func(store *tasklist.Store) error {
		if err := commitEdit(store, original.ID, parsed.Edit()); err != nil {
			return err
		}
		if parsed.Completed != nil {
			current, _ := store.Task(original.ID)
			if *parsed.Completed != current.IsCompleted() {
				store.CompleteTask(original.ID)
			}
		}
		return printTaskResult(store, "Updated", original.ID)
	})
}

func commitEdit(store *tasklist.Store, taskID string, edit tasklist.TaskEdit) error {
	switch outcome := store.CommitTaskEdit(taskID, edit); outcome {
	case tasklist.EditCommitted:
		return nil
	case tasklist.EditRejected, tasklist.EditDiscarded:
		return tasklist.ErrEmptyTitle
	default:
		return fmt.Errorf("%w: %s", tasklist.ErrTaskNotFound, taskID)
	}
}

func runTaskComplete(cmd *cobra.Command, args []string) error {
	return setTasksCompleted(args, true)
}

func runTaskReopen(cmd *cobra.Command, args []string) error {
	return setTasksCompleted(args, false)
}

func setTasksCompleted(prefixes []string, completed bool) error {
	return withTaskList(func(store *tasklist.Store) error {
		ids, err := resolveTaskIDs(store, prefixes)
		if err != nil {
			return err
		}
		highlight := logHighlighter(store.IDIndex().TaskPrefixLengths(), ui.HighlightID)
		for _, id := range ids {
			task, _ := store.Task(id)
			if task.IsCompleted() == completed {
				fmt.Printf("Task %s is already %s\n", highlight(id), taskStatus(task))
				continue
			}
			store.CompleteTask(id)
			verb := "Completed"
			if !completed {
				verb = "Reopened"
			}
			fmt.Printf("%s task %s: %s\n", verb, highlight(id), taskTitle(task))
		}
		return nil
	})
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	return withTaskList(func(store *tasklist.Store) error {
		ids, err := resolveTaskIDs(store, args)
		if err != nil {
			return err
		}
		for _, id := range ids {
			task, _ := store.Task(id)
			if store.DeleteTask(id) {
				fmt.Printf("Deleted task %s: %s\n", id, taskTitle(task))
			}
		}
		return nil
	})
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	return withTaskList(func(store *tasklist.Store) error {
		id, err := store.IDIndex().ResolveTask(args[0])
		if err != nil {
			return err
		}
		task, _ := store.Task(id)
		if taskShowJSON {
			return encodeJSONToStdout(task)
		}
		section, _ := store.Section(task.SectionID)
		highlight := logHighlighter(store.IDIndex().TaskPrefixLengths(), ui.HighlightID)
		fmt.Print(formatTaskDetail(task, section, highlight))
		return nil
	})
}

// resolveTaskIDs resolves every prefix before anything is changed, so a bad
// prefix leaves the list untouched.
func resolveTaskIDs(store *tasklist.Store, prefixes []string) ([]string, error) {
	index := store.IDIndex()
	ids := make([]string, 0, len(prefixes))
	for _, prefix := range prefixes {
		id, err := index.ResolveTask(prefix)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func printTaskResult(store *tasklist.Store, verb, taskID string) error {
	task, ok := store.Task(taskID)
	if !ok {
		return fmt.Errorf("%w: %s", tasklist.ErrTaskNotFound, taskID)
	}
	highlight := logHighlighter(store.IDIndex().TaskPrefixLengths(), ui.HighlightID)
	fmt.Printf("%s task %s: %s\n", verb, highlight(task.ID), taskTitle(task))
	return nil
}
