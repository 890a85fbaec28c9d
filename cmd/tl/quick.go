package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amonks/tasklist/internal/editor"
	internalstrings "github.com/amonks/tasklist/internal/strings"
	"github.com/amonks/tasklist/tasklist"
)

var quickCmd = &cobra.Command{
	Use:   "quick [title...]",
	Short: "Add a task to the first section that has open tasks",
	Long: `Add a task to the first section that has open tasks.

Without a title, opens $EDITOR when running interactively.`,
	RunE: runQuick,
}

var (
	quickEdit   bool
	quickNoEdit bool
)

func init() {
	rootCmd.AddCommand(quickCmd)
	quickCmd.Flags().BoolVarP(&quickEdit, "edit", "e", false, "Open $EDITOR (default if interactive)")
	quickCmd.Flags().BoolVar(&quickNoEdit, "no-edit", false, "Do not open $EDITOR")
}

func runQuick(cmd *cobra.Command, args []string) error {
	edit := tasklist.TaskEdit{Title: internalstrings.NormalizeWhitespace(strings.Join(args, " "))}
	if shouldUseEditor(len(args) > 0, quickEdit, quickNoEdit, editor.IsInteractive()) {
		parsed, err := editor.EditTaskWithData(editor.TaskData{Section: "(first section with open tasks)", Title: edit.Title})
		if err != nil {
			return err
		}
		edit = parsed.Edit()
	}
	if internalstrings.IsBlank(edit.Title) {
		if len(args) == 0 {
			return fmt.Errorf("title is required (use --edit to open editor)")
		}
		return tasklist.ErrEmptyTitle
	}

	return withTaskList(func(store *tasklist.Store) error {
		taskID, sectionID, ok := store.QuickAdd()
		if !ok {
			return fmt.Errorf("no section has open tasks; use \"tl task add <section>\" instead")
		}
		if err := commitEdit(store, taskID, edit); err != nil {
			return err
		}
		section, _ := store.Section(sectionID)
		task, _ := store.Task(taskID)
		fmt.Printf("Created task %s in %s: %s\n", task.ID, section.Title, task.Title)
		return nil
	})
}
