package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/amonks/tasklist/tasklist"
)

var moveCmd = &cobra.Command{
	Use:   "move <src-section> <src-index> <dst-section> <dst-index>",
	Short: "Move a task to another position",
	Long: `Move a task to another position.

Indices are zero-based positions among all of a section's tasks, open and
completed, as shown in the # column of "tl list". The task is removed
first, then inserted at dst-index; an index past the end appends.`,
	Args: cobra.ExactArgs(4),
	RunE: runMove,
}

func init() {
	rootCmd.AddCommand(moveCmd)
}

func runMove(cmd *cobra.Command, args []string) error {
	sourceIndex, err := parseIndex("src-index", args[1])
	if err != nil {
		return err
	}
	destIndex, err := parseIndex("dst-index", args[3])
	if err != nil {
		return err
	}

	return withTaskList(func(store *tasklist.Store) error {
		index := store.IDIndex()
		sourceID, err := index.ResolveSection(args[0])
		if err != nil {
			return err
		}
		destID, err := index.ResolveSection(args[2])
		if err != nil {
			return err
		}

		source, _ := store.Section(sourceID)
		if sourceIndex >= len(source.Tasks) {
			return fmt.Errorf("section %s has no task at index %d", sourceID, sourceIndex)
		}
		task := source.Tasks[sourceIndex]

		if !store.MoveTask(sourceID, sourceIndex, destID, destIndex) {
			return fmt.Errorf("move %s rejected", task.ID)
		}
		moved, _ := store.Task(task.ID)
		dest, _ := store.Section(destID)
		position := 0
		for i, t := range dest.Tasks {
			if t.ID == moved.ID {
				position = i
			}
		}
		fmt.Printf("Moved task %s to %s at %d\n", task.ID, dest.Title, position)
		return nil
	})
}

func parseIndex(name, value string) (int, error) {
	index, err := strconv.Atoi(value)
	if err != nil || index < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", name, value)
	}
	return index, nil
}
