package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/amonks/tasklist/internal/listflags"
	internalstrings "github.com/amonks/tasklist/internal/strings"
	"github.com/amonks/tasklist/internal/ui"
	"github.com/amonks/tasklist/tasklist"
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Manage sections",
}

var sectionAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a section at the end of the list",
	Args:  cobra.ExactArgs(1),
	RunE:  runSectionAdd,
}

var sectionRenameCmd = &cobra.Command{
	Use:   "rename <id> <title>",
	Short: "Rename a section",
	Args:  cobra.ExactArgs(2),
	RunE:  runSectionRename,
}

var sectionToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Collapse or expand a section",
	Args:  cobra.ExactArgs(1),
	RunE:  runSectionToggle,
}

var sectionDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete sections and all of their tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSectionDelete,
}

var sectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sections",
	Args:  cobra.NoArgs,
	RunE:  runSectionList,
}

var sectionListJSON bool

func init() {
	rootCmd.AddCommand(sectionCmd)
	sectionCmd.AddCommand(sectionAddCmd, sectionRenameCmd, sectionToggleCmd, sectionDeleteCmd, sectionListCmd)

	listflags.AddJSONFlag(sectionListCmd, &sectionListJSON)
}

func runSectionAdd(cmd *cobra.Command, args []string) error {
	title := internalstrings.TrimSpace(args[0])
	if title == "" {
		return tasklist.ErrEmptyTitle
	}

	return withTaskList(func(store *tasklist.Store) error {
		id, ok := store.AddSection(title)
		if !ok {
			return fmt.Errorf("add section %q", title)
		}
		fmt.Printf("Created section %s: %s\n", id, title)
		return nil
	})
}

func runSectionRename(cmd *cobra.Command, args []string) error {
	title := internalstrings.TrimSpace(args[1])
	if title == "" {
		return tasklist.ErrEmptyTitle
	}

	return withTaskList(func(store *tasklist.Store) error {
		id, err := store.IDIndex().ResolveSection(args[0])
		if err != nil {
			return err
		}
		store.UpdateSection(id, tasklist.SectionUpdate{Title: &title})
		fmt.Printf("Renamed section %s: %s\n", id, title)
		return nil
	})
}

func runSectionToggle(cmd *cobra.Command, args []string) error {
	return withTaskList(func(store *tasklist.Store) error {
		id, err := store.IDIndex().ResolveSection(args[0])
		if err != nil {
			return err
		}
		section, _ := store.Section(id)
		expanded := !section.IsExpanded
		store.UpdateSection(id, tasklist.SectionUpdate{IsExpanded: &expanded})
		state := "collapsed"
		if expanded {
			state = "expanded"
		}
		fmt.Printf("Section %s %s\n", id, state)
		return nil
	})
}

func runSectionDelete(cmd *cobra.Command, args []string) error {
	return withTaskList(func(store *tasklist.Store) error {
		index := store.IDIndex()
		resolved := make([]string, 0, len(args))
		for _, arg := range args {
			id, err := index.ResolveSection(arg)
			if err != nil {
				return err
			}
			resolved = append(resolved, id)
		}
		for _, id := range resolved {
			section, ok := store.Section(id)
			if !ok || !store.DeleteSection(id) {
				continue
			}
			fmt.Printf("Deleted section %s: %s (%d tasks)\n", id, section.Title, len(section.Tasks))
		}
		return nil
	})
}

func runSectionList(cmd *cobra.Command, args []string) error {
	return withTaskList(func(store *tasklist.Store) error {
		sections := store.Sections()
		if sectionListJSON {
			return encodeJSONToStdout(sections)
		}
		if len(sections) == 0 {
			fmt.Println("No sections found.")
			return nil
		}

		highlight := logHighlighter(store.IDIndex().SectionPrefixLengths(), ui.HighlightID)
		builder := ui.NewTableBuilder([]string{"ID", "TITLE", "OPEN", "DONE", "EXPANDED"}, len(sections))
		for _, section := range sections {
			done := section.CompletedCount()
			builder.AddRow([]string{
				highlight(section.ID),
				ui.TruncateTableCell(section.Title),
				strconv.Itoa(len(section.Tasks) - done),
				strconv.Itoa(done),
				strconv.FormatBool(section.IsExpanded),
			})
		}
		fmt.Print(builder.String())
		return nil
	})
}
