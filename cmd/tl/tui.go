package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/amonks/tasklist/internal/logging"
	"github.com/amonks/tasklist/internal/tasktui"
	"github.com/amonks/tasklist/tasklist"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive task list",
	Long: `Open the interactive task list.

The snapshot lock is not held while the interface is open. Changes made
with other tl commands in the meantime are overwritten by the next change
made in the interface. Diagnostics go to tui.log in the state directory.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	sess, err := loadSession()
	if err != nil {
		return err
	}

	logFile, err := openTUILog(sess.backend.Dir())
	if err != nil {
		return err
	}
	defer logFile.Close()
	level := sess.cfg.Log.Level
	if rootLogLevel != "" {
		level = rootLogLevel
	}
	sess.logger = logging.FromStrings(logFile, level, sess.cfg.Log.Format)

	var store *tasklist.Store
	err = sess.backend.WithLock(sess.key(), func() error {
		opened, err := sess.open()
		store = opened
		return err
	})
	if err != nil {
		return err
	}
	return tasktui.Run(cmd.Context(), store)
}

func openTUILog(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	file, err := os.OpenFile(filepath.Join(dir, "tui.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open tui log: %w", err)
	}
	return file, nil
}
