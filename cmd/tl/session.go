package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/amonks/tasklist/internal/config"
	"github.com/amonks/tasklist/internal/logging"
	"github.com/amonks/tasklist/internal/state"
	"github.com/amonks/tasklist/tasklist"
)

// session bundles what every command needs to reach the task list.
type session struct {
	cfg     *config.Config
	backend *state.Store
	logger  *log.Logger
}

func loadSession() (*session, error) {
	cfg, err := config.Load(rootConfigPath)
	if err != nil {
		return nil, err
	}

	dir, err := cfg.StateDir()
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if rootLogLevel != "" {
		level = rootLogLevel
	}
	if err := logging.Validate(level, cfg.Log.Format); err != nil {
		return nil, err
	}

	return &session{
		cfg:     cfg,
		backend: state.NewStore(dir),
		logger:  logging.FromStrings(os.Stderr, level, cfg.Log.Format),
	}, nil
}

func (s *session) key() string {
	if s.cfg.Storage.Key != "" {
		return s.cfg.Storage.Key
	}
	return tasklist.DefaultSnapshotKey
}

func (s *session) open() (*tasklist.Store, error) {
	return tasklist.Open(s.backend, tasklist.Options{
		Key:             s.key(),
		DefaultSections: s.cfg.Sections.Defaults,
		Logger:          s.logger,
	})
}

// withTaskList opens the task list under the snapshot lock, runs fn, and
// reports any snapshot write failure.
func withTaskList(fn func(store *tasklist.Store) error) error {
	sess, err := loadSession()
	if err != nil {
		return err
	}

	return sess.backend.WithLock(sess.key(), func() error {
		store, err := sess.open()
		if err != nil {
			return err
		}
		if err := fn(store); err != nil {
			return err
		}
		return store.Err()
	})
}
