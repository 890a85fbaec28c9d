package tasklist

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Backend persists whole snapshots under a key.
type Backend interface {
	// Read returns the data stored under key. found is false when nothing
	// has been stored yet.
	Read(key string) (data []byte, found bool, err error)

	// Write replaces the data stored under key.
	Write(key string, data []byte) error
}

// Options configures how a store is opened.
type Options struct {
	// Key names the snapshot in the backend. Defaults to DefaultSnapshotKey.
	Key string

	// DefaultSections are the section titles used when no usable snapshot
	// exists. Defaults to DefaultSectionTitles.
	DefaultSections []string

	// Logger receives persistence and validation diagnostics.
	// If nil, diagnostics are discarded.
	Logger *log.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Store owns the ordered section list and applies every mutation to it.
//
// Mutations are serialized, so the store may be shared between event
// sources. Each mutation that changes state writes a full snapshot to the
// backend before returning; a mutation that changes nothing writes nothing.
type Store struct {
	mu         sync.Mutex
	backend    Backend
	key        string
	sections   []Section
	view       View
	now        func() time.Time
	logger     *log.Logger
	persistErr error
}

// Open loads the snapshot from backend and returns a store for it.
//
// A missing snapshot yields the default sections. So does an unreadable or
// invalid one, after it has been written under "<key>.bad" so it can be
// recovered by hand. A state.Store keeps that copy in "<key>.bad.json".
// Only a failure to read from the backend is an error.
func Open(backend Backend, opts Options) (*Store, error) {
	if backend == nil {
		return nil, fmt.Errorf("tasklist backend is required")
	}

	store := &Store{
		backend: backend,
		key:     opts.Key,
		view:    ViewActive,
		now:     opts.Now,
		logger:  opts.Logger,
	}
	if store.key == "" {
		store.key = DefaultSnapshotKey
	}
	if store.now == nil {
		store.now = time.Now
	}
	if store.logger == nil {
		store.logger = log.New(io.Discard)
	}

	data, found, err := backend.Read(store.key)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %q: %w", store.key, err)
	}

	if !found {
		store.logger.Debug("no snapshot found, starting with default sections", "key", store.key)
		store.sections = DefaultSections(opts.DefaultSections)
		return store, nil
	}

	sections, err := DecodeSnapshot(data)
	if err != nil {
		store.logger.Warn("snapshot unusable, starting with default sections", "key", store.key, "err", err)
		if backupErr := backend.Write(store.key+".bad", data); backupErr != nil {
			store.logger.Error("preserve unusable snapshot", "key", store.key, "err", backupErr)
		}
		store.sections = DefaultSections(opts.DefaultSections)
		return store, nil
	}

	store.logger.Debug("loaded snapshot", "key", store.key, "sections", len(sections))
	store.sections = sections
	return store, nil
}

// Err returns the error from the most recent snapshot write, or nil if it
// succeeded.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistErr
}

// Sections returns a copy of the ordered section list.
func (s *Store) Sections() []Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSections(s.sections)
}

// Section returns a copy of the section with the given ID.
func (s *Store) Section(id string) (Section, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := sectionIndex(s.sections, id)
	if idx < 0 {
		return Section{}, false
	}
	return cloneSection(s.sections[idx]), true
}

// Task returns a copy of the task with the given ID.
func (s *Store) Task(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sectionIdx, taskIdx := findTask(s.sections, id)
	if sectionIdx < 0 {
		return Task{}, false
	}
	return cloneTask(s.sections[sectionIdx].Tasks[taskIdx]), true
}

// Projection returns the active and completed views of the current state.
func (s *Store) Projection() Projection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Project(s.sections)
}

// IDIndex returns an index of all task and section IDs in the store.
func (s *Store) IDIndex() IDIndex {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NewIDIndex(s.sections)
}

// View returns the view the collaborator is currently showing.
func (s *Store) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// SetView records which view the collaborator is showing. Reordering is only
// allowed while the active view is shown. Unknown views are ignored.
func (s *Store) SetView(view View) {
	if !view.IsValid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = view
}

// mutate applies fn to a copy of the sections. When fn reports a change and
// the result passes CheckInvariants, the copy replaces the current state and
// is persisted. fn runs with the store lock held.
func (s *Store) mutate(op string, fn func(sections []Section) ([]Section, bool)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := fn(cloneSections(s.sections))
	if !changed {
		return false
	}
	if err := CheckInvariants(next); err != nil {
		s.logger.Error("rejected mutation that breaks invariants", "op", op, "err", err)
		return false
	}

	s.sections = next
	s.persist(op)
	return true
}

func (s *Store) persist(op string) {
	data, err := EncodeSnapshot(s.sections)
	if err != nil {
		s.persistErr = err
		s.logger.Error("encode snapshot", "op", op, "err", err)
		return
	}
	if err := s.backend.Write(s.key, data); err != nil {
		s.persistErr = fmt.Errorf("write snapshot %q: %w", s.key, err)
		s.logger.Error("write snapshot", "op", op, "key", s.key, "err", err)
		return
	}
	s.persistErr = nil
	s.logger.Debug("wrote snapshot", "op", op, "key", s.key, "bytes", len(data))
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC().Round(0)
}

func findTask(sections []Section, id string) (int, int) {
	for i := range sections {
		for j := range sections[i].Tasks {
			if sections[i].Tasks[j].ID == id {
				return i, j
			}
		}
	}
	return -1, -1
}

func idTaken(sections []Section) func(string) bool {
	return func(id string) bool {
		for _, section := range sections {
			if section.ID == id {
				return true
			}
			for _, task := range section.Tasks {
				if task.ID == id {
					return true
				}
			}
		}
		return false
	}
}

// MemoryBackend keeps snapshots in memory. It is safe for concurrent use.
type MemoryBackend struct {
	mu     sync.Mutex
	data   map[string][]byte
	writes int
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

// Read returns a copy of the data stored under key.
func (b *MemoryBackend) Read(key string) ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

// Write stores a copy of data under key.
func (b *MemoryBackend) Write(key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = append([]byte(nil), data...)
	b.writes++
	return nil
}

// Writes returns how many writes the backend has received.
func (b *MemoryBackend) Writes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes
}
