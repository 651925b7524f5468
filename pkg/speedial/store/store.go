package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/reinieltalplacido/speedial/pkg/speedial/logging"
	"github.com/reinieltalplacido/speedial/pkg/speedial/models"
)

// Store persists the full link collection as a single JSON document.
// Callers always read-modify-write the whole collection; there are no
// partial updates. If the backing file cannot be written the store degrades
// to a process-lifetime in-memory collection and never surfaces the failure
// to callers again.
//
// The in-memory collection doubles as a mirror of the last successful read
// or write, so a transient recovery of the filesystem after failover cannot
// resurrect stale on-disk data.
type Store struct {
	path   string
	logger *logging.Logger

	mu       sync.Mutex
	failover bool
	mem      []models.Link
}

// New creates a store backed by the JSON document at path. The file and its
// directory are created lazily on first save.
func New(path string, logger *logging.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Load returns the current link collection. A missing, unreadable, or
// unparsable data file yields an empty collection rather than an error; the
// next save simply recreates the file.
func (s *Store) Load() []models.Link {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failover {
		return slices.Clone(s.mem)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return []models.Link{}
	}

	var links []models.Link
	if err := json.Unmarshal(data, &links); err != nil {
		s.logger.Warn(context.Background(), "data file unparsable, starting empty",
			"path", s.path, "error", err.Error())
		return []models.Link{}
	}

	s.mem = slices.Clone(links)
	return links
}

// Save replaces the persisted collection. A failed directory creation or
// write flips the store into memory failover; from the caller's point of
// view the save still succeeded.
func (s *Store) Save(links []models.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failover {
		s.mem = slices.Clone(links)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.enterFailover(err, links)
		return nil
	}

	data, err := json.MarshalIndent(links, "", "  ")
	if err != nil {
		s.enterFailover(err, links)
		return nil
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.enterFailover(err, links)
		return nil
	}

	s.mem = slices.Clone(links)
	return nil
}

// enterFailover switches to the in-memory collection for the rest of the
// process lifetime. Must be called with the lock held.
func (s *Store) enterFailover(cause error, links []models.Link) {
	s.failover = true
	s.mem = slices.Clone(links)
	s.logger.Warn(context.Background(), "persistent storage unavailable, using in-memory store",
		"path", s.path, "error", cause.Error())
}
