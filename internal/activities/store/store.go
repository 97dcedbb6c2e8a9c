package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"mergington/internal/activities/models"
	"mergington/pkg/platform/sentinel"
)

// Store owns the activity registry and its durable JSON file.
//
// Mutations hold the write lock for the whole read-modify-write-persist
// sequence, so a concurrent mutation can never observe or overwrite a
// half-applied change. Reads take the read lock and return deep copies.
type Store struct {
	path             string
	logger           *slog.Logger
	onPersistFailure func(error)

	mu             sync.RWMutex
	activities     models.Registry
	lastPersistErr error
	// fileRejected is set when the file existed but could not be used at load.
	fileRejected bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load degradation and persistence failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPersistFailureHook registers fn to be called when a mutation could not be
// written to disk. fn runs while the store lock is held and must not call back
// into the store.
func WithPersistFailureHook(fn func(error)) Option {
	return func(s *Store) {
		s.onPersistFailure = fn
	}
}

// New creates an empty store backed by path. Call Load to read the file.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:       path,
		logger:     slog.Default(),
		activities: models.Registry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a store backed by path and loads its contents.
func Open(path string, opts ...Option) *Store {
	s := New(path, opts...)
	s.Load()
	return s
}

// Path returns the location of the durable file.
func (s *Store) Path() string {
	return s.path
}

// Load replaces the in-memory registry with the file contents. A missing,
// unreadable, malformed or schema-invalid file yields an empty registry.
func (s *Store) Load() {
	reg, rejected := readRegistry(s.path, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = reg
	s.fileRejected = rejected
}

// Get returns a copy of the named activity.
func (s *Store) Get(name string) (models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	activity, ok := s.activities[name]
	if !ok {
		return models.Activity{}, fmt.Errorf("activity %q: %w", name, sentinel.ErrNotFound)
	}
	return activity.Clone(), nil
}

// ListAll returns a deep-copied snapshot of every activity.
func (s *Store) ListAll() models.Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activities.Clone()
}

// SignUp adds email to the named activity and persists the registry.
func (s *Store) SignUp(name, email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("email is required: %w", sentinel.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	activity, ok := s.activities[name]
	if !ok {
		return fmt.Errorf("activity %q: %w", name, sentinel.ErrNotFound)
	}
	if activity.HasParticipant(email) {
		return fmt.Errorf("%s in %q: %w", email, name, sentinel.ErrAlreadyRegistered)
	}
	activity.AddParticipant(email)
	s.activities[name] = activity

	s.persistLocked("signup")
	return nil
}

// Unregister removes email from the named activity and persists the registry.
func (s *Store) Unregister(name, email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("email is required: %w", sentinel.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	activity, ok := s.activities[name]
	if !ok {
		return fmt.Errorf("activity %q: %w", name, sentinel.ErrNotFound)
	}
	if !activity.RemoveParticipant(email) {
		return fmt.Errorf("%s in %q: %w", email, name, sentinel.ErrNotRegistered)
	}
	s.activities[name] = activity

	s.persistLocked("unregister")
	return nil
}

// SeedIfEmpty installs reg and persists it when the registry holds no
// activities. A file that was present but rejected at load is never
// overwritten. It reports whether reg was installed.
func (s *Store) SeedIfEmpty(reg models.Registry) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.activities) > 0 {
		return false, nil
	}
	if s.fileRejected {
		s.logger.Warn("activities file was rejected at load, not seeding over it", "path", s.path)
		return false, nil
	}
	s.activities = reg.Clone()
	err := writeRegistry(s.path, s.activities)
	s.lastPersistErr = err
	return true, err
}

// Persist writes the current registry to disk and returns any failure.
func (s *Store) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := writeRegistry(s.path, s.activities)
	s.lastPersistErr = err
	return err
}

// LastPersistError returns the error from the most recent write, or nil if it succeeded.
func (s *Store) LastPersistError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastPersistErr
}

// persistLocked saves the registry after a mutation. A failed write keeps the
// in-memory change: the failure is logged, reported to the hook and retained
// for readiness, and the mutation still succeeds. Caller holds s.mu.
func (s *Store) persistLocked(op string) {
	err := writeRegistry(s.path, s.activities)
	s.lastPersistErr = err
	if err == nil {
		return
	}

	s.logger.Error("failed to persist activities; memory and disk have diverged",
		"operation", op,
		"path", s.path,
		"error", err,
	)
	if s.onPersistFailure != nil {
		s.onPersistFailure(err)
	}
}

// readRegistry loads the file at path. rejected reports a file that exists
// but was unreadable or invalid.
func readRegistry(path string, logger *slog.Logger) (reg models.Registry, rejected bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("activities file not found, starting empty", "path", path)
			return models.Registry{}, false
		}
		logger.Warn("activities file unreadable, starting empty", "path", path, "error", err)
		return models.Registry{}, true
	}

	reg, err = decodeRegistry(raw)
	if err != nil {
		logger.Warn("activities file invalid, starting empty", "path", path, "error", err)
		return models.Registry{}, true
	}
	return reg, false
}

// writeRegistry writes reg as indented JSON through a temp file and rename so
// the file on disk is always a complete document.
func writeRegistry(path string, reg models.Registry) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("replace registry file: %w", err)
	}
	return nil
}
