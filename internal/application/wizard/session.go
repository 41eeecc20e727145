package wizard

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionStore persists the business owner id across process runs
type SessionStore interface {
	Load() (uuid.UUID, bool, error)
	Save(id uuid.UUID) error
	Clear() error
}

// Session is the application context shared by the wizard and dashboard.
// It holds the business owner id for the lifetime of the process and
// mirrors it to an optional store.
type Session struct {
	mu      sync.RWMutex
	ownerID uuid.UUID
	store   SessionStore
	logger  *zap.Logger
}

// NewSession creates a session, restoring the owner id from store when present
func NewSession(store SessionStore, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{store: store, logger: logger}
	if store == nil {
		return s, nil
	}

	id, ok, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if ok {
		s.ownerID = id
	}
	return s, nil
}

// BusinessOwnerID returns the stored owner id
func (s *Session) BusinessOwnerID() (uuid.UUID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ownerID, s.ownerID != uuid.Nil
}

// SetBusinessOwnerID records the owner id. A store failure is logged and
// the in-memory value is kept.
func (s *Session) SetBusinessOwnerID(id uuid.UUID) {
	s.mu.Lock()
	s.ownerID = id
	s.mu.Unlock()

	if s.store == nil {
		return
	}
	if err := s.store.Save(id); err != nil {
		s.logger.Warn("Failed to persist business owner id", zap.Error(err))
	}
}

// Clear forgets the owner id
func (s *Session) Clear() error {
	s.mu.Lock()
	s.ownerID = uuid.Nil
	s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	return s.store.Clear()
}

// FileSessionStore keeps the session in a small JSON file
type FileSessionStore struct {
	path string
}

type sessionFile struct {
	BusinessOwnerID string `json:"business_owner_id"`
}

// NewFileSessionStore creates a store backed by path
func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

// Load reads the stored id. A missing file is an empty session.
func (f *FileSessionStore) Load() (uuid.UUID, bool, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("read session file: %w", err)
	}

	var sf sessionFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return uuid.Nil, false, fmt.Errorf("decode session file: %w", err)
	}
	if sf.BusinessOwnerID == "" {
		return uuid.Nil, false, nil
	}

	id, err := uuid.Parse(sf.BusinessOwnerID)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("decode session file: %w", err)
	}
	return id, true, nil
}

// Save writes the id, replacing the file atomically
func (f *FileSessionStore) Save(id uuid.UUID) error {
	data, err := json.Marshal(sessionFile{BusinessOwnerID: id.String()})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

// Clear removes the file
func (f *FileSessionStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
