package storage

import (
	"context"
	"errors"
	"sort"
	"sync"

	appenrollment "github.com/RobertWLight/BSC/internal/application/enrollment"
)

var _ appenrollment.DocumentArchive = (*MemoryDocumentArchive)(nil)

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryDocumentArchive keeps documents in process memory.
// Used in development and tests when no bucket is configured.
type MemoryDocumentArchive struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

// NewMemoryDocumentArchive creates an empty archive
func NewMemoryDocumentArchive() *MemoryDocumentArchive {
	return &MemoryDocumentArchive{objects: make(map[string]memoryObject)}
}

// Upload stores a copy of data under storageKey
func (m *MemoryDocumentArchive) Upload(_ context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	buf := make([]byte, len(data))
	copy(buf, data)

	m.mu.Lock()
	m.objects[storageKey] = memoryObject{data: buf, contentType: contentType}
	m.mu.Unlock()
	return nil
}

// Download returns a copy of the object stored under storageKey
func (m *MemoryDocumentArchive) Download(_ context.Context, storageKey string) ([]byte, string, error) {
	m.mu.RLock()
	obj, ok := m.objects[storageKey]
	m.mu.RUnlock()
	if !ok {
		return nil, "", ErrObjectNotFound
	}
	buf := make([]byte, len(obj.data))
	copy(buf, obj.data)
	return buf, obj.contentType, nil
}

// Keys lists stored keys in lexical order
func (m *MemoryDocumentArchive) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
