package localcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MirBabaTravels/booking_svc/internal/model"
)

const (
	cacheFilePermissions = 0o600
	cacheDirPermissions  = 0o755

	errorMessageEncodeCache = "localcache: encode inquiries"
	errorMessageWriteCache  = "localcache: write cache file"
	errorMessageReadCache   = "localcache: read cache file"
)

// Store persists the full local inquiry list under a single well-known
// location. A corrupt or missing payload reads back as an empty list.
type Store interface {
	Load() ([]model.Inquiry, error)
	Save(inquiries []model.Inquiry) error
}

// FileStore keeps the inquiry list as a JSON document on disk. It is the
// durability backstop used when the database is unreachable at submission
// time; the records it holds are visible only on the device running the
// server process.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore writing to the provided path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the cached inquiry list. A missing or unparseable file is
// treated as an empty cache rather than an error.
func (store *FileStore) Load() ([]model.Inquiry, error) {
	payload, readErr := os.ReadFile(store.path)
	if readErr != nil {
		if errors.Is(readErr, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", errorMessageReadCache, readErr)
	}

	var inquiries []model.Inquiry
	if unmarshalErr := json.Unmarshal(payload, &inquiries); unmarshalErr != nil {
		return nil, nil
	}

	return inquiries, nil
}

// Save replaces the cached inquiry list with the provided records.
func (store *FileStore) Save(inquiries []model.Inquiry) error {
	if inquiries == nil {
		inquiries = []model.Inquiry{}
	}

	payload, marshalErr := json.Marshal(inquiries)
	if marshalErr != nil {
		return fmt.Errorf("%s: %w", errorMessageEncodeCache, marshalErr)
	}

	if directoryErr := os.MkdirAll(filepath.Dir(store.path), cacheDirPermissions); directoryErr != nil {
		return fmt.Errorf("%s: %w", errorMessageWriteCache, directoryErr)
	}

	if writeErr := os.WriteFile(store.path, payload, cacheFilePermissions); writeErr != nil {
		return fmt.Errorf("%s: %w", errorMessageWriteCache, writeErr)
	}

	return nil
}

// MemoryStore keeps the inquiry list in process memory. It backs tests and
// deployments that do not want an on-disk fallback cache.
type MemoryStore struct {
	inquiries []model.Inquiry
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a copy of the stored inquiry list.
func (store *MemoryStore) Load() ([]model.Inquiry, error) {
	copied := make([]model.Inquiry, len(store.inquiries))
	copy(copied, store.inquiries)
	return copied, nil
}

// Save replaces the stored inquiry list.
func (store *MemoryStore) Save(inquiries []model.Inquiry) error {
	copied := make([]model.Inquiry, len(inquiries))
	copy(copied, inquiries)
	store.inquiries = copied
	return nil
}
