package authfront

import (
	"context"
	"os"
	"path/filepath"
	"sync"
)

// MemoryStorage is an in-process Storage, useful for tests and for callers
// that do not want sessions surviving a restart.
type MemoryStorage struct {
	mu   sync.RWMutex
	data []byte
}

var _ Storage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Load(ctx context.Context) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.data == nil {
		return nil, ErrNoStoredSession
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, nil
}

func (m *MemoryStorage) Save(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = make([]byte, len(data))
	copy(m.data, data)
	return nil
}

func (m *MemoryStorage) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = nil
	return nil
}

// FileStorage persists the session payload as a single file named after the
// storage namespace. Writes go through a temp file and rename so a reader
// never observes a partially written snapshot.
type FileStorage struct {
	dir  string
	key  string
	mode os.FileMode
}

var _ Storage = (*FileStorage)(nil)

type FileStorageOption func(*FileStorage)

// WithFileMode overrides the permissions applied to the storage file.
func WithFileMode(mode os.FileMode) FileStorageOption {
	return func(f *FileStorage) {
		if mode != 0 {
			f.mode = mode
		}
	}
}

// NewFileStorage creates a file-backed Storage rooted at dir. An empty key
// falls back to DefaultStorageKey.
func NewFileStorage(dir, key string, opts ...FileStorageOption) *FileStorage {
	f := &FileStorage{
		dir:  dir,
		key:  orDefault(key, DefaultStorageKey),
		mode: 0o600,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

func (f *FileStorage) path() string {
	return filepath.Join(f.dir, f.key+".json")
}

func (f *FileStorage) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoStoredSession
		}
		return nil, err
	}
	return data, nil
}

func (f *FileStorage) Save(ctx context.Context, data []byte) error {
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, f.key+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, f.mode); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, f.path())
}

func (f *FileStorage) Clear(ctx context.Context) error {
	err := os.Remove(f.path())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
