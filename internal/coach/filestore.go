package coach

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/itsalphin/ai-study-companion/internal"
)

// FileStore mirrors the last-index map to a JSON file so phrase rotation
// survives server restarts. Writes happen inline; the map is tiny.
type FileStore struct {
	mu      sync.RWMutex
	indexes map[string]int
	path    string
	logger  internal.Logger
}

func NewFileStore(path string, logger internal.Logger) (*FileStore, error) {
	s := &FileStore{
		indexes: make(map[string]int),
		path:    path,
		logger:  logger,
	}

	file, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		return s, nil
	}
	defer file.Close()
	if err := json.NewDecoder(file).Decode(&s.indexes); err != nil {
		logger.Warnf("coach: ignoring unreadable index file %s: %v", path, err)
		s.indexes = make(map[string]int)
	}
	return s, nil
}

func (s *FileStore) LastIndex(key string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	index, ok := s.indexes[key]
	return index, ok
}

func (s *FileStore) SetLastIndex(key string, index int) {
	s.mu.Lock()
	s.indexes[key] = index
	raw, err := json.MarshalIndent(s.indexes, "", "  ")
	s.mu.Unlock()
	if err != nil {
		return
	}

	tempFile := s.path + ".tmp"
	if err := os.WriteFile(tempFile, raw, 0644); err != nil {
		s.logger.Warnf("coach: failed to write index file: %v", err)
		return
	}
	if err := os.Rename(tempFile, s.path); err != nil {
		s.logger.Warnf("coach: failed to replace index file: %v", err)
		os.Remove(tempFile)
	}
}

var _ IndexStore = (*FileStore)(nil)
