package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store is the durable checkpoint behind the crawl. Load returns the full
// ordered record sequence (empty when no checkpoint exists yet); Append makes
// one more record durable before the walk moves on. A Load error means the
// checkpoint is corrupt and needs operator attention - silently starting over
// would duplicate already-persisted records.
type Store interface {
	Load() ([]HierarchyRecord, error)
	Append(record HierarchyRecord) error
	Reset() error
}

// FileStore keeps the checkpoint as a human-readable JSON array, rewritten in
// full on every append. The rewrite goes through a temp file and rename so a
// crash mid-write never leaves a truncated checkpoint behind.
type FileStore struct {
	path    string
	records []HierarchyRecord
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() ([]HierarchyRecord, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.records = nil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", s.path, err)
	}

	var records []HierarchyRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("snapshot %s is corrupt, delete or repair it: %w", s.path, err)
	}

	s.records = records
	return records, nil
}

func (s *FileStore) Append(record HierarchyRecord) error {
	s.records = append(s.records, record)
	return s.write()
}

func (s *FileStore) Reset() error {
	s.records = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove snapshot %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) write() error {
	records := s.records
	if records == nil {
		records = []HierarchyRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace snapshot %s: %w", s.path, err)
	}
	return nil
}
