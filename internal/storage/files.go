// Package storage persists the active set and the archive to flat files in a
// single data directory. Active-set writes are atomic (write temp, fsync,
// rename) so a crash never leaves a corrupt state file; the archive is an
// append-only JSONL log read most-recent-first.
package storage

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/taskdeck/taskdeck/internal/models"
)

const (
	activeFileName  = "active.json"
	archiveFileName = "archive.jsonl"
)

// FileStore reads and writes planner state under a data directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the data directory if needed and returns a store for it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the data directory the store operates on.
func (s *FileStore) Dir() string { return s.dir }

// LoadActive reads the active set. On first run it seeds an empty file so
// later saves replace a file that exists.
func (s *FileStore) LoadActive() ([]models.Item, error) {
	path := filepath.Join(s.dir, activeFileName)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			return nil, fmt.Errorf("seed active file: %w", err)
		}
		return []models.Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read active file: %w", err)
	}

	var items []models.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode active file: %w", err)
	}
	return items, nil
}

// SaveActive atomically replaces the active set file. The payload is
// serialized before any file is touched so a marshal failure cannot clobber
// existing state.
func (s *FileStore) SaveActive(items []models.Item) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode active set: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "active-*.json.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		// No-op once the rename succeeded.
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, activeFileName)); err != nil {
		return fmt.Errorf("replace active file: %w", err)
	}
	return nil
}

// AppendArchived appends one archived item to the archive log.
func (s *FileStore) AppendArchived(item models.ArchivedItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode archived item: %w", err)
	}
	data = append(data, '\n')

	f, err := os.OpenFile(filepath.Join(s.dir, archiveFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("append archive: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync archive: %w", err)
	}
	return nil
}

// ReadArchived returns a page of archived items, most recent first. Lines that
// fail to decode are skipped rather than failing the whole page. A missing
// archive file is an empty archive, not an error; negative offsets and limits
// are treated as zero.
func (s *FileStore) ReadArchived(offset, limit int) ([]models.ArchivedItem, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	f, err := os.Open(filepath.Join(s.dir, archiveFileName))
	if errors.Is(err, os.ErrNotExist) {
		return []models.ArchivedItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan archive: %w", err)
	}

	// Offset and limit count raw lines so page strides stay aligned even when
	// a line fails to decode.
	page := make([]models.ArchivedItem, 0, limit)
	taken := 0
	for i := len(lines) - 1 - offset; i >= 0 && taken < limit; i-- {
		taken++
		var item models.ArchivedItem
		if err := json.Unmarshal([]byte(lines[i]), &item); err != nil {
			continue
		}
		page = append(page, item)
	}
	return page, nil
}
