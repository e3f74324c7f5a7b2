package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/models"
)

func intPtr(v int) *int { return &v }

func TestFileStore_LoadActive_FirstRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	items, err := store.LoadActive()
	if err != nil {
		t.Fatalf("LoadActive() error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("LoadActive() = %v, want empty", items)
	}

	// First run seeds an empty file.
	data, err := os.ReadFile(filepath.Join(dir, "active.json"))
	if err != nil {
		t.Fatalf("seeded file missing: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("seeded file = %q, want %q", data, "[]")
	}
}

func TestFileStore_SaveAndLoadActive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	deadline := time.Date(2026, 4, 1, 17, 0, 0, 0, time.UTC)
	items := []models.Item{
		{Name: "write report", Importance: intPtr(3), Created: deadline.AddDate(0, 0, -7), Deadline: &deadline},
		{Name: "standup", Created: deadline.AddDate(0, 0, -7), Deadline: &deadline, IsEvent: true},
	}

	if err := store.SaveActive(items); err != nil {
		t.Fatalf("SaveActive() error: %v", err)
	}

	got, err := store.LoadActive()
	if err != nil {
		t.Fatalf("LoadActive() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("LoadActive() returned %d items, want 2", len(got))
	}
	if got[0].Name != "write report" || got[0].Importance == nil || *got[0].Importance != 3 {
		t.Errorf("item 0 = %+v", got[0])
	}
	if !got[1].IsEvent {
		t.Errorf("item 1 lost its event flag: %+v", got[1])
	}

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != "active.json" {
			t.Errorf("unexpected file %q after save", e.Name())
		}
	}
}

func TestFileStore_LoadActive_CorruptFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "active.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := store.LoadActive(); err == nil {
		t.Error("LoadActive() error = nil, want decode failure")
	}
}

func TestFileStore_ReadArchived(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	names := []string{"first", "second", "third", "fourth", "fifth"}
	for i, name := range names {
		item := models.ArchivedItem{
			ID:         uuid.New(),
			Name:       name,
			Created:    base,
			ArchivedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := store.AppendArchived(item); err != nil {
			t.Fatalf("AppendArchived(%q) error: %v", name, err)
		}
	}

	tests := []struct {
		name   string
		offset int
		limit  int
		want   []string
	}{
		{name: "first page", offset: 0, limit: 2, want: []string{"fifth", "fourth"}},
		{name: "second page", offset: 2, limit: 2, want: []string{"third", "second"}},
		{name: "runs off the end", offset: 4, limit: 10, want: []string{"first"}},
		{name: "offset past the end", offset: 10, limit: 5, want: []string{}},
		{name: "negative offset reads from the top", offset: -1, limit: 2, want: []string{"fifth", "fourth"}},
		{name: "negative limit yields an empty page", offset: 0, limit: -5, want: []string{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := store.ReadArchived(tt.offset, tt.limit)
			if err != nil {
				t.Fatalf("ReadArchived(%d, %d) error: %v", tt.offset, tt.limit, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ReadArchived(%d, %d) returned %d items, want %d", tt.offset, tt.limit, len(got), len(tt.want))
			}
			for i, name := range tt.want {
				if got[i].Name != name {
					t.Errorf("page[%d] = %q, want %q", i, got[i].Name, name)
				}
			}
		})
	}
}

func TestFileStore_ReadArchived_SkipsMalformedLines(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	good, err := json.Marshal(models.ArchivedItem{ID: uuid.New(), Name: "good"})
	if err != nil {
		t.Fatal(err)
	}
	content := string(good) + "\n{truncated\n" + string(good) + "\n"
	if err := os.WriteFile(filepath.Join(dir, "archive.jsonl"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	// The malformed middle line is skipped but still consumes a slot, so a
	// limit of 2 from the top yields a single decoded item.
	got, err := store.ReadArchived(0, 2)
	if err != nil {
		t.Fatalf("ReadArchived() error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "good" {
		t.Errorf("ReadArchived() = %v, want one good item", got)
	}
}

func TestFileStore_ReadArchived_MissingFile(t *testing.T) {
	t.Parallel()

	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	got, err := store.ReadArchived(0, 10)
	if err != nil {
		t.Fatalf("ReadArchived() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ReadArchived() = %v, want empty", got)
	}
}
