package store

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/vnk23k-beep/Cyno25/internal/models"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return Open(filepath.Join(t.TempDir(), "participants_store.json"))
}

func TestSaveLeavesNoPartialFiles(t *testing.T) {
	s := tempStore(t)
	doc, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.Save(doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := os.Stat(s.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after save")
	}
	raw, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if !json.Valid(raw) {
		t.Error("store file is not complete JSON after save")
	}
}

func TestLoadCreatesDefaultDocument(t *testing.T) {
	s := tempStore(t)
	doc, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc.Participants) != 0 || len(doc.Messages) != 0 {
		t.Error("fresh document should be empty")
	}
	if doc.Categories == nil || doc.Drafts == nil {
		t.Error("fresh document maps should be initialized")
	}
	if _, err := os.Stat(s.Path()); err != nil {
		t.Errorf("store file should exist after first load: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := tempStore(t)
	doc, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	doc.Participants = append(doc.Participants, models.Participant{
		Event: "Chess", EventKey: "chess", Name: "Asha Rao", NameKey: "asha rao",
		Phone: "12345", Subcat: "Category I : 5th to 6th",
	})
	doc.Categories["chess"] = []string{"Open"}
	doc.Drafts["chess"] = map[string]models.DraftFields{"Open": {Name: "WIP"}}
	if err := s.Save(doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(got.Participants) != 1 || got.Participants[0].Phone != "12345" {
		t.Errorf("participants did not round-trip: %+v", got.Participants)
	}
	if got.Categories["chess"][0] != "Open" {
		t.Errorf("categories did not round-trip: %+v", got.Categories)
	}
	if got.Drafts["chess"]["Open"].Name != "WIP" {
		t.Errorf("drafts did not round-trip: %+v", got.Drafts)
	}
	if got.UpdatedAt == "" {
		t.Error("updated_at should be stamped on save")
	}
}

func TestLoadCorruptFileFallsBackToEmpty(t *testing.T) {
	s := tempStore(t)
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := s.Load()
	if err != nil {
		t.Fatalf("Load should recover, got %v", err)
	}
	if len(doc.Participants) != 0 {
		t.Error("recovered document should be empty")
	}
	// the corrupt file is left untouched, not repaired
	raw, _ := os.ReadFile(s.Path())
	if string(raw) != "{not json" {
		t.Error("corrupt file must not be rewritten on load")
	}
}

func TestLoadBackfillsMissingKeysOnce(t *testing.T) {
	s := tempStore(t)
	legacy := `{
  "participants": [{"event": " Chess  Masters ", "name": "Asha  RAO"}],
  "messages": [{"to": "Admins", "from": "Asha Rao", "event": "Chess Masters", "text": "hi", "timestamp": "2025-09-01T10:00:00Z"}]
}`
	if err := os.WriteFile(s.Path(), []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	p := doc.Participants[0]
	if p.EventKey != "chess masters" || p.NameKey != "asha rao" {
		t.Errorf("participant keys not backfilled: %+v", p)
	}
	m := doc.Messages[0]
	if m.EventKey != "chess masters" || m.FromKey != "asha rao" || m.ToKey != "admins" {
		t.Errorf("message keys not backfilled: %+v", m)
	}
	if m.Kind != models.KindChat || m.Meta == nil {
		t.Errorf("message defaults not backfilled: kind=%q meta=%v", m.Kind, m.Meta)
	}

	// the backfill must have been persisted, so a reload finds nothing to do
	raw, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	var onDisk models.Document
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		t.Fatalf("rewritten store is not valid JSON: %v", err)
	}
	if Backfill(&onDisk) {
		t.Error("backfill should be applied only once")
	}
}

func TestUpdateSkipsSaveWhenUnchanged(t *testing.T) {
	s := tempStore(t)
	if _, err := s.Load(); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	err = s.Update(func(doc *models.Document) (bool, error) { return false, nil })
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	after, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("unchanged update must not rewrite the file")
	}
}

func TestSaveWritesIndentedJSON(t *testing.T) {
	s := tempStore(t)
	if _, err := s.Load(); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	var v map[string]any
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("store file is not valid JSON: %v", err)
	}
	if !bytes.Contains(raw, []byte("\n  ")) {
		t.Error("store file should be indented for human inspection")
	}
}
