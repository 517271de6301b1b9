// Package store persists the whole portal document as a single JSON file.
//
// Every operation is a full read-modify-write cycle: the document is read
// fresh, mutated in memory and rewritten wholesale with indentation for
// human inspection. A mutex serializes writers within this process;
// concurrent writers in other processes still race last-writer-wins, which
// is an accepted limitation of the format.
package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/vnk23k-beep/Cyno25/internal/metrics"
	"github.com/vnk23k-beep/Cyno25/internal/models"
)

type Store struct {
	path string
	mu   sync.Mutex
}

func Open(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load reads the current document. A missing file is created with empty
// defaults; a corrupt file falls back to the empty default in memory with a
// logged warning (the file itself is left untouched). Schema backfill for
// records missing their normalized keys is applied and, when anything
// changed, saved back so it runs at most once.
func (s *Store) Load() (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (*models.Document, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		doc := models.NewDocument()
		if err := s.save(doc); err != nil {
			return nil, err
		}
		return doc, nil
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read store %s: %w", s.path, err)
	}
	doc := models.NewDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		log.Printf("⚠️ store %s is corrupt, falling back to empty document: %v", s.path, err)
		metrics.StoreRecoveries.Inc()
		return models.NewDocument(), nil
	}
	if Backfill(doc) {
		if err := s.save(doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// Save rewrites the whole document and refreshes updated_at.
func (s *Store) Save(doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(doc)
}

func (s *Store) save(doc *models.Document) error {
	doc.UpdatedAt = time.Now().Format(time.RFC3339Nano)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	// Write-then-rename so concurrent readers (the snapshot worker reads the
	// file outside the mutex) never see a half-written document.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write store %s: %w", s.path, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("write store %s: %w", s.path, err)
	}
	metrics.StoreSaves.Inc()
	return nil
}

// Update runs one read-modify-write cycle under the store lock. When fn
// reports changed=false the document is not rewritten.
func (s *Store) Update(fn func(doc *models.Document) (changed bool, err error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return err
	}
	changed, err := fn(doc)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return s.save(doc)
}
