package services

import (
	"strings"

	"github.com/vnk23k-beep/Cyno25/internal/brochure"
	"github.com/vnk23k-beep/Cyno25/internal/catalog"
	"github.com/vnk23k-beep/Cyno25/internal/models"
	"github.com/vnk23k-beep/Cyno25/internal/store"
)

// AdminCategories returns the admin-curated category labels for one event.
func AdminCategories(s *store.Store, eventKey string) ([]string, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	return doc.Categories[eventKey], nil
}

// SetAdminCategories replaces the admin-curated list, dropping blank labels.
// Brochure-derived categories are untouched.
func SetAdminCategories(s *store.Store, eventKey string, items []string) error {
	return s.Update(func(doc *models.Document) (bool, error) {
		kept := []string{}
		for _, it := range items {
			if strings.TrimSpace(it) != "" {
				kept = append(kept, it)
			}
		}
		doc.Categories[eventKey] = kept
		return true, nil
	})
}

// MergedCategories is the effective selectable category list for an event:
// brochure-derived categories first, then admin-defined ones, de-duplicated
// preserving first-seen order.
func MergedCategories(s *store.Store, ev catalog.Event) ([]string, error) {
	admin, err := AdminCategories(s, ev.Key())
	if err != nil {
		return nil, err
	}
	merged := []string{}
	seen := map[string]bool{}
	for _, c := range append(brochure.Subcategories(ev.BrochureBlock), admin...) {
		if !seen[c] {
			seen[c] = true
			merged = append(merged, c)
		}
	}
	return merged, nil
}
