package services

import (
	"github.com/vnk23k-beep/Cyno25/internal/models"
	"github.com/vnk23k-beep/Cyno25/internal/store"
)

// LoadDraft returns the last-entered form values for one
// (event_key, category) slot, or an all-empty record when none was saved.
func LoadDraft(s *store.Store, eventKey, category string) (models.DraftFields, error) {
	doc, err := s.Load()
	if err != nil {
		return models.DraftFields{}, err
	}
	return doc.Drafts[eventKey][category], nil
}

// SaveDraft stores form values for one (event_key, category) slot so admin
// input survives category switches and re-renders. Last write wins; an empty
// name is fine here — that's the whole point of the draft path.
func SaveDraft(s *store.Store, eventKey, category string, fields models.DraftFields) error {
	return s.Update(func(doc *models.Document) (bool, error) {
		if doc.Drafts[eventKey] == nil {
			doc.Drafts[eventKey] = map[string]models.DraftFields{}
		}
		doc.Drafts[eventKey][category] = fields
		return true, nil
	})
}
