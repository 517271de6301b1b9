package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/vnk23k-beep/Cyno25/internal/keys"
	"github.com/vnk23k-beep/Cyno25/internal/models"
	"github.com/vnk23k-beep/Cyno25/internal/store"
)

// MarkCompleted appends an immutable record that the participant marked the
// event attended. Whether the marking window is open is the caller's policy.
func MarkCompleted(s *store.Store, event, name string, atVenue bool) error {
	return s.Update(func(doc *models.Document) (bool, error) {
		doc.Completions = append(doc.Completions, models.Completion{
			ID:        uuid.NewString(),
			Event:     event,
			EventKey:  keys.EventKey(event),
			Name:      name,
			NameKey:   keys.NameKey(name),
			Timestamp: time.Now().Format(time.RFC3339Nano),
			AtVenue:   atVenue,
		})
		return true, nil
	})
}
