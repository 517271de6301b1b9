package store

import (
	"log"

	"github.com/vnk23k-beep/Cyno25/internal/catalog"
	"github.com/vnk23k-beep/Cyno25/internal/keys"
	"github.com/vnk23k-beep/Cyno25/internal/models"
)

// Seed inserts one demo participant into the first catalog event so a fresh
// install has something to log in with. Skipped once any participant exists.
func Seed(s *Store, c *catalog.Catalog) error {
	return s.Update(func(doc *models.Document) (bool, error) {
		if len(doc.Participants) > 0 || len(c.Events()) == 0 {
			log.Println("🌱 Data already exists, skipping seed.")
			return false, nil
		}
		first := c.Events()[0]
		doc.Participants = append(doc.Participants, models.Participant{
			Event:    first.Name,
			EventKey: first.Key(),
			Name:     "Demo User",
			NameKey:  keys.NameKey("Demo User"),
		})
		log.Println("🌱 Demo participant inserted.")
		return true, nil
	})
}
