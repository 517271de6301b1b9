package services

import (
	"sort"
	"strings"
	"time"

	"github.com/vnk23k-beep/Cyno25/internal/keys"
	"github.com/vnk23k-beep/Cyno25/internal/models"
	"github.com/vnk23k-beep/Cyno25/internal/store"
)

// TouchSession upserts the presence row for one person and stamps last_seen.
// Role and phone are overwritten, not versioned; rows are never deleted.
func TouchSession(s *store.Store, name, role, phone string) error {
	return s.Update(func(doc *models.Document) (bool, error) {
		nk := keys.NameKey(name)
		now := time.Now().Format(time.RFC3339Nano)
		for i := range doc.Sessions {
			row := &doc.Sessions[i]
			if row.NameKey == nk {
				row.Name = name
				row.Role = role
				row.LastSeen = now
				row.Phone = strings.TrimSpace(phone)
				return true, nil
			}
		}
		doc.Sessions = append(doc.Sessions, models.Session{
			Name:     name,
			NameKey:  nk,
			Role:     role,
			LastSeen: now,
			Phone:    strings.TrimSpace(phone),
		})
		return true, nil
	})
}

// Presence lists all known people, most recently seen first.
func Presence(s *store.Store) ([]models.Session, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	rows := append([]models.Session{}, doc.Sessions...)
	sort.SliceStable(rows, func(i, j int) bool {
		ti, errI := time.Parse(time.RFC3339Nano, rows[i].LastSeen)
		tj, errJ := time.Parse(time.RFC3339Nano, rows[j].LastSeen)
		if errI == nil && errJ == nil {
			return tj.Before(ti)
		}
		return rows[i].LastSeen > rows[j].LastSeen
	})
	return rows, nil
}
