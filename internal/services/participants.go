package services

import (
	"sort"
	"strings"

	"github.com/vnk23k-beep/Cyno25/internal/keys"
	"github.com/vnk23k-beep/Cyno25/internal/metrics"
	"github.com/vnk23k-beep/Cyno25/internal/models"
	"github.com/vnk23k-beep/Cyno25/internal/store"
)

// CategoryAll is the sentinel filter value meaning "no category filter".
const CategoryAll = "All"

// ListParticipants returns the event's roster, optionally filtered to one
// category, ordered by (category label, case-insensitive name).
func ListParticipants(s *store.Store, event, category string) ([]models.Participant, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	evk := keys.EventKey(event)
	rows := []models.Participant{}
	for _, p := range doc.Participants {
		if p.EventKey != evk {
			continue
		}
		if category != "" && category != CategoryAll && p.Subcat != category {
			continue
		}
		rows = append(rows, p)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Subcat != rows[j].Subcat {
			return rows[i].Subcat < rows[j].Subcat
		}
		return strings.ToLower(rows[i].Name) < strings.ToLower(rows[j].Name)
	})
	return rows, nil
}

// ParticipantMatches is a roster search result: the matching records plus
// the distinct events they belong to, in first-seen order.
type ParticipantMatches struct {
	Participants []models.Participant `json:"participants"`
	EventKeys    []string             `json:"event_keys"`
}

// SearchParticipants finds every participant whose normalized name contains
// the normalized query as a substring. An empty query matches nobody.
func SearchParticipants(s *store.Store, query string) (ParticipantMatches, error) {
	res := ParticipantMatches{Participants: []models.Participant{}, EventKeys: []string{}}
	q := keys.NameKey(query)
	if q == "" {
		return res, nil
	}
	doc, err := s.Load()
	if err != nil {
		return res, err
	}
	seen := map[string]bool{}
	for _, p := range doc.Participants {
		if !strings.Contains(p.NameKey, q) {
			continue
		}
		res.Participants = append(res.Participants, p)
		if !seen[p.EventKey] {
			seen[p.EventKey] = true
			res.EventKeys = append(res.EventKeys, p.EventKey)
		}
	}
	return res, nil
}

// UpsertParticipant overwrites the record matching
// (event_key, name_key, subcat) or appends a new one. All fields are trimmed
// before storage. An empty name is a silent no-op; callers that want to keep
// the operator's input anyway go through the draft path instead.
func UpsertParticipant(s *store.Store, event, name, phone, email, grade, division, subcat string) error {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	return s.Update(func(doc *models.Document) (bool, error) {
		evk, nk := keys.EventKey(event), keys.NameKey(name)
		rec := models.Participant{
			Event:    event,
			EventKey: evk,
			Name:     strings.TrimSpace(name),
			NameKey:  nk,
			Phone:    strings.TrimSpace(phone),
			Email:    strings.TrimSpace(email),
			Grade:    strings.TrimSpace(grade),
			Division: strings.TrimSpace(division),
			Subcat:   subcat,
		}
		metrics.ParticipantUpserts.Inc()
		for i := range doc.Participants {
			p := &doc.Participants[i]
			if p.EventKey == evk && p.NameKey == nk && p.Subcat == subcat {
				rec.Event = p.Event // keep the stored display name
				*p = rec
				return true, nil
			}
		}
		doc.Participants = append(doc.Participants, rec)
		return true, nil
	})
}

// RemoveParticipant deletes the unique (event_key, name_key, subcat) record.
// Absent records are a no-op.
func RemoveParticipant(s *store.Store, event, name, subcat string) error {
	return s.Update(func(doc *models.Document) (bool, error) {
		evk, nk := keys.EventKey(event), keys.NameKey(name)
		kept := doc.Participants[:0]
		removed := false
		for _, p := range doc.Participants {
			if p.EventKey == evk && p.NameKey == nk && p.Subcat == subcat {
				removed = true
				continue
			}
			kept = append(kept, p)
		}
		doc.Participants = kept
		return removed, nil
	})
}
