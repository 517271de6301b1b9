package services

import (
	"time"

	"github.com/vnk23k-beep/Cyno25/internal/catalog"
	"github.com/vnk23k-beep/Cyno25/internal/keys"
	"github.com/vnk23k-beep/Cyno25/internal/schedule"
	"github.com/vnk23k-beep/Cyno25/internal/store"
)

// ParticipantExists reports whether any event roster contains the name.
// Lookup is case and whitespace insensitive.
func ParticipantExists(s *store.Store, name string) (bool, error) {
	doc, err := s.Load()
	if err != nil {
		return false, err
	}
	nk := keys.NameKey(name)
	for _, p := range doc.Participants {
		if p.NameKey == nk {
			return true, nil
		}
	}
	return false, nil
}

// SoonestEvent finds the participant's registered event with the earliest
// resolved start, for the login greeting. Events no longer in the catalog
// are skipped; ok=false when nothing resolvable remains.
func SoonestEvent(s *store.Store, c *catalog.Catalog, name string) (ev catalog.Event, start, end *time.Time, ok bool, err error) {
	doc, err := s.Load()
	if err != nil {
		return catalog.Event{}, nil, nil, false, err
	}
	nk := keys.NameKey(name)
	for _, p := range doc.Participants {
		if p.NameKey != nk {
			continue
		}
		cand, found := c.ByKey(p.EventKey)
		if !found {
			continue
		}
		sd, ed := schedule.Resolve(cand)
		if sd == nil {
			continue
		}
		if !ok || sd.Before(*start) {
			ev, start, end, ok = cand, sd, ed, true
		}
	}
	return ev, start, end, ok, nil
}
