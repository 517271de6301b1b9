package store

import (
	"github.com/vnk23k-beep/Cyno25/internal/keys"
	"github.com/vnk23k-beep/Cyno25/internal/models"
)

// Backfill repairs documents written by older schema versions: normalized
// keys are recomputed from the display strings, message kind/meta get their
// defaults, nil collections become empty ones. Reports whether anything
// that should be persisted changed.
func Backfill(doc *models.Document) bool {
	changed := false

	if doc.Participants == nil {
		doc.Participants = []models.Participant{}
	}
	if doc.Messages == nil {
		doc.Messages = []models.Message{}
	}
	if doc.Completions == nil {
		doc.Completions = []models.Completion{}
	}
	if doc.Sessions == nil {
		doc.Sessions = []models.Session{}
	}
	if doc.Categories == nil {
		doc.Categories = map[string][]string{}
	}
	if doc.Drafts == nil {
		doc.Drafts = map[string]map[string]models.DraftFields{}
	}

	for i := range doc.Participants {
		p := &doc.Participants[i]
		if nk := keys.NameKey(p.Name); p.NameKey != nk {
			p.NameKey = nk
			changed = true
		}
		if ek := keys.EventKey(p.Event); p.EventKey != ek {
			p.EventKey = ek
			changed = true
		}
	}

	for i := range doc.Messages {
		m := &doc.Messages[i]
		if tk := keys.NameKey(m.To); m.ToKey != tk {
			m.ToKey = tk
			changed = true
		}
		if fk := keys.NameKey(m.From); m.FromKey != fk {
			m.FromKey = fk
			changed = true
		}
		if ek := keys.EventKey(m.Event); m.EventKey != ek {
			m.EventKey = ek
			changed = true
		}
		if m.Kind == "" {
			m.Kind = models.KindChat
			changed = true
		}
		if m.Meta == nil {
			m.Meta = map[string]string{}
			changed = true
		}
	}

	for i := range doc.Sessions {
		ses := &doc.Sessions[i]
		if nk := keys.NameKey(ses.Name); ses.NameKey != nk {
			ses.NameKey = nk
			changed = true
		}
	}

	return changed
}
