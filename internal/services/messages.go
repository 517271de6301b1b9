package services

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vnk23k-beep/Cyno25/internal/keys"
	"github.com/vnk23k-beep/Cyno25/internal/metrics"
	"github.com/vnk23k-beep/Cyno25/internal/models"
	"github.com/vnk23k-beep/Cyno25/internal/store"
)

// SendMessage appends one message to the log. An empty text with kind=chat
// is a silent no-op; call requests and system messages may carry generated
// text. Timestamps are non-decreasing in insertion order.
func SendMessage(s *store.Store, to, from, event, text, toRole, kind string, meta map[string]string) error {
	text = strings.TrimSpace(text)
	if kind == "" {
		kind = models.KindChat
	}
	if text == "" && kind == models.KindChat {
		return nil
	}
	if meta == nil {
		meta = map[string]string{}
	}
	return s.Update(func(doc *models.Document) (bool, error) {
		now := time.Now()
		if n := len(doc.Messages); n > 0 {
			if last, err := time.Parse(time.RFC3339Nano, doc.Messages[n-1].Timestamp); err == nil && now.Before(last) {
				now = last
			}
		}
		doc.Messages = append(doc.Messages, models.Message{
			ID:        uuid.NewString(),
			To:        to,
			ToKey:     keys.NameKey(to),
			From:      from,
			FromKey:   keys.NameKey(from),
			Event:     event,
			EventKey:  keys.EventKey(event),
			ToRole:    toRole,
			Text:      text,
			Timestamp: now.Format(time.RFC3339Nano),
			Kind:      kind,
			Meta:      meta,
		})
		metrics.MessagesSent.Inc()
		return true, nil
	})
}

// Thread returns every message of the event where the participant is either
// sender or recipient, ascending by timestamp.
func Thread(s *store.Store, eventKey, nameKey string) ([]models.Message, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	th := []models.Message{}
	for _, m := range doc.Messages {
		if m.EventKey == eventKey && (m.ToKey == nameKey || m.FromKey == nameKey) {
			th = append(th, m)
		}
	}
	sortMessages(th)
	return th, nil
}

// Feed returns the global message feed ascending by timestamp, truncated to
// the newest limit entries when limit > 0.
func Feed(s *store.Store, limit int) ([]models.Message, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	msgs := append([]models.Message{}, doc.Messages...)
	sortMessages(msgs)
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}

// sortMessages orders by parsed timestamp, falling back to the raw string
// when a record predates the RFC3339 format.
func sortMessages(msgs []models.Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		ti, errI := time.Parse(time.RFC3339Nano, msgs[i].Timestamp)
		tj, errJ := time.Parse(time.RFC3339Nano, msgs[j].Timestamp)
		if errI == nil && errJ == nil {
			return ti.Before(tj)
		}
		return msgs[i].Timestamp < msgs[j].Timestamp
	})
}
