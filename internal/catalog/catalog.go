package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/vnk23k-beep/Cyno25/internal/keys"
)

// Event is one festival activity as defined in the static events file.
// Read-only for the process lifetime.
type Event struct {
	Name            string `json:"name"`
	Category        string `json:"category"`
	AgeCategory     string `json:"age_category"`
	Date            string `json:"date"`
	DateInfoDuty    string `json:"date_info_duty"`
	Time            string `json:"time"`
	Venue           string `json:"venue"`
	TeacherInCharge string `json:"teacher_in_charge"`
	BrochureBlock   string `json:"brochure_block"`
}

// DateText returns the free-text date field, falling back to the duty info
// variant some brochure rows use instead.
func (e Event) DateText() string {
	if e.Date != "" {
		return e.Date
	}
	return e.DateInfoDuty
}

// Key is the event's identity: the normalized name.
func (e Event) Key() string { return keys.EventKey(e.Name) }

// Catalog is the in-memory index of all festival events, keyed by
// normalized name.
type Catalog struct {
	events []Event
	byKey  map[string]Event
}

type eventsFile struct {
	Events []Event `json:"events"`
}

// Load reads the events file. A missing or unreadable file is an error the
// caller treats as fatal at startup.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	var f eventsFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	c := &Catalog{events: f.Events, byKey: make(map[string]Event, len(f.Events))}
	for _, ev := range f.Events {
		c.byKey[ev.Key()] = ev
	}
	return c, nil
}

// Events returns all events in file order.
func (c *Catalog) Events() []Event { return c.events }

// ByKey looks up an event by its normalized name.
func (c *Catalog) ByKey(key string) (Event, bool) {
	ev, ok := c.byKey[key]
	return ev, ok
}

// Day filter values for Search.
const (
	DayAll = ""
	Day1   = "1" // Fri 26 Sep
	Day2   = "2" // Sat 27 Sep
)

// Search filters events by free-text query (all tokens must appear in the
// event's combined text), exact category ("" or "All" means any) and
// festival day. Results keep file order.
func (c *Catalog) Search(query, category, day string) []Event {
	nq := keys.Normalize(query)
	toks := []string{}
	if nq != "" {
		toks = strings.Fields(nq)
	}
	out := []Event{}
	for _, ev := range c.events {
		hay := strings.ToLower(strings.Join([]string{
			ev.Name, ev.Category, ev.AgeCategory, ev.TeacherInCharge, ev.BrochureBlock,
		}, " "))
		ok := true
		for _, tok := range toks {
			if !strings.Contains(hay, tok) {
				ok = false
				break
			}
		}
		if category != "" && category != "All" && ev.Category != category {
			ok = false
		}
		if ok && day != DayAll {
			ds := strings.ToUpper(ev.DateText())
			both := strings.Contains(ds, "BOTH")
			switch day {
			case Day1:
				ok = both || strings.Contains(ds, "FRIDAY") || strings.Contains(ds, "26")
			case Day2:
				ok = both || strings.Contains(ds, "SATURDAY") || strings.Contains(ds, "27")
			}
		}
		if ok {
			out = append(out, ev)
		}
	}
	return out
}

// Categories returns the sorted distinct event categories.
func (c *Catalog) Categories() []string {
	seen := map[string]bool{}
	out := []string{}
	for _, ev := range c.events {
		if ev.Category == "" || seen[ev.Category] {
			continue
		}
		seen[ev.Category] = true
		out = append(out, ev.Category)
	}
	sort.Strings(out)
	return out
}
