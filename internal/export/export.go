// Package export builds the admin-facing downloads: the consolidated master
// roster CSV, the raw store dump and per-event calendar files.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/vnk23k-beep/Cyno25/internal/catalog"
	"github.com/vnk23k-beep/Cyno25/internal/store"
)

// MasterHeaders is the fixed column order of the consolidated roster.
var MasterHeaders = []string{
	"NAME OF THE EVENT",
	"TEACHER IN CHARGE",
	"NAME OF PARTICIPANTS",
	"EMAIL ID OF PARTICIPANTS",
	"PHONE NUMBER",
	"STD",
	"DIV",
	"DATES",
	"CATEGORY",
}

// MasterCSV renders one row per participant record, joined against the
// catalog by event_key. Participants whose event left the catalog keep
// their stored display name with blank teacher/dates.
func MasterCSV(s *store.Store, c *catalog.Catalog) ([]byte, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(MasterHeaders); err != nil {
		return nil, err
	}
	for _, p := range doc.Participants {
		evName, teacher, dates := p.Event, "", ""
		if ev, ok := c.ByKey(p.EventKey); ok {
			evName = ev.Name
			teacher = ev.TeacherInCharge
			dates = strings.TrimSpace(ev.DateText())
		}
		row := []string{evName, teacher, p.Name, p.Email, p.Phone, p.Grade, p.Division, dates, p.Subcat}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RawJSON dumps the whole store document, indented, for backup/inspection.
func RawJSON(s *store.Store) ([]byte, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

const icsTimeLayout = "20060102T150405"

// EventICS builds a minimal VCALENDAR for one event. Unresolved start/end
// times simply omit their lines.
func EventICS(ev catalog.Event, start, end *time.Time) []byte {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\nVERSION:2.0\nPRODID:-//Cynosure//EN\nBEGIN:VEVENT\n")
	fmt.Fprintf(&b, "UID:%s@cynosure\n", ev.Key())
	fmt.Fprintf(&b, "SUMMARY:%s\n", ev.Name)
	if start != nil {
		fmt.Fprintf(&b, "DTSTART:%s\n", start.Format(icsTimeLayout))
	}
	if end != nil {
		fmt.Fprintf(&b, "DTEND:%s\n", end.Format(icsTimeLayout))
	}
	if ev.Venue != "" {
		fmt.Fprintf(&b, "LOCATION:%s\n", ev.Venue)
	}
	desc := strings.ReplaceAll(ev.BrochureBlock, "\n", "\\n")
	if r := []rune(desc); len(r) > 1800 {
		desc = string(r[:1800])
	}
	fmt.Fprintf(&b, "DESCRIPTION:%s\n", desc)
	b.WriteString("END:VEVENT\nEND:VCALENDAR")
	return []byte(b.String())
}
