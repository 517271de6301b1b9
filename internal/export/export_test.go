package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/vnk23k-beep/Cyno25/internal/catalog"
	"github.com/vnk23k-beep/Cyno25/internal/services"
	"github.com/vnk23k-beep/Cyno25/internal/store"
)

const exportEvents = `{
  "events": [
    {"name": "Chess Masters", "date": "FRIDAY 26th", "teacher_in_charge": "Ms. Rao", "venue": "Hall A", "brochure_block": "Line one.\nLine two."}
  ]
}`

func fixtures(t *testing.T) (*store.Store, *catalog.Catalog) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "cynosure_events.json")
	if err := os.WriteFile(path, []byte(exportEvents), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return store.Open(filepath.Join(dir, "participants_store.json")), c
}

func TestMasterCSVJoinsCatalog(t *testing.T) {
	s, c := fixtures(t)
	if err := services.UpsertParticipant(s, "chess  masters", "Asha Rao", "111", "a@x.in", "8", "A", "Girls"); err != nil {
		t.Fatal(err)
	}

	out, err := MasterCSV(s, c)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header plus one record", len(rows))
	}
	if !reflect.DeepEqual(rows[0], MasterHeaders) {
		t.Errorf("header = %v", rows[0])
	}
	want := []string{"Chess Masters", "Ms. Rao", "Asha Rao", "a@x.in", "111", "8", "A", "FRIDAY 26th", "Girls"}
	if !reflect.DeepEqual(rows[1], want) {
		t.Errorf("row = %v, want %v", rows[1], want)
	}
}

func TestMasterCSVUnknownEventKeepsStoredName(t *testing.T) {
	s, c := fixtures(t)
	if err := services.UpsertParticipant(s, "Cancelled Show", "Ravi Kumar", "", "", "", "", ""); err != nil {
		t.Fatal(err)
	}

	out, err := MasterCSV(s, c)
	if err != nil {
		t.Fatal(err)
	}
	rows, _ := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if rows[1][0] != "Cancelled Show" {
		t.Errorf("event = %q, want the stored display name", rows[1][0])
	}
	if rows[1][1] != "" || rows[1][7] != "" {
		t.Errorf("teacher/dates = %q/%q, want blank for an unknown event", rows[1][1], rows[1][7])
	}
}

func TestRawJSONIsTheWholeDocument(t *testing.T) {
	s, _ := fixtures(t)
	if err := services.UpsertParticipant(s, "Chess Masters", "Asha Rao", "111", "", "", "", ""); err != nil {
		t.Fatal(err)
	}

	out, err := RawJSON(s)
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Participants []map[string]any `json:"participants"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("dump is not valid JSON: %v", err)
	}
	if len(decoded.Participants) != 1 {
		t.Errorf("participants = %d, want 1", len(decoded.Participants))
	}
}

func TestEventICS(t *testing.T) {
	ev := catalog.Event{Name: "Chess Masters", Venue: "Hall A", BrochureBlock: "Line one.\nLine two."}
	start := time.Date(2025, 9, 26, 10, 0, 0, 0, time.Local)
	end := start.Add(2 * time.Hour)

	out := string(EventICS(ev, &start, &end))
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"UID:chess masters@cynosure",
		"SUMMARY:Chess Masters",
		"DTSTART:20250926T100000",
		"DTEND:20250926T120000",
		"LOCATION:Hall A",
		"DESCRIPTION:Line one.\\nLine two.",
		"END:VCALENDAR",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("calendar missing %q:\n%s", want, out)
		}
	}
}

func TestEventICSTruncatesLongDescriptionsOnRuneBoundary(t *testing.T) {
	ev := catalog.Event{Name: "Quiz", BrochureBlock: strings.Repeat("é", 2000)}
	out := string(EventICS(ev, nil, nil))

	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "DESCRIPTION:") {
			continue
		}
		desc := strings.TrimPrefix(line, "DESCRIPTION:")
		if !utf8.ValidString(desc) {
			t.Fatal("truncation split a multi-byte rune")
		}
		if n := len([]rune(desc)); n != 1800 {
			t.Errorf("description runes = %d, want 1800", n)
		}
		return
	}
	t.Fatal("no DESCRIPTION line in output")
}

func TestEventICSOmitsUnresolvedTimes(t *testing.T) {
	out := string(EventICS(catalog.Event{Name: "Quiz"}, nil, nil))
	if strings.Contains(out, "DTSTART") || strings.Contains(out, "DTEND") {
		t.Errorf("calendar carries times for an unresolved schedule:\n%s", out)
	}
}
