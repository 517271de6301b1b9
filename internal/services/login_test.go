package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vnk23k-beep/Cyno25/internal/catalog"
)

const loginEvents = `{
  "events": [
    {"name": "Chess Masters", "date": "FRIDAY 26th", "time": "10:00 AM"},
    {"name": "Debate", "date": "SATURDAY 27th", "time": "9:30 AM"}
  ]
}`

func loginCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cynosure_events.json")
	if err := os.WriteFile(path, []byte(loginEvents), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return c
}

func TestParticipantExistsIgnoresCaseAndSpacing(t *testing.T) {
	s := tempStore(t)
	if err := UpsertParticipant(s, "Chess Masters", "Asha Rao", "111", "", "", "", ""); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"Asha Rao", " asha  RAO "} {
		got, err := ParticipantExists(s, name)
		if err != nil {
			t.Fatal(err)
		}
		if !got {
			t.Errorf("ParticipantExists(%q) = false, want true", name)
		}
	}
	if got, _ := ParticipantExists(s, "Ravi Kumar"); got {
		t.Error("ParticipantExists reported an unknown name")
	}
}

func TestSoonestEventPicksEarliestStart(t *testing.T) {
	s := tempStore(t)
	c := loginCatalog(t)
	if err := UpsertParticipant(s, "Debate", "Asha Rao", "", "", "", "", ""); err != nil {
		t.Fatal(err)
	}
	if err := UpsertParticipant(s, "Chess Masters", "Asha Rao", "", "", "", "", ""); err != nil {
		t.Fatal(err)
	}

	ev, start, _, ok, err := SoonestEvent(s, c, "asha rao")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("ok = false, want a resolved event")
	}
	if ev.Name != "Chess Masters" {
		t.Errorf("event = %q, want the Friday one", ev.Name)
	}
	if start == nil || start.Day() != 26 || start.Hour() != 10 {
		t.Errorf("start = %v, want Friday 10:00", start)
	}
}

func TestSoonestEventSkipsEventsGoneFromCatalog(t *testing.T) {
	s := tempStore(t)
	c := loginCatalog(t)
	if err := UpsertParticipant(s, "Cancelled Show", "Asha Rao", "", "", "", "", ""); err != nil {
		t.Fatal(err)
	}

	_, _, _, ok, err := SoonestEvent(s, c, "Asha Rao")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("ok = true for a roster entry with no catalog event")
	}
}
