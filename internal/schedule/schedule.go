// Package schedule derives concrete start/end timestamps and a live status
// label from the brochure's free-text date and time fields.
package schedule

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/vnk23k-beep/Cyno25/internal/catalog"
)

// The two festival days. All brochure day tokens resolve onto these.
var (
	Day1 = time.Date(2025, time.September, 26, 0, 0, 0, 0, time.Local)
	Day2 = time.Date(2025, time.September, 27, 0, 0, 0, 0, time.Local)
)

// clockToken matches 12-hour clock fragments: "10:00 AM", "5 PM",
// dotted "9:30 A.M." variants and the word noon.
var (
	clockToken = regexp.MustCompile(`(?i)(\d{1,2}:\d{2}\s*(?:A\.M\.|P\.M\.|AM|PM|NOON)|\d{1,2}\s*(?:A\.M\.|P\.M\.|AM|PM))`)
	missingGap = regexp.MustCompile(`(\d)(AM|PM)$`)
)

// parseClock turns one matched token into hour/minute. Reports ok=false on
// anything the 12-hour formats cannot digest.
func parseClock(tok string) (hour, min int, ok bool) {
	t := strings.ToUpper(strings.TrimSpace(tok))
	t = strings.ReplaceAll(t, "A.M.", "AM")
	t = strings.ReplaceAll(t, "P.M.", "PM")
	if strings.Contains(t, "NOON") {
		return 12, 0, true
	}
	t = missingGap.ReplaceAllString(t, "$1 $2")
	t = strings.Join(strings.Fields(t), " ")
	for _, layout := range []string{"3:04 PM", "3 PM"} {
		if parsed, err := time.Parse(layout, t); err == nil {
			return parsed.Hour(), parsed.Minute(), true
		}
	}
	return 0, 0, false
}

func at(day time.Time, hour, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, day.Location())
}

// Resolve parses an event's date/time text into start and end timestamps.
// Either or both may be nil when the text gives nothing to anchor on.
//
// Day tokens: FRIDAY/26 is day one, SATURDAY/27 is day two (or the end day
// when a first day already matched), BOTH spans both days. The first two
// clock tokens found are the start and end times. A day without a time
// defaults to 09:00; an end time without an end day binds to the start day;
// a start without any end time defaults to start + 2h.
func Resolve(ev catalog.Event) (start, end *time.Time) {
	upDate := strings.ToUpper(ev.DateText())

	var startDay, endDay *time.Time
	if strings.Contains(upDate, "FRIDAY") || strings.Contains(upDate, "26") {
		startDay = &Day1
	}
	if strings.Contains(upDate, "SATURDAY") || strings.Contains(upDate, "27") {
		if startDay != nil {
			endDay = &Day2
		} else {
			startDay = &Day2
		}
	}
	if strings.Contains(upDate, "BOTH") {
		startDay, endDay = &Day1, &Day2
	}

	matches := clockToken.FindAllString(ev.Time, -1)
	var sHour, sMin, eHour, eMin int
	var haveStart, haveEnd bool
	if len(matches) >= 1 {
		sHour, sMin, haveStart = parseClock(matches[0])
	}
	if len(matches) >= 2 {
		eHour, eMin, haveEnd = parseClock(matches[1])
	}

	if startDay != nil && haveStart {
		s := at(*startDay, sHour, sMin)
		start = &s
	} else if startDay != nil {
		s := at(*startDay, 9, 0)
		start = &s
	}

	switch {
	case endDay != nil && haveEnd:
		e := at(*endDay, eHour, eMin)
		end = &e
	case start != nil && haveEnd:
		e := at(*start, eHour, eMin)
		end = &e
	case start != nil:
		e := start.Add(2 * time.Hour)
		end = &e
	}
	return start, end
}

// Status reports the live label for a resolved schedule. Recomputed on every
// call since it depends on now.
func Status(now time.Time, start, end *time.Time) string {
	if start == nil {
		return "Time TBD"
	}
	if now.Before(*start) {
		delta := start.Sub(now)
		days := int(delta.Hours()) / 24
		rem := delta - time.Duration(days)*24*time.Hour
		hours := int(rem.Hours())
		mins := int(rem.Minutes()) % 60
		if days > 0 {
			return fmt.Sprintf("Starts in %dd %dh %dm", days, hours, mins)
		}
		return fmt.Sprintf("Starts in %dh %dm", hours, mins)
	}
	if end != nil && now.After(*end) {
		return "Completed"
	}
	return "On-going"
}
