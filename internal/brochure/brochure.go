// Package brochure extracts participant categories from the verbatim
// brochure text blocks. The patterns are literal by nature; the exact tokens
// they key on are covered by the package tests.
package brochure

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	ageHeader  = regexp.MustCompile(`(?i)Age\s*Category\s*:\s*(.+)`)
	romanStart = regexp.MustCompile(`(?:I{1,3}|IV|V)\s*[.:]`)
	romanPart  = regexp.MustCompile(`^((?:I{1,3}|IV|V))\s*[.:]\s*(.+)`)
	lineCat    = regexp.MustCompile(`(?i)^\s*Category\s*((?:I{1,3}|IV|V))\s*[:\-]\s*(.+)`)
	girlsTeam  = regexp.MustCompile(`\bgirls?\s+team\b`)
	boysTeam   = regexp.MustCompile(`\bboys?\s+team\b`)
	gradeRange = regexp.MustCompile(`(?i)\b([0-9]{1,2}(?:th|st|nd|rd)\s*to\s*[0-9]{1,2}(?:th|st|nd|rd))\b`)
)

// splitBeforeRomans cuts a segment immediately before every Roman-numeral
// marker ("II." / "IV:"), keeping any leading fragment.
func splitBeforeRomans(seg string) []string {
	locs := romanStart.FindAllStringIndex(seg, -1)
	if len(locs) == 0 {
		return []string{seg}
	}
	parts := []string{}
	prev := 0
	for _, loc := range locs {
		if loc[0] > prev {
			parts = append(parts, seg[prev:loc[0]])
			prev = loc[0]
		}
	}
	parts = append(parts, seg[prev:])
	return parts
}

// AgeCategories pulls "Category <roman> : <range>" labels out of an
// "Age Category:" segment, merged with standalone per-line Category rows,
// de-duplicated in first-seen order.
func AgeCategories(text string) []string {
	if text == "" {
		return nil
	}
	cats := []string{}
	if m := ageHeader.FindStringSubmatch(text); m != nil {
		for _, part := range splitBeforeRomans(m[1]) {
			part = strings.Trim(part, " .:\n\t")
			if part == "" {
				continue
			}
			if m2 := romanPart.FindStringSubmatch(part); m2 != nil {
				cats = append(cats, fmt.Sprintf("Category %s : %s", m2[1], strings.TrimSpace(m2[2])))
			}
		}
	}
	for _, line := range strings.Split(text, "\n") {
		if m3 := lineCat.FindStringSubmatch(line); m3 != nil {
			val := fmt.Sprintf("Category %s : %s", strings.ToUpper(m3[1]), strings.TrimSpace(m3[2]))
			cats = append(cats, val)
		}
	}
	out := []string{}
	for _, c := range cats {
		if !contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}

// GenderCategories returns exactly ["Girls", "Boys"] when the text mentions
// both a girls team and a boys team, in any of the tolerated phrasings.
func GenderCategories(text string) []string {
	if text == "" {
		return nil
	}
	t := strings.ToLower(text)
	if strings.Contains(t, "girls team") && strings.Contains(t, "boys team") {
		return []string{"Girls", "Boys"}
	}
	if girlsTeam.MatchString(t) && boysTeam.MatchString(t) {
		return []string{"Girls", "Boys"}
	}
	return nil
}

// Subcategories derives the effective brochure category list for one event
// block. Gender categories take priority over age categories; with neither,
// a single grade-range phrase yields one synthetic category; otherwise the
// list is empty and admins must add categories manually.
func Subcategories(block string) []string {
	if gender := GenderCategories(block); len(gender) > 0 {
		return gender
	}
	if age := AgeCategories(block); len(age) > 0 {
		return age
	}
	if m := gradeRange.FindStringSubmatch(block); m != nil {
		return []string{fmt.Sprintf("Category : %s", m[1])}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
