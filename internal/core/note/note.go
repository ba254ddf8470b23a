// Package note contains the pure rules for daily notes.
package note

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/worklog/internal/core/patch"
)

// DateLayout is the canonical calendar-date form of a note key.
const DateLayout = "2006-01-02"

// Mood is the optional self-reported mood attached to a note.
type Mood string

const (
	MoodGreat Mood = "great"
	MoodGood  Mood = "good"
	MoodOkay  Mood = "okay"
	MoodBad   Mood = "bad"
)

// Moods lists every mood from best to worst.
var Moods = []Mood{MoodGreat, MoodGood, MoodOkay, MoodBad}

// Valid reports whether m is a known mood.
func (m Mood) Valid() bool {
	switch m {
	case MoodGreat, MoodGood, MoodOkay, MoodBad:
		return true
	}
	return false
}

// ParseMood parses a case-insensitive mood name.
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("invalid mood %q (want great, good, okay or bad)", s)
	}
	return m, nil
}

// ParseDate parses a YYYY-MM-DD calendar date and returns it in canonical form.
func ParseDate(s string) (string, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return d.Format(DateLayout), nil
}

// CheckRange validates an optional inclusive date range. Empty bounds are open.
func CheckRange(from, to string) (string, string, error) {
	var err error
	if from != "" {
		if from, err = ParseDate(from); err != nil {
			return "", "", err
		}
	}
	if to != "" {
		if to, err = ParseDate(to); err != nil {
			return "", "", err
		}
	}
	if from != "" && to != "" && from > to {
		return "", "", fmt.Errorf("from %s is after to %s", from, to)
	}
	return from, to, nil
}

// Patch is a partial note update. A provided nil clears the field.
type Patch struct {
	Content patch.Field[*string]
	Mood    patch.Field[*Mood]
}

// State is the mutable part of a note.
type State struct {
	Content *string
	Mood    *Mood
}

// ApplyPatch returns s with p applied.
func ApplyPatch(s State, p Patch) (State, error) {
	next := s
	if p.Content.Set {
		next.Content = p.Content.Value
	}
	if p.Mood.Set {
		if p.Mood.Value != nil && !p.Mood.Value.Valid() {
			return s, fmt.Errorf("invalid mood %q", *p.Mood.Value)
		}
		next.Mood = p.Mood.Value
	}
	return next, nil
}
