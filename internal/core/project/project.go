// Package project contains the pure rules for projects.
package project

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/example/worklog/internal/core/patch"
)

const (
	MaxNameLength = 100
	DefaultColor  = "#6366f1"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

// CheckName trims a project name and checks its length.
func CheckName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("name is required")
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLength {
		return "", fmt.Errorf("name must be at most %d characters", MaxNameLength)
	}
	return trimmed, nil
}

// ParseColor normalizes a #RRGGBB color. Empty yields DefaultColor.
func ParseColor(s string) (string, error) {
	c := strings.ToLower(strings.TrimSpace(s))
	if c == "" {
		return DefaultColor, nil
	}
	if !colorPattern.MatchString(c) {
		return "", fmt.Errorf("invalid color %q (want #RRGGBB)", s)
	}
	return c, nil
}

// Patch is a partial project update. A provided nil description clears it.
type Patch struct {
	Name        patch.Field[string]
	Description patch.Field[*string]
	Color       patch.Field[string]
	Archived    patch.Field[bool]
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return !p.Name.Set && !p.Description.Set && !p.Color.Set && !p.Archived.Set
}

// State is the mutable part of a project.
type State struct {
	Name        string
	Description *string
	Color       string
	Archived    bool
}

// ApplyPatch returns s with p applied. On error s is returned unchanged.
func ApplyPatch(s State, p Patch) (State, error) {
	next := s
	if p.Name.Set {
		name, err := CheckName(p.Name.Value)
		if err != nil {
			return s, err
		}
		next.Name = name
	}
	if p.Description.Set {
		next.Description = p.Description.Value
	}
	if p.Color.Set {
		c, err := ParseColor(p.Color.Value)
		if err != nil {
			return s, err
		}
		next.Color = c
	}
	if p.Archived.Set {
		next.Archived = p.Archived.Value
	}
	return next, nil
}
