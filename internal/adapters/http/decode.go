package http

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/worklog/internal/apperr"
	"github.com/example/worklog/internal/core/note"
	"github.com/example/worklog/internal/core/patch"
	"github.com/example/worklog/internal/core/project"
	"github.com/example/worklog/internal/core/task"
)

// parseDueDate parses a due date field, reporting failures as validation errors.
func parseDueDate(s string) (time.Time, error) {
	t, err := task.ParseDueDate(s)
	if err != nil {
		return time.Time{}, apperr.Validation("%s", err)
	}
	return t, nil
}

func decodeJSON(body []byte, v any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return badRequest("request body is required")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return badRequest("invalid JSON body: %v", err)
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeField[T any](name string, raw json.RawMessage) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, badRequest("field %q has the wrong type", name)
	}
	return v, nil
}

// decodeTaskPatch reads a presence-aware task update. Omitted keys are left
// unchanged, null clears nullable fields, and null on a required field is a
// validation error.
func decodeTaskPatch(body []byte) (task.Patch, error) {
	var raw map[string]json.RawMessage
	if err := decodeJSON(body, &raw); err != nil {
		return task.Patch{}, err
	}

	var p task.Patch
	for key, value := range raw {
		switch key {
		case "title", "status", "priority", "order":
			if isNull(value) {
				return task.Patch{}, apperr.Validation("%s cannot be null", key)
			}
		}

		switch key {
		case "title":
			s, err := decodeField[string](key, value)
			if err != nil {
				return task.Patch{}, err
			}
			p.Title = task.Provide(s)
		case "description":
			s, err := decodeField[*string](key, value)
			if err != nil {
				return task.Patch{}, err
			}
			p.Description = task.Provide(s)
		case "status":
			s, err := decodeField[string](key, value)
			if err != nil {
				return task.Patch{}, err
			}
			p.Status = task.Provide(task.Status(s))
		case "priority":
			s, err := decodeField[string](key, value)
			if err != nil {
				return task.Patch{}, err
			}
			p.Priority = task.Provide(task.Priority(s))
		case "due_date":
			s, err := decodeField[*string](key, value)
			if err != nil {
				return task.Patch{}, err
			}
			if s == nil {
				p.DueDate = task.Provide[*time.Time](nil)
				continue
			}
			due, err := parseDueDate(*s)
			if err != nil {
				return task.Patch{}, err
			}
			p.DueDate = task.Provide(&due)
		case "order":
			n, err := decodeField[int](key, value)
			if err != nil {
				return task.Patch{}, err
			}
			p.Order = task.Provide(n)
		}
	}
	return p, nil
}

// decodeNotePatch reads a presence-aware note update.
func decodeNotePatch(body []byte) (note.Patch, error) {
	var raw map[string]json.RawMessage
	if err := decodeJSON(body, &raw); err != nil {
		return note.Patch{}, err
	}

	var p note.Patch
	if value, ok := raw["content"]; ok {
		s, err := decodeField[*string]("content", value)
		if err != nil {
			return note.Patch{}, err
		}
		p.Content = patch.Provide(s)
	}
	if value, ok := raw["mood"]; ok {
		s, err := decodeField[*string]("mood", value)
		if err != nil {
			return note.Patch{}, err
		}
		mood, err := parseMoodPtr(s)
		if err != nil {
			return note.Patch{}, apperr.Validation("%s", err)
		}
		p.Mood = patch.Provide(mood)
	}
	return p, nil
}

// decodeProjectPatch reads a presence-aware project update. Only the
// description may be cleared with null.
func decodeProjectPatch(body []byte) (project.Patch, error) {
	var raw map[string]json.RawMessage
	if err := decodeJSON(body, &raw); err != nil {
		return project.Patch{}, err
	}

	var p project.Patch
	for key, value := range raw {
		switch key {
		case "name", "color", "archived":
			if isNull(value) {
				return project.Patch{}, apperr.Validation("%s cannot be null", key)
			}
		}

		switch key {
		case "name":
			s, err := decodeField[string](key, value)
			if err != nil {
				return project.Patch{}, err
			}
			p.Name = patch.Provide(s)
		case "description":
			s, err := decodeField[*string](key, value)
			if err != nil {
				return project.Patch{}, err
			}
			p.Description = patch.Provide(s)
		case "color":
			s, err := decodeField[string](key, value)
			if err != nil {
				return project.Patch{}, err
			}
			p.Color = patch.Provide(s)
		case "archived":
			b, err := decodeField[bool](key, value)
			if err != nil {
				return project.Patch{}, err
			}
			p.Archived = patch.Provide(b)
		}
	}
	return p, nil
}

// queryInt reads an integer query parameter, falling back to def when absent.
func queryInt(c *fiber.Ctx, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest("query parameter %q must be an integer", name)
	}
	return n, nil
}
