// Package codec reads and writes the note interchange file: a UTF-8 JSON
// array of note objects.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/xxxsen/jotty/internal/model"
	appErr "github.com/xxxsen/jotty/internal/pkg/errors"
	"github.com/xxxsen/jotty/internal/pkg/textutil"
)

const noteSchema = `{
  "type": "object",
  "required": ["id", "title", "content"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "title": {"type": "string"},
    "content": {"type": "string"}
  }
}`

var noteSchemaLoader = gojsonschema.NewStringLoader(noteSchema)

type Limits struct {
	MaxNotes     int
	MaxNoteBytes int
	MaxImageMB   float64
}

// DecodeBatch parses and validates an import file. Any malformed record
// rejects the whole batch.
func DecodeBatch(data []byte, limits Limits) ([]model.Note, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		var probe interface{}
		if json.Unmarshal(data, &probe) == nil {
			return nil, appErr.ErrImportNotArray
		}
		return nil, fmt.Errorf("%w: %v", appErr.ErrImportInvalidJSON, err)
	}
	if raw == nil {
		return nil, appErr.ErrImportNotArray
	}
	if limits.MaxNotes > 0 && len(raw) > limits.MaxNotes {
		return nil, fmt.Errorf("%w: %d records, limit %d", appErr.ErrImportTooManyNotes, len(raw), limits.MaxNotes)
	}
	notes := make([]model.Note, 0, len(raw))
	for i, item := range raw {
		if err := validateRecord(item); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		note, err := decodeRecord(item)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if limits.MaxNoteBytes > 0 && len(note.Content) > limits.MaxNoteBytes {
			return nil, fmt.Errorf("record %d: %w", i, appErr.ErrImportNoteTooLarge)
		}
		if limits.MaxImageMB > 0 && note.Image != "" && !textutil.ImageWithinLimit(note.Image, limits.MaxImageMB) {
			return nil, fmt.Errorf("record %d: %w", i, appErr.ErrImageTooLarge)
		}
		notes = append(notes, note)
	}
	return notes, nil
}

func validateRecord(item json.RawMessage) error {
	result, err := gojsonschema.Validate(noteSchemaLoader, gojsonschema.NewBytesLoader(item))
	if err != nil {
		return fmt.Errorf("%w: %v", appErr.ErrImportMissingFields, err)
	}
	if !result.Valid() {
		desc := ""
		if errs := result.Errors(); len(errs) > 0 {
			desc = errs[0].String()
		}
		return fmt.Errorf("%w: %s", appErr.ErrImportMissingFields, desc)
	}
	return nil
}

// wireNote holds a schema-checked record. Only id, title and content are
// strictly typed; the rest are read loosely.
type wireNote struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Content    string          `json:"content"`
	Color      json.RawMessage `json:"color"`
	Icon       json.RawMessage `json:"icon"`
	LastEdited json.RawMessage `json:"lastEdited"`
	Template   json.RawMessage `json:"template"`
	Image      json.RawMessage `json:"image"`
}

func decodeRecord(item json.RawMessage) (model.Note, error) {
	var w wireNote
	if err := json.Unmarshal(item, &w); err != nil {
		return model.Note{}, fmt.Errorf("%w: %v", appErr.ErrImportMissingFields, err)
	}
	return model.Note{
		ID:         w.ID,
		Title:      w.Title,
		Content:    w.Content,
		Color:      looseString(w.Color),
		Icon:       looseString(w.Icon),
		LastEdited: looseMillis(w.LastEdited),
		Template:   model.Template(looseString(w.Template)),
		Image:      looseString(w.Image),
	}, nil
}

// looseString keeps strings, spells numbers as written and drops anything
// else.
func looseString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var n json.Number
	if json.Unmarshal(raw, &n) == nil {
		return n.String()
	}
	return ""
}

// looseMillis accepts integer, fractional, exponent or numeric-string
// timestamps, truncated toward zero. Anything else reads as 0.
func looseMillis(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}
	var text string
	if json.Unmarshal(raw, &text) != nil {
		var n json.Number
		if json.Unmarshal(raw, &n) != nil {
			return 0
		}
		text = n.String()
	}
	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		return v
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= math.MaxInt64 {
		return 0
	}
	return int64(f)
}

// EncodeNotes renders notes as the pretty-printed export document.
func EncodeNotes(notes []model.Note) ([]byte, error) {
	if notes == nil {
		notes = []model.Note{}
	}
	return json.MarshalIndent(notes, "", "  ")
}

func ExportFileName(now time.Time) string {
	return fmt.Sprintf("jotty-notes-%s.json", now.UTC().Format("2006-01-02"))
}
