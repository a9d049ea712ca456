package docsystem

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// RecordShape tags which variant of SourceRecord was received.
type RecordShape int

const (
	// ShapeStructured is a JSON object with id/file_name/file_data/summary fields.
	ShapeStructured RecordShape = iota
	// ShapeBare is a legacy bare JSON string.
	ShapeBare
)

func (s RecordShape) String() string {
	switch s {
	case ShapeStructured:
		return "structured"
	case ShapeBare:
		return "bare"
	default:
		return fmt.Sprintf("RecordShape(%d)", int(s))
	}
}

// SourceRecord is one element of a file or report collection in a snapshot.
// The raw JSON shape is resolved once in UnmarshalJSON; everything downstream
// switches on Shape instead of re-inspecting the payload.
type SourceRecord struct {
	Shape RecordShape

	// Structured fields
	ID        string
	FileName  string
	FileData  string
	Summary   string
	Score     string // numeric or textual, kept verbatim
	CreatedAt *time.Time

	// Bare field
	Text string
}

// Bare builds a legacy bare-string record.
func Bare(text string) SourceRecord {
	return SourceRecord{Shape: ShapeBare, Text: text}
}

type structuredRecord struct {
	ID        *string         `json:"id"`
	FileName  *string         `json:"file_name"`
	FileData  *string         `json:"file_data"`
	Summary   *string         `json:"summary"`
	Score     json.RawMessage `json:"score"`
	CreatedAt *string         `json:"created_at"`
}

// UnmarshalJSON decodes either a bare string or a structured object.
func (r *SourceRecord) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*r = SourceRecord{Shape: ShapeStructured}
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*r = Bare(s)
		return nil
	}

	var raw structuredRecord
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return fmt.Errorf("decode source record: %w", err)
	}

	*r = SourceRecord{
		Shape:     ShapeStructured,
		ID:        deref(raw.ID),
		FileName:  deref(raw.FileName),
		FileData:  deref(raw.FileData),
		Summary:   deref(raw.Summary),
		Score:     scoreText(raw.Score),
		CreatedAt: ParseTimestamp(deref(raw.CreatedAt)),
	}
	return nil
}

// MarshalJSON writes the record back in its received shape.
func (r SourceRecord) MarshalJSON() ([]byte, error) {
	if r.Shape == ShapeBare {
		return json.Marshal(r.Text)
	}

	out := map[string]interface{}{}
	if r.ID != "" {
		out["id"] = r.ID
	}
	if r.FileName != "" {
		out["file_name"] = r.FileName
	}
	if r.FileData != "" {
		out["file_data"] = r.FileData
	}
	if r.Summary != "" {
		out["summary"] = r.Summary
	}
	if r.Score != "" {
		out["score"] = r.Score
	}
	if r.CreatedAt != nil {
		out["created_at"] = r.CreatedAt.UTC().Format(time.RFC3339)
	}
	return json.Marshal(out)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses the timestamp formats seen from backends.
// Empty or unparseable values yield nil.
func ParseTimestamp(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func scoreText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
