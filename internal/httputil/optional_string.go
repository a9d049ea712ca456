package httputil

import (
	"bytes"
	"encoding/json"
)

// OptionalString tracks presence and value for JSON merge semantics (RFC 7396).
// Folder descriptions need all three states, which *string cannot express:
//   - Present=false: field absent from JSON (keep the stored value)
//   - Present=true, Value=nil: field is JSON null (clear)
//   - Present=true, Value=&"text": field has value
type OptionalString struct {
	Present bool
	Value   *string
}

// Set returns a present OptionalString holding s.
func Set(s string) OptionalString {
	return OptionalString{Present: true, Value: &s}
}

// UnmarshalJSON implements json.Unmarshaler.
// When this method is called, the field was present in the JSON.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// Or resolves the field against the stored value: absent keeps current,
// null clears to "", a value replaces it.
func (o OptionalString) Or(current string) string {
	if !o.Present {
		return current
	}
	if o.Value == nil {
		return ""
	}
	return *o.Value
}
