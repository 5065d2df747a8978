package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// TaskInput is a create or update request body. A field whose key is missing
// or whose value is null is not Present.
type TaskInput struct {
	Title       Text     `json:"title"`
	Description Text     `json:"description"`
	Completed   RawField `json:"completed"`
}

// HasFields reports whether any recognized field is present.
func (in TaskInput) HasFields() bool {
	return in.Title.Present || in.Description.Present || in.Completed.Present
}

// Text is a string-valued input field. Numbers and booleans are accepted and
// kept in their text form; arrays and objects mark the field NotString.
type Text struct {
	Present   bool
	NotString bool
	Value     string
}

// trimCutset is the whitespace removed around text fields: ASCII space, tab,
// newline, carriage return, NUL, and vertical tab. Unicode spaces such as
// U+00A0 are content.
const trimCutset = " \t\n\r\x00\x0B"

// Trimmed returns the value without surrounding whitespace.
func (t Text) Trimmed() string {
	return strings.Trim(t.Value, trimCutset)
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if isNull(data) {
		return nil
	}

	t.Present = true
	switch data[0] {
	case '"':
		return json.Unmarshal(data, &t.Value)
	case 't':
		t.Value = "1"
	case 'f':
		t.Value = ""
	case '[', '{':
		t.NotString = true
	default:
		// number literal, kept verbatim
		t.Value = string(data)
	}
	return nil
}

// RawField keeps the undecoded JSON value of a field so that its accepted
// representations can be checked separately from decoding.
type RawField struct {
	Present bool
	Raw     json.RawMessage
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *RawField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if isNull(data) {
		return nil
	}
	f.Present = true
	f.Raw = append(f.Raw[:0], data...)
	return nil
}

// ParseCompleted decodes a completed value. The accepted set is closed:
// true, false, the strings "true", "false", "1", "0" in any letter case, and
// the numbers 1 and 0. Anything else yields ErrInvalidCompleted.
func ParseCompleted(raw json.RawMessage) (bool, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return false, ErrInvalidCompleted
	}

	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		switch strings.ToLower(val) {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		}
	case json.Number:
		f, err := strconv.ParseFloat(val.String(), 64)
		if err != nil {
			return false, ErrInvalidCompleted
		}
		switch f {
		case 1:
			return true, nil
		case 0:
			return false, nil
		}
	}
	return false, ErrInvalidCompleted
}

func isNull(data []byte) bool {
	return len(data) == 0 || bytes.Equal(data, []byte("null"))
}
