package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Keys of the persisted task layout, in order.
const (
	keyID          = "id"
	keyTitle       = "title"
	keyDescription = "description"
	keyCompleted   = "completed"
	keyCreatedAt   = "createdAt"
	keyUpdatedAt   = "updatedAt"
)

// member is one key of a stored task object. raw holds the stored value
// verbatim for unknown keys and for known keys whose value did not have the
// expected JSON type; it is nil when the typed field is the source of truth.
type member struct {
	key string
	raw json.RawMessage
}

// taskLayout has Task's fields and tags but none of its methods.
type taskLayout Task

// MarshalJSON implements json.Marshaler. HTML characters are not escaped.
func (t Task) MarshalJSON() ([]byte, error) {
	if t.members == nil {
		return encodeValue(taskLayout(t))
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range t.members {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encodeValue(m.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		value := []byte(m.raw)
		if value == nil {
			if value, err = encodeValue(t.fieldValue(m.key)); err != nil {
				return nil, err
			}
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. Any JSON object is accepted:
// known keys with an unexpected type are coerced leniently for use and kept
// verbatim for writing back, and unknown keys are kept as they are.
func (t *Task) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("task must be a JSON object, got %v", tok)
	}

	var task Task
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected task key %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}

		m := member{key: key}
		if !task.setField(key, raw) {
			m.raw = raw
		}
		// a repeated key keeps its first position and its last value
		if i, seen := index[key]; seen {
			task.members[i] = m
			continue
		}
		index[key] = len(task.members)
		task.members = append(task.members, m)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	if task.hasCanonicalLayout() {
		task.members = nil
	}
	*t = task
	return nil
}

// setField decodes raw into the field named key. It reports whether the value
// had the expected type; otherwise the field gets a lenient reading of raw.
func (t *Task) setField(key string, raw json.RawMessage) bool {
	if isNull(bytes.TrimSpace(raw)) {
		return false
	}

	switch key {
	case keyID:
		if err := json.Unmarshal(raw, &t.ID); err == nil {
			return true
		}
		t.ID = looseID(raw)
	case keyTitle:
		return decodeText(raw, &t.Title)
	case keyDescription:
		return decodeText(raw, &t.Description)
	case keyCompleted:
		if err := json.Unmarshal(raw, &t.Completed); err == nil {
			return true
		}
		t.Completed, _ = ParseCompleted(raw)
	case keyCreatedAt:
		return json.Unmarshal(raw, &t.CreatedAt) == nil
	case keyUpdatedAt:
		return json.Unmarshal(raw, &t.UpdatedAt) == nil
	}
	return false
}

// fieldValue returns the typed value stored under a known key.
func (t *Task) fieldValue(key string) interface{} {
	switch key {
	case keyID:
		return t.ID
	case keyTitle:
		return t.Title
	case keyDescription:
		return t.Description
	case keyCompleted:
		return t.Completed
	case keyCreatedAt:
		return t.CreatedAt
	case keyUpdatedAt:
		return t.UpdatedAt
	}
	return nil
}

// touch makes the typed field under key the value written back, adding the
// key at the end when the stored object did not have it.
func (t *Task) touch(key string) {
	if t.members == nil {
		return
	}
	for i := range t.members {
		if t.members[i].key == key {
			t.members[i].raw = nil
			return
		}
	}
	t.members = append(t.members, member{key: key})
}

// hasCanonicalLayout reports whether encoding the typed fields reproduces the
// stored members exactly.
func (t *Task) hasCanonicalLayout() bool {
	want := []string{keyID, keyTitle, keyDescription, keyCompleted, keyCreatedAt}
	if t.UpdatedAt != "" {
		want = append(want, keyUpdatedAt)
	}
	if len(t.members) != len(want) {
		return false
	}
	for i, m := range t.members {
		if m.key != want[i] || m.raw != nil {
			return false
		}
	}
	return true
}

// decodeText reads a string field. Numbers and booleans become their text
// form; anything else becomes empty. It reports whether raw was a string.
func decodeText(raw json.RawMessage, dst *string) bool {
	if err := json.Unmarshal(raw, dst); err == nil {
		return true
	}
	var text Text
	_ = text.UnmarshalJSON(raw)
	*dst = text.Value
	return false
}

// looseID reads an id stored with the wrong type: numeric strings are parsed
// like path segments, fractions are truncated, true counts as 1.
func looseID(raw json.RawMessage) int64 {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0
	}
	switch val := v.(type) {
	case string:
		return ParseID(val)
	case float64:
		switch {
		case val >= math.MaxInt64:
			return math.MaxInt64
		case val <= math.MinInt64:
			return math.MinInt64
		}
		return int64(val)
	case bool:
		if val {
			return 1
		}
	}
	return 0
}

// encodeValue marshals v without HTML escaping or a trailing newline.
func encodeValue(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
