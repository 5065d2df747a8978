package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes caps the size of request bodies read by ReadJSONBody.
const MaxBodyBytes = 1 << 20

// ErrMalformedJSON is returned when a request body is empty or is not a
// single well-formed JSON document.
var ErrMalformedJSON = errors.New("malformed JSON body")

// ReadJSONBody reads the request body and checks that it is well-formed JSON.
// The raw document is returned so callers can inspect its shape before
// decoding.
func ReadJSONBody(r *http.Request) (json.RawMessage, error) {
	if r.Body == nil {
		return nil, ErrMalformedJSON
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	if len(data) > MaxBodyBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrMalformedJSON, MaxBodyBytes)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || !json.Valid(data) {
		return nil, ErrMalformedJSON
	}
	return data, nil
}

// IsJSONObject reports whether raw is a JSON object.
func IsJSONObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

// DecodeJSON decodes raw into v.
func DecodeJSON(raw json.RawMessage, v interface{}) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return nil
}
