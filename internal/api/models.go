package api

import (
	"bytes"
	"encoding/json"
)

// InfoResponse is returned by GET /.
type InfoResponse struct {
	Message   string      `json:"message"`
	Endpoints EndpointMap `json:"endpoints"`
}

// EndpointMap renders routes as a JSON object of "METHOD /pattern" to
// description, in route table order.
type EndpointMap []Route

// MarshalJSON implements json.Marshaler.
func (m EndpointMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, route := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(route.Signature())
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(route.Description)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Server    string `json:"server"`
}

// DeleteResponse confirms a deletion.
type DeleteResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// NotFoundResponse is returned for any request no route matches.
type NotFoundResponse struct {
	Error              string   `json:"error"`
	Method             string   `json:"method"`
	Path               string   `json:"path"`
	AvailableEndpoints []string `json:"available_endpoints"`
}
