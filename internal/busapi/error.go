package busapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is a non-2xx backend response. Message is ready to show an
// operator: the backend's field-level validation detail joined per field
// when present, otherwise a generic message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

func newAPIError(statusCode int, body []byte) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    detailMessage(statusCode, body),
	}
}

// detailMessage renders the backend's error body. The backend reports
// validation failures as {"detail": [{"loc": [...], "msg": "..."}]} and
// simple failures as {"detail": "..."}.
func detailMessage(statusCode int, body []byte) string {
	generic := fmt.Sprintf("request failed with status %d", statusCode)

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return generic
	}

	var plain string
	if err := json.Unmarshal(envelope.Detail, &plain); err == nil && plain != "" {
		return plain
	}

	var fields []struct {
		Loc []interface{} `json:"loc"`
		Msg string        `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &fields); err != nil || len(fields) == 0 {
		return generic
	}

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		name := fieldName(field.Loc)
		if name == "" {
			parts = append(parts, field.Msg)
			continue
		}
		parts = append(parts, name+": "+field.Msg)
	}
	return strings.Join(parts, "; ")
}

// fieldName takes the last string element of the backend's loc path, which
// names the offending field ("body" and index prefixes are positional).
func fieldName(loc []interface{}) string {
	for i := len(loc) - 1; i >= 0; i-- {
		if s, ok := loc[i].(string); ok && s != "body" {
			return s
		}
	}
	return ""
}
