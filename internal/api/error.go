package api

import (
	"encoding/json"
	"fmt"
)

// FieldError is one entry of the server's structured validation response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a non-2xx API response. Message is always set; Fields only when
// the server returned its structured per-field list, in which case the UI
// surfaces one notification per entry.
type Error struct {
	Status  int
	Message string
	Fields  []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("HTTP %d: %s (%d field errors)", e.Status, e.Message, len(e.Fields))
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

type errorEnvelope struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

func decodeError(status int, body []byte) *Error {
	env := errorEnvelope{}
	if err := json.Unmarshal(body, &env); err != nil || env.Message == "" {
		msg := string(body)
		if msg == "" {
			msg = "request failed"
		}
		return &Error{Status: status, Message: msg}
	}
	return &Error{Status: status, Message: env.Message, Fields: env.Errors}
}
