package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error is a non-success response from the server.
type Error struct {
	Status int
	// Detail is the server-provided, user-facing message. It may be empty.
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server error (%d)", e.Status)
	}
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Detail)
}

// errorResponse matches the server's error body: {"detail": "..."}.
// Validation failures carry a list of {"msg": "..."} objects instead.
type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

func newError(status int, body []byte) *Error {
	e := &Error{Status: status}

	var resp errorResponse
	if json.Unmarshal(body, &resp) != nil || len(resp.Detail) == 0 {
		return e
	}

	var detail string
	if json.Unmarshal(resp.Detail, &detail) == nil {
		e.Detail = strings.TrimSpace(detail)
		return e
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if json.Unmarshal(resp.Detail, &items) == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		e.Detail = strings.Join(msgs, "; ")
	}
	return e
}

// UserMessage returns the server-provided message carried by err, or
// fallback when err holds none.
func UserMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
