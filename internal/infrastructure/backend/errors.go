package backend

import (
	"encoding/json"
	"net/http"
	"strings"

	"storeops/internal/core/apperror"
)

// errorBody is the structured rejection body of the backend. "message" is a
// string or a list of validation messages; "error" is a message string or an
// object with a message.
type errorBody struct {
	Message json.RawMessage `json:"message"`
	Error   json.RawMessage `json:"error"`
	Code    string          `json:"code"`
	Details map[string]any  `json:"details"`
}

// backendMessage extracts the backend's own message, or "" when the body is not structured.
func backendMessage(body []byte) (string, errorBody) {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return "", eb
	}
	if msg := messageText(eb.Message); msg != "" {
		return msg, eb
	}
	if msg := messageText(eb.Error); msg != "" {
		return msg, eb
	}
	var nested struct {
		Message json.RawMessage `json:"message"`
	}
	if len(eb.Error) > 0 && json.Unmarshal(eb.Error, &nested) == nil {
		return messageText(nested.Message), eb
	}
	return "", eb
}

// messageText reads a message string or joins a list of them.
func messageText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return strings.TrimSpace(s)
	}
	var list []string
	if json.Unmarshal(raw, &list) == nil {
		parts := list[:0]
		for _, m := range list {
			if m = strings.TrimSpace(m); m != "" {
				parts = append(parts, m)
			}
		}
		return strings.Join(parts, "; ")
	}
	return ""
}

// mapStatus converts a non-2xx backend response into an AppError.
func mapStatus(status int, body []byte) *apperror.AppError {
	msg, eb := backendMessage(body)

	var appErr *apperror.AppError
	switch {
	case status == http.StatusNotFound:
		appErr = apperror.NewNotFound("resource", nil)
		if msg != "" {
			appErr.Message = msg
		}
	case status == http.StatusUnauthorized:
		appErr = apperror.NewUnauthorized("Session is not accepted by the inventory service")
		if msg != "" {
			appErr.Message = msg
		}
	case status >= 500 && msg == "":
		appErr = apperror.NewBackendUnavailable(nil).WithDetail("backendStatus", status)
	default:
		appErr = apperror.NewRemoteRejected(status, msg)
	}

	if eb.Code != "" {
		appErr = appErr.WithDetail("backendCode", eb.Code)
	}
	for k, v := range eb.Details {
		appErr = appErr.WithDetail(k, v)
	}
	return appErr
}
