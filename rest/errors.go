package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// DetailKind identifies which of the known backend error-detail shapes was
// found in a failed response body.
type DetailKind int

const (
	DetailNone    DetailKind = iota // no detail field, or an unusable shape
	DetailString                    // {"detail": "..."}
	DetailMessage                   // {"detail": {"message": "...", ...}}
	DetailError                     // {"detail": {"error": "...", ...}}
	DetailObject                    // {"detail": {...}} with neither message nor error
)

// ErrorDetail is the backend's `detail` field as received, tagged with the
// shape it was recognised as.
type ErrorDetail struct {
	Kind DetailKind
	Raw  json.RawMessage
}

// APIError is the single error form surfaced for any non-success response.
// Callers never see raw transport errors in a different shape.
type APIError struct {
	StatusCode int
	Message    string
	Detail     ErrorDetail
}

func (e *APIError) Error() string {
	return e.Message
}

// newAPIError normalizes a non-success response body into an APIError.
// Message precedence: string detail, detail.message, detail.error,
// stringified detail object, then the status fallback.
func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("HTTP error! status: %d", statusCode),
	}

	if !gjson.ValidBytes(body) {
		return apiErr
	}

	detail := gjson.GetBytes(body, "detail")
	switch {
	case detail.Type == gjson.String:
		apiErr.Message = detail.String()
		apiErr.Detail = ErrorDetail{Kind: DetailString, Raw: json.RawMessage(detail.Raw)}
	case detail.IsObject() || detail.IsArray():
		apiErr.Detail = ErrorDetail{Kind: DetailObject, Raw: json.RawMessage(detail.Raw)}
		if message := detail.Get("message"); message.Type == gjson.String {
			apiErr.Message = message.String()
			apiErr.Detail.Kind = DetailMessage
		} else if errField := detail.Get("error"); errField.Type == gjson.String {
			apiErr.Message = errField.String()
			apiErr.Detail.Kind = DetailError
		} else {
			apiErr.Message = detail.Raw
		}
	}

	return apiErr
}

// Message returns the displayable text for err: the normalized APIError
// message when one is in the chain, the plain error text otherwise. Wrapping
// context added by callers never leaks into user-facing output.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// StatusCode returns the HTTP status behind err, or 0 when err did not come
// from a backend response.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsUnauthorized reports whether err is the backend rejecting the credential.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}
