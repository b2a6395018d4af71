package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/cloudsync/internal/common"
)

// genericErrorMessage is shown when the server gives no usable message.
const genericErrorMessage = "Something went wrong"

// Error is an error status returned by the backend, carrying the
// human-readable message extracted from the response body.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Unwrap maps well-known statuses onto the shared sentinels so callers can
// use errors.Is without importing this package's type.
func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return common.ErrUnauthorized
	case http.StatusNotFound:
		return common.ErrNotFound
	default:
		return nil
	}
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Message string `json:"message"`
}

// extractMessage pulls the message out of an error response body, falling
// back to a generic message when the body is empty or not the expected shape.
func extractMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil || len(data) == 0 {
		return genericErrorMessage
	}
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil || body.Message == "" {
		return genericErrorMessage
	}
	return body.Message
}
