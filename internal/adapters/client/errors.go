package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/parcast/internal/adapters/artifacts"
	service "github.com/okian/parcast/internal/app"
	"github.com/okian/parcast/internal/domain/forecast"
)

// ErrUnreachable is returned when the server cannot be contacted.
var ErrUnreachable = errors.New("forecast server unreachable")

// APIError is a non-200 response from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d %s", e.Status, e.Code)
	}
	return fmt.Sprintf("server returned %d %s: %s", e.Status, e.Code, e.Message)
}

// Is maps the server error code back to the local sentinel errors.
func (e *APIError) Is(target error) bool {
	switch e.Code {
	case "bad_request":
		return target == service.ErrInvalidInput
	case "artifact_load":
		return target == artifacts.ErrArtifactLoad
	case "unavailable":
		return target == service.ErrNotStarted
	case "prediction_failed":
		return target == forecast.ErrPrediction
	}
	return false
}

func decodeError(status int, body []byte) error {
	e := &APIError{Status: status}
	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		e.Code = payload.Code
		e.Message = payload.Message
	}
	if e.Code == "" {
		e.Code = http.StatusText(status)
	}
	return e
}
