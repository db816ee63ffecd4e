package polygon

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Status is the textual status carried by every response, e.g. OK, DELAYED,
// NOT_FOUND or SERVICE_UNAVAILABLE.
type Status string

const (
	// StatusOK is reported by successful requests
	StatusOK Status = "OK"
	// StatusDelayed is reported when the plan only has access to delayed data
	StatusDelayed Status = "DELAYED"
	// StatusBadRequest is synthesized when a request fails validation
	StatusBadRequest Status = "BAD_REQUEST"
	// StatusInternalError is synthesized for transport and decode failures
	StatusInternalError Status = "INTERNAL_SERVER_ERROR"
)

var statusReplacer = strings.NewReplacer(" ", "_", "-", "_", "'", "")

// StatusFromCode returns the status for an HTTP status code, e.g. 404 becomes NOT_FOUND.
func StatusFromCode(code int) Status {
	if code == http.StatusOK {
		return StatusOK
	}
	text := http.StatusText(code)
	if text == "" {
		return Status(strconv.Itoa(code))
	}
	return Status(statusReplacer.Replace(strings.ToUpper(text)))
}

// IsSuccess reports whether the status denotes a usable response.
func (s Status) IsSuccess() bool {
	return s == StatusOK || s == StatusDelayed
}

// String implements fmt.Stringer
func (s Status) String() string {
	return string(s)
}

// UnmarshalJSON accepts both the text form ("OK") and a numeric HTTP status (200).
func (s *Status) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*s = Status(strings.TrimSpace(text))
		return nil
	}

	var code int
	if err := json.Unmarshal(data, &code); err != nil {
		return fmt.Errorf("status must be a string or an HTTP status code, got %s", string(data))
	}
	*s = StatusFromCode(code)
	return nil
}

// orCode returns s, or the status derived from code when s is empty.
func (s Status) orCode(code int) Status {
	if s == "" {
		return StatusFromCode(code)
	}
	return s
}
