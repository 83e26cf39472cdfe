package stat

import (
	"errors"
	"fmt"
)

// ErrMalformedPayload is matched by every MalformedPayloadError.
var ErrMalformedPayload = errors.New("malformed payload")

// MalformedPayloadError reports a structurally invalid vendor record: a missing
// mandatory field or a value of the wrong shape.
type MalformedPayloadError struct {
	Sport  string
	Index  int    // position of the record in its source list
	Field  string // vendor key that was missing or invalid
	Reason string
}

func (e *MalformedPayloadError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "missing"
	}
	return fmt.Sprintf("%s record %d: field %q %s", e.Sport, e.Index, e.Field, reason)
}

func (e *MalformedPayloadError) Is(target error) bool {
	return target == ErrMalformedPayload
}

// Malformed builds a MalformedPayloadError. An empty reason means the field
// was missing.
func Malformed(sport string, index int, field, reason string) error {
	return &MalformedPayloadError{Sport: sport, Index: index, Field: field, Reason: reason}
}
