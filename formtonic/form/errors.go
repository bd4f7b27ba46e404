package form

import (
	"errors"
	"fmt"
)

// Usage errors.  These signal bugs in the calling code (asking for a value
// before form data was applied, applying data twice) and are not meant to
// be shown to users.
var (
	ErrValueNotSet        = errors.New("value was never set; apply the form data first")
	ErrClickedNotSet      = errors.New("clicked state was never determined; apply the form data first")
	ErrDataAlreadyApplied = errors.New("form data was already applied")
)

// CoercionError is returned when a raw value can not be converted to the
// type a field stores.  Browsers do not send such values for typed inputs,
// so this usually means a malformed or hand-crafted submission.
type CoercionError struct {
	// Key of the field the value was meant for.
	Key string
	// Input is the offending value, HTML escaped.  Empty when the value had
	// the wrong Go type rather than an unparsable string.
	Input string
	// GoType is the Go type of a value that could not be accepted at all.
	GoType string
	// Target names the type the field stores (float, int, date).
	Target string
}

func (e *CoercionError) Error() string {
	if e.GoType != "" {
		return fmt.Sprintf("field %q: can not set a %s field from a %s", e.Key, e.Target, e.GoType)
	}
	return fmt.Sprintf("field %q: can not parse %q as a %s", e.Key, e.Input, e.Target)
}

// ConfigError is returned while setting up fields and forms: unknown field
// or model types, a missing descriptor, a default on a checkbox.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("form configuration: %s", e.Reason)
	}
	return fmt.Sprintf("form configuration (%s): %s", e.Key, e.Reason)
}
