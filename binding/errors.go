package binding

import "fmt"

// Reason identifies the kind of binding failure.
type Reason string

const (
	ReasonTooManyPositional Reason = "too many positional arguments"
	ReasonUnexpectedKeyword Reason = "unexpected keyword argument"
	ReasonDuplicateBinding  Reason = "duplicate binding for parameter"
	ReasonMissingRequired   Reason = "missing required argument"
)

// Error reports a call-site argument mismatch. It is raised on the caller's
// side before any network activity and is never retried: a binding failure
// is a programming error, not a transport fault.
type Error struct {
	Method string
	Reason Reason
	Param  string // the offending parameter, when the reason names one
}

func (e *Error) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("binding error: %s: %s: %s", e.Method, e.Reason, e.Param)
	}
	return fmt.Sprintf("binding error: %s: %s", e.Method, e.Reason)
}
