package service

import "fmt"

// DeclarationError reports a malformed service or method declaration,
// detected once at descriptor construction time. It is always fatal to
// setup and is never retried.
type DeclarationError struct {
	Service string
	Method  string
	Reason  string
}

func (e *DeclarationError) Error() string {
	switch {
	case e.Service != "" && e.Method != "":
		return fmt.Sprintf("service declaration error: %s.%s: %s", e.Service, e.Method, e.Reason)
	case e.Service != "":
		return fmt.Sprintf("service declaration error: %s: %s", e.Service, e.Reason)
	default:
		return fmt.Sprintf("service declaration error: %s", e.Reason)
	}
}
