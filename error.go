package facet

import (
	"fmt"
	"reflect"
)

// TypeError is the error returned when a type cannot be used with the
// facet engine.
type TypeError struct {
	// Type is the name of the type that caused the error.
	Type string
	// Reason is an explanation of why the type can't be used.
	Reason error
}

func (e TypeError) Error() string {
	return fmt.Sprintf("facet cannot use %s: %s", e.Type, e.Reason)
}

func (e TypeError) Unwrap() error {
	return e.Reason
}

func typeErr(t reflect.Type, reason string, args ...any) error {
	ts := ""
	if t != nil {
		ts = t.String()
	}
	return TypeError{ts, fmt.Errorf(reason, args...)}
}
