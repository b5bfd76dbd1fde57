package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error carries per-field validation messages. Handlers render Fields verbatim.
type Error struct {
	Fields map[string]string
}

// NewError returns an Error with a single field message.
func NewError(field, message string) *Error {
	return &Error{Fields: map[string]string{field: message}}
}

// Add records a message for field, keeping the first message seen.
func (e *Error) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

// Empty reports whether no field failed.
func (e *Error) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsError unwraps err into a validation Error, if it is one.
func AsError(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
