package client

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidEditKey is returned when the server rejects a mutation
// because the supplied edit key is wrong or missing. The client holds no
// copy of the real key, so this is the only way the key is ever
// verified; callers must surface it as "invalid edit key", not as a
// generic failure.
var ErrInvalidEditKey = errors.New("invalid edit key")

// NotFoundError reports an unknown record identifier.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("record not found: %s", e.ID)
}

// ValidationError reports fields the server (or the client, before any
// network call) rejected as empty or invalid.
type ValidationError struct {
	Fields map[string]string
}

func (e ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// TransformError reports a failed AI transformation request. The draft
// is never touched by a failed transformation; callers surface the error
// and carry on.
type TransformError struct {
	Op  string
	Err error
}

func (e TransformError) Error() string {
	return fmt.Sprintf("%s transformation failed: %v", e.Op, e.Err)
}

func (e TransformError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// IsInvalidEditKey reports whether err means the edit key was rejected.
func IsInvalidEditKey(err error) bool {
	return errors.Is(err, ErrInvalidEditKey)
}
