package taskgraph

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidGraph      = errors.New("invalid task graph")
	ErrUnknownDependency = errors.New("unknown dependency")
	ErrCycle             = errors.New("dependency cycle detected")
)

// GraphError wraps a structural validation failure with its error kind so
// callers can match on the category while still getting a specific message.
type GraphError struct {
	Kind error
	Msg  string
}

func (e *GraphError) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *GraphError) Unwrap() error { return e.Kind }
