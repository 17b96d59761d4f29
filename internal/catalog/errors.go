package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTypeNotFound is returned by LookupType when no descriptor matches.
	ErrTypeNotFound = errors.New("type not found")

	// ErrDuplicateType is returned when two descriptors share a
	// (packageName, name) pair.
	ErrDuplicateType = errors.New("duplicate type")
)

// Issue is a single problem found in a catalog document.
type Issue struct {
	Path    string // Instance location (e.g., "/types/3/type")
	Message string // Human-readable error message
	Keyword string // Schema keyword that failed ("required", "enum", "unique", ...)
}

func (i Issue) String() string {
	path := i.Path
	if path == "" {
		path = "/"
	}
	return path + ": " + i.Message
}

// ParseError reports a catalog document that could not be loaded. Either Err
// is set (the bytes could not be decoded at all) or Issues lists the schema
// and uniqueness violations.
type ParseError struct {
	Source string
	Issues []Issue
	Err    error
}

func (e *ParseError) Error() string {
	src := e.Source
	if src == "" {
		src = "catalog"
	}
	if e.Err != nil {
		return fmt.Sprintf("parsing %s: %v", src, e.Err)
	}
	switch len(e.Issues) {
	case 0:
		return fmt.Sprintf("parsing %s: invalid catalog", src)
	case 1:
		return fmt.Sprintf("parsing %s: invalid catalog: %s", src, e.Issues[0])
	}
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.String()
	}
	return fmt.Sprintf("parsing %s: invalid catalog (%d issues): %s", src, len(e.Issues), strings.Join(msgs, "; "))
}

func (e *ParseError) Unwrap() error { return e.Err }
