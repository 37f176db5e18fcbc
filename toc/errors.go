package toc

import (
	"fmt"
	"regexp"
	"strconv"
)

// ParseError reports malformed YAML input. Line is 0 when the underlying
// parser did not provide a location.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("toc parse error at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("toc parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaError reports well-formed input which does not describe a valid TOC:
// unknown format, missing required fields, conflicting entry kinds. Field
// identifies the offending location as a path like `parts[0].chapters[2].file`.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if len(e.Field) > 0 {
		return fmt.Sprintf("toc schema error at %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("toc schema error: %s", e.Reason)
}

// UnresolvedReferenceError is produced by Result.Err for callers which treat
// broken content references as fatal. It carries the complete set of
// failures from a single validation pass.
type UnresolvedReferenceError struct {
	Refs []BrokenRef
	err  error
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("%d unresolved content reference(s): %v", len(e.Refs), e.err)
}

func (e *UnresolvedReferenceError) Unwrap() error {
	return e.err
}

// yaml.v3 reports syntax errors as strings like "yaml: line 7: ..." without
// exposing position, so the line has to be fished out of the message.
var yamlLineRe = regexp.MustCompile(`yaml: line (\d+):`)

func yamlErrorLine(err error) int {
	m := yamlLineRe.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}
