package domain

import "fmt"

// MissingInputError reports that a required prior-step artifact was not
// present in the session when the fill action ran. The fill aborts and
// no partial output is produced.
type MissingInputError struct {
	Artifact string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing required input: %s", e.Artifact)
}

// MalformedValueError reports a cell value that could not be coerced to
// the type the aggregation step requires. Fatal to the fill operation.
type MalformedValueError struct {
	Field string
	Value string
	Row   int
}

func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("malformed %s value %q at record %d", e.Field, e.Value, e.Row)
}

// DocumentReadError reports that uploaded bytes were not a valid
// workbook, or that a referenced sheet is absent. It is scoped to one
// document; other already-loaded documents stay usable.
type DocumentReadError struct {
	Doc string
	Err error
}

func (e *DocumentReadError) Error() string {
	return fmt.Sprintf("reading %s document: %v", e.Doc, e.Err)
}

func (e *DocumentReadError) Unwrap() error { return e.Err }
