package xlwrap

import (
	"errors"
	"fmt"
)

// ErrInvalidReference indicates a malformed cell, range or column reference.
var ErrInvalidReference = errors.New("invalid reference")

// ErrOutOfRange indicates a non-positive offset or index.
var ErrOutOfRange = errors.New("offset out of range")

// ErrInvalidOperation indicates an operation applied to a range of the wrong kind or shape.
var ErrInvalidOperation = errors.New("invalid operation")

// ErrUnsupportedValueType indicates a value with no defined cell coercion.
var ErrUnsupportedValueType = errors.New("unsupported value type")

// ErrUnsupportedColorIndex indicates a ColorIndex with no known fill colour.
var ErrUnsupportedColorIndex = errors.New("unsupported color index")

// ErrSheetNotFound indicates a worksheet name or index that does not exist.
var ErrSheetNotFound = errors.New("worksheet not found")

// RangeError records a failed operation on a Range.
type RangeError struct {
	Op    string // "End", "Value", "Sort", ...
	Range string
	Err   error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Range, e.Err)
}

func (e *RangeError) Unwrap() error {
	return e.Err
}

// rangeErr builds a RangeError whose cause wraps sentinel with a detail message.
func rangeErr(op string, r Range, sentinel error, detail string) *RangeError {
	return &RangeError{
		Op:    op,
		Range: r.String(),
		Err:   fmt.Errorf("%w: %s", sentinel, detail),
	}
}
