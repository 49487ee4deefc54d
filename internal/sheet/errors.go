package sheet

import (
	"errors"
	"fmt"
)

// ErrDecode matches every DecodeError via errors.Is.
var ErrDecode = errors.New("invalid workbook")

// ErrNoSheets indicates a workbook that decoded but declares no sheets.
var ErrNoSheets = errors.New("workbook has no sheets")

// DecodeError reports bytes that could not be read as a supported workbook.
type DecodeError struct {
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode workbook (%s): invalid workbook: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrDecode) match any DecodeError.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

func newDecodeError(format Format, err error) *DecodeError {
	return &DecodeError{Format: format, Err: err}
}
