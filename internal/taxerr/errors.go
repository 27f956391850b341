// Package taxerr defines the structured error kinds reported by the tax
// engine. Every error carries a kind, an optional parameter name, an optional
// year, and a message.
package taxerr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidParameterFile = errors.New("invalid parameter file")
	ErrInvalidReform        = errors.New("invalid reform")
	ErrInvalidRecords       = errors.New("invalid records")
	ErrOutOfRangeYear       = errors.New("year out of range")
	ErrNumericOverflow      = errors.New("numeric overflow")
)

// Error is a tax engine failure. Param is empty and Year is zero when they do
// not apply.
type Error struct {
	Kind  error
	Param string
	Year  int
	Msg   string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Param != "" {
		fmt.Fprintf(&b, " [%s]", e.Param)
	}
	if e.Year != 0 {
		fmt.Fprintf(&b, " [%d]", e.Year)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Kind }

// New builds an Error of the given kind.
func New(kind error, param string, year int, format string, args ...any) *Error {
	return &Error{Kind: kind, Param: param, Year: year, Msg: fmt.Sprintf(format, args...)}
}

// Reform builds an ErrInvalidReform error.
func Reform(param string, year int, format string, args ...any) *Error {
	return New(ErrInvalidReform, param, year, format, args...)
}

// Records builds an ErrInvalidRecords error.
func Records(param string, format string, args ...any) *Error {
	return New(ErrInvalidRecords, param, 0, format, args...)
}

// ParameterFile builds an ErrInvalidParameterFile error.
func ParameterFile(param string, format string, args ...any) *Error {
	return New(ErrInvalidParameterFile, param, 0, format, args...)
}

// Year builds an ErrOutOfRangeYear error.
func Year(year int, format string, args ...any) *Error {
	return New(ErrOutOfRangeYear, "", year, format, args...)
}

// Overflow builds an ErrNumericOverflow error.
func Overflow(param string, year int, format string, args ...any) *Error {
	return New(ErrNumericOverflow, param, year, format, args...)
}

// As returns the first *Error in err's chain, or nil.
func As(err error) *Error {
	var te *Error
	if errors.As(err, &te) {
		return te
	}
	return nil
}
