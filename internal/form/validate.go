package form

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/passgen/passgen-go/internal/generator"
)

// Messages shown under the length input.
const (
	MsgRequired   = "Enter a Number"
	MsgNotNumber  = "Only numbers accepted"
	MsgNotInteger = "Only integers expected"
	MsgTooShort   = "minimum value is 4"
	MsgTooLong    = "value greater than maximum length"
	MsgNoClasses  = "Select at least one character type"
)

// ValidationError is a user-facing length error. It matches
// generator.ErrInvalidLength under errors.Is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return generator.ErrInvalidLength }

var (
	// decimalPattern admits plain decimal numbers with an optional exponent.
	// Hex, underscores and the spelled-out specials are left out.
	decimalPattern  = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	infinityPattern = regexp.MustCompile(`^([+-]?)Infinity$`)
)

// ParseLength converts the length field text into a length in
// [generator.MinLength, generator.MaxLength].
func ParseLength(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, &ValidationError{Message: MsgRequired}
	}

	if m := infinityPattern.FindStringSubmatch(text); m != nil {
		if m[1] == "-" {
			return 0, &ValidationError{Message: MsgTooShort}
		}
		return 0, &ValidationError{Message: MsgTooLong}
	}
	if !decimalPattern.MatchString(text) {
		return 0, &ValidationError{Message: MsgNotNumber}
	}

	// Out of range exponents come back as ±Inf or 0 and fall through to the
	// bound checks below.
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, &ValidationError{Message: MsgNotNumber}
	}
	if math.IsNaN(f) {
		return 0, &ValidationError{Message: MsgNotNumber}
	}
	if f < generator.MinLength {
		return 0, &ValidationError{Message: MsgTooShort}
	}
	if f > generator.MaxLength {
		return 0, &ValidationError{Message: MsgTooLong}
	}
	if f != float64(int(f)) {
		return 0, &ValidationError{Message: MsgNotInteger}
	}
	return int(f), nil
}
