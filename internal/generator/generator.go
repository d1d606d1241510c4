// Package generator builds random passwords from a selection of character
// classes.
package generator

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MinLength = 4
	MaxLength = 999
)

var (
	ErrEmptyAlphabet  = errors.New("at least one character type must be selected")
	ErrInvalidLength  = errors.New("invalid password length")
	ErrNegativeLength = errors.New("password length must not be negative")
)

// Generate returns length characters, each drawn independently and uniformly
// from alphabet. A nil src uses a shared math source. Length bounds for user
// input are enforced by Settings, not here.
func Generate(src Source, alphabet string, length int) (string, error) {
	if alphabet == "" {
		return "", ErrEmptyAlphabet
	}
	if length < 0 {
		return "", ErrNegativeLength
	}
	if src == nil {
		src = fallbackSource()
	}

	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		sb.WriteByte(alphabet[src.IntN(len(alphabet))])
	}
	return sb.String(), nil
}

// Settings is the full input of one generation.
type Settings struct {
	Length    int
	Selection Selection
}

// Validate checks the length bounds and that at least one class is enabled.
func (s Settings) Validate() error {
	if s.Length < MinLength {
		return fmt.Errorf("%w: must be at least %d", ErrInvalidLength, MinLength)
	}
	if s.Length > MaxLength {
		return fmt.Errorf("%w: must be at most %d", ErrInvalidLength, MaxLength)
	}
	if s.Selection.Empty() {
		return ErrEmptyAlphabet
	}
	return nil
}

// Generate validates s and produces a password from its selection.
func (s Settings) Generate(src Source) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	return Generate(src, BuildAlphabet(s.Selection), s.Length)
}
