// Package form holds the state of the password generator screen: the length
// field, the class toggles, and the last generated password.
package form

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/passgen/passgen-go/internal/clipboard"
	"github.com/passgen/passgen-go/internal/generator"
)

// FeedbackDuration is how long a button press vibrates.
const FeedbackDuration = 100 * time.Millisecond

var (
	// InitialSelection is the toggle state when the screen first opens.
	InitialSelection = generator.Selection{Lowercase: true, Digits: true}

	// ResetSelection is the toggle state restored by Reset. It differs from
	// InitialSelection: digits are off.
	ResetSelection = generator.Selection{Lowercase: true}
)

// Feedback is a tactile or audible acknowledgement of a button press.
type Feedback interface {
	Vibrate(d time.Duration)
}

// NopFeedback ignores all feedback.
type NopFeedback struct{}

func (NopFeedback) Vibrate(time.Duration) {}

// Form is not safe for concurrent use; the UI event loop owns it.
type Form struct {
	LengthText string
	Touched    bool
	Selection  generator.Selection
	Password   string
	Generated  bool

	source    generator.Source
	clipboard clipboard.Clipboard
	feedback  Feedback
	logger    *slog.Logger
}

// Option configures a Form.
type Option func(*Form)

func WithSource(src generator.Source) Option {
	return func(f *Form) { f.source = src }
}

func WithClipboard(cb clipboard.Clipboard) Option {
	return func(f *Form) { f.clipboard = cb }
}

func WithFeedback(fb Feedback) Option {
	return func(f *Form) { f.feedback = fb }
}

func WithLogger(l *slog.Logger) Option {
	return func(f *Form) { f.logger = l }
}

// New returns a form in its initial-load state.
func New(opts ...Option) *Form {
	f := &Form{
		Selection: InitialSelection,
		source:    generator.NewMathSource(),
		clipboard: &clipboard.Memory{},
		feedback:  NopFeedback{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SetLength replaces the length field text and marks it touched.
func (f *Form) SetLength(text string) {
	f.LengthText = text
	f.Touched = true
}

// Toggle flips class c.
func (f *Form) Toggle(c generator.Class) {
	f.Selection = f.Selection.With(c, !f.Selection.Has(c))
}

// SetClass sets class c on or off.
func (f *Form) SetClass(c generator.Class, on bool) {
	f.Selection = f.Selection.With(c, on)
}

// Error returns the message to show under the length field, or "".
func (f *Form) Error() string {
	if !f.Touched {
		return ""
	}
	if _, err := ParseLength(f.LengthText); err != nil {
		return err.Error()
	}
	return ""
}

// Valid reports whether Submit would reach the generator.
func (f *Form) Valid() bool {
	if _, err := ParseLength(f.LengthText); err != nil {
		return false
	}
	return !f.Selection.Empty()
}

// Settings returns the current input as generator settings.
func (f *Form) Settings() (generator.Settings, error) {
	length, err := ParseLength(f.LengthText)
	if err != nil {
		return generator.Settings{}, err
	}
	return generator.Settings{Length: length, Selection: f.Selection}, nil
}

// Submit generates a password from the current input. The press is
// acknowledged even when the input is rejected. On a validation error the
// generator is not invoked and the previous password is kept.
func (f *Form) Submit() error {
	f.Touched = true
	f.feedback.Vibrate(FeedbackDuration)

	settings, err := f.Settings()
	if err != nil {
		return err
	}
	if settings.Selection.Empty() {
		return generator.ErrEmptyAlphabet
	}

	password, err := settings.Generate(f.source)
	if err != nil {
		return err
	}

	f.Password = password
	f.Generated = true
	f.logger.Debug("password generated", "length", settings.Length, "selection", fmt.Sprintf("%+v", settings.Selection))
	return nil
}

// Reset clears the password and the length field and restores ResetSelection.
func (f *Form) Reset() {
	f.LengthText = ""
	f.Touched = false
	f.Password = ""
	f.Generated = false
	f.Selection = ResetSelection
	f.feedback.Vibrate(FeedbackDuration)
}

// Copy writes the current password to the clipboard. It reports false without
// touching the clipboard when there is nothing to copy.
func (f *Form) Copy() (bool, error) {
	if f.Password == "" {
		return false, nil
	}
	if err := f.clipboard.WriteAll(f.Password); err != nil {
		return false, fmt.Errorf("copying password: %w", err)
	}
	f.feedback.Vibrate(FeedbackDuration)
	return true, nil
}

// PasswordVisible reports whether the password panel should show the
// password rather than its placeholder. Editing the length into an invalid
// value hides a previously generated password.
func (f *Form) PasswordVisible() bool {
	if !f.Generated {
		return false
	}
	_, err := ParseLength(f.LengthText)
	return err == nil
}

// Message maps a Submit or Copy error to the text shown to the user.
func Message(err error) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, generator.ErrEmptyAlphabet):
		return MsgNoClasses
	default:
		return err.Error()
	}
}
