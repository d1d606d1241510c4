package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"melato.org/command"

	"github.com/passgen/passgen-go/internal/clipboard"
	"github.com/passgen/passgen-go/internal/config"
	"github.com/passgen/passgen-go/internal/crypto"
	"github.com/passgen/passgen-go/internal/form"
	"github.com/passgen/passgen-go/internal/generator"
	"github.com/passgen/passgen-go/internal/service"
	"github.com/passgen/passgen-go/internal/tui"
)

// UsageError marks a bad flag value, as opposed to a runtime failure.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return "usage: " + e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

func checkSource(name string) error {
	if name != "math" && name != "crypto" {
		return &UsageError{Err: fmt.Errorf("unknown source %q", name)}
	}
	return nil
}

// GenerateCmd prints passwords without opening the interactive form.
type GenerateCmd struct {
	Length  string `name:"length,l" usage:"password length (4-999)"`
	Lower   bool   `name:"lower" usage:"include lowercase letters"`
	Upper   bool   `name:"upper" usage:"include uppercase letters"`
	Digits  bool   `name:"digits" usage:"include digits"`
	Symbols bool   `name:"symbols" usage:"include symbols !@#$%^&*()_+"`
	Count   int    `name:"count,c" usage:"number of passwords (1-50)"`
	Copy    bool   `name:"copy" usage:"copy the last password to the clipboard"`
	Source  string `name:"source" usage:"random source: math or crypto"`

	Config    config.Config       `name:"-"`
	Out       io.Writer           `name:"-"`
	Clipboard clipboard.Clipboard `name:"-"`
}

func (t *GenerateCmd) Init() error {
	sel := form.InitialSelection
	t.Lower, t.Upper, t.Digits, t.Symbols = sel.Lowercase, sel.Uppercase, sel.Digits, sel.Symbols
	t.Count = 1
	t.Source = t.Config.RandomSource
	return nil
}

// Configured rejects flag values the form never sees. The count bounds are
// the ones the HTTP API enforces.
func (t *GenerateCmd) Configured() error {
	if t.Count < 1 || t.Count > service.MaxCount {
		return &UsageError{Err: service.ErrInvalidCount}
	}
	return checkSource(t.Source)
}

func (t *GenerateCmd) selection() generator.Selection {
	return generator.Selection{Lowercase: t.Lower, Uppercase: t.Upper, Digits: t.Digits, Symbols: t.Symbols}
}

// Run generates t.Count passwords through the same form the interactive
// screen uses and writes one per line to t.Out.
func (t *GenerateCmd) Run() error {
	f := form.New(
		form.WithSource(generator.SourceByName(t.Source)),
		form.WithClipboard(t.Clipboard),
		form.WithLogger(slog.Default()),
	)
	f.SetLength(t.Length)
	f.Selection = t.selection()

	for i := 0; i < t.Count; i++ {
		if err := f.Submit(); err != nil {
			if errors.Is(err, generator.ErrInvalidLength) || errors.Is(err, generator.ErrEmptyAlphabet) {
				return &UsageError{Err: errors.New(form.Message(err))}
			}
			return err
		}
		fmt.Fprintln(t.Out, f.Password)
	}

	if t.Copy {
		if _, err := f.Copy(); err != nil {
			return err
		}
	}
	return nil
}

// FormCmd opens the interactive form.
type FormCmd struct {
	Source string `name:"source" usage:"random source: math or crypto"`

	Config config.Config `name:"-"`
}

func (t *FormCmd) Init() error {
	t.Source = t.Config.RandomSource
	return nil
}

func (t *FormCmd) Configured() error {
	return checkSource(t.Source)
}

func (t *FormCmd) Run() error {
	start := time.Now()
	app := tui.New(
		form.WithSource(generator.SourceByName(t.Source)),
		form.WithClipboard(clipboard.Detect()),
		form.WithLogger(slog.Default()),
	)
	if err := app.Run(); err != nil {
		return err
	}
	slog.Info("interactive session ended", "duration", time.Since(start))
	return nil
}

// TokenCmd prints a signed API token for the named client.
type TokenCmd struct {
	Subject string `name:"subject" usage:"client name embedded in the token"`
	TTL     string `name:"ttl" usage:"token lifetime, e.g. 24h"`

	Config config.Config `name:"-"`
	Out    io.Writer     `name:"-"`

	ttl time.Duration
}

func (t *TokenCmd) Init() error {
	t.TTL = t.Config.TokenTTL.String()
	return nil
}

func (t *TokenCmd) Configured() error {
	d, err := time.ParseDuration(t.TTL)
	if err != nil || d <= 0 {
		return &UsageError{Err: fmt.Errorf("invalid ttl %q", t.TTL)}
	}
	t.ttl = d
	return nil
}

func (t *TokenCmd) Run() error {
	if t.Config.TokenSecret == "" {
		return errors.New("API_TOKEN_SECRET is not set")
	}
	token, err := crypto.GenerateToken(t.Subject, t.Config.TokenSecret, t.ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(t.Out, token)
	return nil
}

// RootCommand wires the subcommands. cfg supplies flag defaults.
func RootCommand(cfg config.Config, out io.Writer) *command.SimpleCommand {
	var cmd command.SimpleCommand

	gen := &GenerateCmd{Config: cfg, Out: out, Clipboard: clipboard.Detect()}
	cmd.Command("gen").Flags(gen).RunMethodE(gen.Run).
		Short("print passwords").
		Example("gen -l 16 -symbols -c 3")

	ui := &FormCmd{Config: cfg}
	cmd.Command("ui").Flags(ui).RunMethodE(ui.Run).
		Short("open the interactive form")

	token := &TokenCmd{Config: cfg, Out: out}
	cmd.Command("token").Flags(token).RunMethodE(token.Run).
		Short("print a signed API token").
		Example("token -subject ci-runner -ttl 1h")

	return &cmd
}
