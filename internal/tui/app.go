// Package tui renders the password generator form in the terminal.
package tui

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/tview"

	"github.com/passgen/passgen-go/internal/form"
	"github.com/passgen/passgen-go/internal/generator"
)

const (
	labelLength    = "Password Length"
	placeholder    = "Password"

	// The copy highlight fades in and then out, each over highlightFade.
	highlightFade  = 300 * time.Millisecond
	highlightSteps = 6
)

var checkboxLabels = map[generator.Class]string{
	generator.Lowercase: "Include lowercase Letters",
	generator.Uppercase: "Include Uppercase Letters",
	generator.Digits:    "Include Numbers",
	generator.Symbols:   "Include Symbols",
}

// beeper rings the terminal bell in place of a vibration.
type beeper struct {
	mu     sync.Mutex
	screen tcell.Screen
	rings  int
}

func (b *beeper) Vibrate(time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rings++
	if b.screen != nil {
		_ = b.screen.Beep()
	}
}

func (b *beeper) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rings
}

func (b *beeper) setScreen(s tcell.Screen) {
	b.mu.Lock()
	b.screen = s
	b.mu.Unlock()
}

// App is the single-screen generator. All widget state is derived from the
// underlying form.Form after every action.
type App struct {
	app     *tview.Application
	form    *form.Form
	beep    *beeper
	syncing bool
	fadeGen atomic.Int64

	root    *tview.Flex
	inputs  *tview.Form
	preview *tview.TextView
	errText *tview.TextView
	status  *tview.TextView
}

// New builds the screen. opts configure the underlying form; feedback is
// always the terminal bell.
func New(opts ...form.Option) *App {
	a := &App{
		app:  tview.NewApplication(),
		beep: &beeper{},
	}
	a.form = form.New(append(opts, form.WithFeedback(a.beep))...)
	a.build()
	a.sync()
	return a
}

// Form exposes the state behind the screen.
func (a *App) Form() *form.Form { return a.form }

// Run blocks until the user quits with Esc or Ctrl-C.
func (a *App) Run() error {
	a.app.SetBeforeDrawFunc(func(screen tcell.Screen) bool {
		a.beep.setScreen(screen)
		return false
	})
	return a.app.SetRoot(a.root, true).EnableMouse(true).Run()
}

func (a *App) build() {
	title := tview.NewTextView().
		SetText("Password Generator").
		SetTextAlign(tview.AlignCenter).
		SetTextColor(tcell.ColorWhite)

	a.preview = tview.NewTextView().SetTextAlign(tview.AlignCenter)
	a.preview.SetBorder(true)

	a.errText = tview.NewTextView().SetTextColor(tcell.ColorRed)
	a.status = tview.NewTextView().SetDynamicColors(true)

	a.inputs = tview.NewForm()
	a.addItems()
	a.inputs.AddButton("Generate", a.generate)
	a.inputs.AddButton("Reset", a.reset)
	a.inputs.AddButton("Copy", a.copy)
	a.inputs.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc {
			a.app.Stop()
			return nil
		}
		return event
	})

	a.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(title, 1, 0, false).
		AddItem(a.preview, 3, 0, false).
		AddItem(a.errText, 1, 0, false).
		AddItem(a.inputs, 0, 1, true).
		AddItem(a.status, 1, 0, false)
	a.root.SetBorder(true).SetTitle(" passgen ")
}

// addItems adds the length field and the class checkboxes, initialised from
// the form. Buttons are added once by build and survive a rebuild.
func (a *App) addItems() {
	a.inputs.AddInputField(labelLength, a.form.LengthText, 10, nil, func(text string) {
		if a.syncing {
			return
		}
		a.form.SetLength(text)
		a.sync()
	})
	for _, ci := range generator.Classes() {
		class := ci.Class
		a.inputs.AddCheckbox(checkboxLabels[class], a.form.Selection.Has(class), func(checked bool) {
			if a.syncing {
				return
			}
			a.form.SetClass(class, checked)
			a.sync()
		})
	}
}

func (a *App) generate() {
	if err := a.form.Submit(); err != nil {
		a.setStatus("[red]" + tview.Escape(form.Message(err)) + "[-]")
	} else {
		a.setStatus("")
	}
	a.sync()
}

func (a *App) reset() {
	a.form.Reset()
	a.setStatus("")
	a.sync()
}

func (a *App) copy() {
	copied, err := a.form.Copy()
	switch {
	case err != nil:
		a.setStatus("[red]" + tview.Escape(err.Error()) + "[-]")
	case copied:
		a.setStatus("[green]✓ Password copied![-]")
		a.highlight()
	}
}

// highlight fades the preview background to yellow and back. A new
// highlight supersedes one still running.
func (a *App) highlight() {
	gen := a.fadeGen.Add(1)
	base := tview.Styles.PrimitiveBackgroundColor
	step := highlightFade / highlightSteps

	go func() {
		ticker := time.NewTicker(step)
		defer ticker.Stop()
		for frame := 1; frame <= 2*highlightSteps; frame++ {
			<-ticker.C
			color := fadeColor(base, tcell.ColorYellow, fadeLevel(frame, highlightSteps))
			if frame == 2*highlightSteps {
				color = base
			}
			a.app.QueueUpdateDraw(func() {
				if a.fadeGen.Load() == gen {
					a.preview.SetBackgroundColor(color)
				}
			})
		}
	}()
}

// fadeLevel is the highlight strength in [0, 1] at frame: rising over the
// first steps frames and falling over the next steps.
func fadeLevel(frame, steps int) float64 {
	if frame > steps {
		frame = 2*steps - frame
	}
	if frame < 0 {
		frame = 0
	}
	return float64(frame) / float64(steps)
}

// fadeColor blends from toward to by t.
func fadeColor(from, to tcell.Color, t float64) tcell.Color {
	r, g, b := toColorful(from).BlendRgb(toColorful(to), t).RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// toColorful treats colors without an RGB value, such as the terminal
// default, as black.
func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	if r < 0 {
		return colorful.Color{}
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func (a *App) setStatus(text string) {
	a.status.SetText(text)
}

// sync pushes form state into the widgets without re-entering change handlers.
func (a *App) sync() {
	a.syncing = true
	defer func() { a.syncing = false }()

	f := a.form
	field, ok := a.inputs.GetFormItemByLabel(labelLength).(*tview.InputField)
	if !ok || field.GetText() != f.LengthText {
		// InputField.SetText does not clear the field, so the items are
		// rebuilt from the form instead.
		a.inputs.Clear(false)
		a.addItems()
	}
	for class, label := range checkboxLabels {
		if cb, ok := a.inputs.GetFormItemByLabel(label).(*tview.Checkbox); ok && cb.IsChecked() != f.Selection.Has(class) {
			cb.SetChecked(f.Selection.Has(class))
		}
	}

	if f.PasswordVisible() {
		a.preview.SetText(f.Password).SetTextColor(tcell.ColorLightSkyBlue)
	} else {
		a.preview.SetText(placeholder).SetTextColor(tcell.ColorGray)
	}
	a.errText.SetText(f.Error())
}
