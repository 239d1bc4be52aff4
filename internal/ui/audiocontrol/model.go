// Package audiocontrol provides the terminal player control: a play/pause
// toggle, an elapsed/total label and a seek bar driven by a playback
// Controller.
package audiocontrol

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/llehouerou/wavenote/internal/keymap"
	"github.com/llehouerou/wavenote/internal/playback"
	"github.com/llehouerou/wavenote/internal/player"
	"github.com/llehouerou/wavenote/internal/ui"
)

// DefaultSeekStep is how far the arrow keys move the position.
const DefaultSeekStep = 5 * time.Second

// Options configures a Model.
type Options struct {
	SeekStep time.Duration
	Focused  bool
	// Keys overrides the default key bindings.
	Keys []keymap.Binding
	// Describe captions sources opened from the prompt or a remote.
	// Defaults to the source name.
	Describe func(player.Source) string
	// Heard reports whether a source was listened to before. Sources
	// that were not are badged as new until they play.
	Heard func(player.Source) bool
}

// Model is a bubbletea component wrapping one playback Controller.
type Model struct {
	ui.Base
	ctrl     *playback.Controller
	keys     *keymap.Resolver
	seekStep time.Duration
	describe func(player.Source) string
	heard    func(player.Source) bool
	unheard  bool

	input     textinput.Model
	inputOpen bool
	showHelp  bool
}

// New creates a control for ctrl. The controller should already be mounted.
func New(ctrl *playback.Controller, opts Options) Model {
	step := opts.SeekStep
	if step <= 0 {
		step = DefaultSeekStep
	}
	describe := opts.Describe
	if describe == nil {
		describe = player.Source.Name
	}
	bindings := opts.Keys
	if len(bindings) == 0 {
		bindings = keymap.Bindings
	}

	ti := textinput.New()
	ti.Placeholder = "path or URL..."
	ti.CharLimit = 2048
	ti.Prompt = "open: "

	m := Model{
		ctrl:     ctrl,
		keys:     keymap.NewResolver(bindings),
		seekStep: step,
		describe: describe,
		heard:    opts.Heard,
		input:    ti,
	}
	m.unheard = m.isUnheard(ctrl.State().Source)
	m.SetSize(ui.DefaultWidth, 0)
	m.SetFocused(opts.Focused)
	return m
}

// Controller returns the wrapped controller.
func (m Model) Controller() *playback.Controller {
	return m.ctrl
}

// InputOpen reports whether the source prompt is shown.
func (m Model) InputOpen() bool {
	return m.inputOpen
}

// Unheard reports whether the current source carries the new badge.
func (m Model) Unheard() bool {
	return m.unheard
}

// open switches the controller to raw and recaptions it.
func (m *Model) open(raw string) {
	src := player.NewSource(raw, "")
	m.ctrl.SetSource(src)
	m.ctrl.SetCaption(m.describe(src))
	m.unheard = m.isUnheard(src)
}

func (m Model) isUnheard(src player.Source) bool {
	return m.heard != nil && !src.IsEmpty() && !m.heard(src)
}
