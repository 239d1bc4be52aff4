package testutil

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ModelHarness wraps a tea.Model for testing, providing helpers to simulate
// user interactions and inspect state.
type ModelHarness struct {
	model tea.Model
	cmds  []tea.Cmd
}

// NewModelHarness creates a test harness for m. Init commands are collected
// but not executed.
func NewModelHarness(m tea.Model) *ModelHarness {
	h := &ModelHarness{model: m}
	if cmd := m.Init(); cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return h
}

// Model returns the current model for type assertion.
func (h *ModelHarness) Model() tea.Model {
	return h.model
}

// View returns the model's rendered content.
func (h *ModelHarness) View() string {
	return h.model.View()
}

// SendMsg sends any message to the model and returns the resulting command.
func (h *ModelHarness) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.model, cmd = h.model.Update(msg)
	if cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return cmd
}

// SendKey simulates typing key as runes.
func (h *ModelHarness) SendKey(key string) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

// SendSpecialKey sends a special key (enter, escape, arrows, etc.).
func (h *ModelHarness) SendSpecialKey(keyType tea.KeyType) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: keyType})
}

// SendSize sends a window size message.
func (h *ModelHarness) SendSize(width, height int) tea.Cmd {
	return h.SendMsg(tea.WindowSizeMsg{Width: width, Height: height})
}

// Click sends a left mouse press at the given cell.
func (h *ModelHarness) Click(x, y int) tea.Cmd {
	return h.SendMsg(tea.MouseMsg{
		X:      x,
		Y:      y,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
}

// Commands returns all commands collected since creation or last ClearCommands.
func (h *ModelHarness) Commands() []tea.Cmd {
	return h.cmds
}

// LastCommand returns the most recent command, or nil if none.
func (h *ModelHarness) LastCommand() tea.Cmd {
	if len(h.cmds) == 0 {
		return nil
	}
	return h.cmds[len(h.cmds)-1]
}

// ClearCommands clears the collected commands.
func (h *ModelHarness) ClearCommands() {
	h.cmds = nil
}

// ExecuteCmd runs a command and returns the resulting message.
func ExecuteCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// ViewContains checks if the model's view contains the given substring.
func (h *ModelHarness) ViewContains(substr string) bool {
	return ContainsLine(StripANSI(h.View()), substr)
}
