package testutil

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type counter struct {
	n    int
	keys []string
	last tea.Msg
}

func (c counter) Init() tea.Cmd {
	return func() tea.Msg { return "init" }
}

func (c counter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	c.n++
	c.last = msg
	if k, ok := msg.(tea.KeyMsg); ok {
		c.keys = append(c.keys, k.String())
		return c, func() tea.Msg { return k.String() }
	}
	return c, nil
}

func (c counter) View() string {
	return "count\x1b[1m!\x1b[0m"
}

func TestModelHarness_CollectsInit(t *testing.T) {
	h := NewModelHarness(counter{})
	if len(h.Commands()) != 1 {
		t.Fatalf("Commands() len = %d, want 1", len(h.Commands()))
	}
	if got := ExecuteCmd(h.LastCommand()); got != "init" {
		t.Errorf("init cmd returned %v", got)
	}
}

func TestModelHarness_SendKeys(t *testing.T) {
	h := NewModelHarness(counter{})
	h.ClearCommands()

	h.SendKey("a")
	h.SendSpecialKey(tea.KeyEnter)

	c := h.Model().(counter)
	if c.n != 2 {
		t.Errorf("updates = %d, want 2", c.n)
	}
	if len(c.keys) != 2 || c.keys[0] != "a" || c.keys[1] != "enter" {
		t.Errorf("keys = %v, want [a enter]", c.keys)
	}
	if got := ExecuteCmd(h.LastCommand()); got != "enter" {
		t.Errorf("last cmd returned %v, want enter", got)
	}
}

func TestModelHarness_ClickAndSize(t *testing.T) {
	h := NewModelHarness(counter{})

	h.SendSize(80, 24)
	if _, ok := h.Model().(counter).last.(tea.WindowSizeMsg); !ok {
		t.Error("expected WindowSizeMsg")
	}

	h.Click(3, 1)
	m, ok := h.Model().(counter).last.(tea.MouseMsg)
	if !ok {
		t.Fatal("expected MouseMsg")
	}
	if m.X != 3 || m.Y != 1 || m.Button != tea.MouseButtonLeft {
		t.Errorf("mouse = %+v", m)
	}
}

func TestModelHarness_ViewContains(t *testing.T) {
	h := NewModelHarness(counter{})
	if !h.ViewContains("count!") {
		t.Error("ViewContains should strip ANSI codes")
	}
}

func TestExecuteCmd_Nil(t *testing.T) {
	if ExecuteCmd(nil) != nil {
		t.Error("ExecuteCmd(nil) should return nil")
	}
}
