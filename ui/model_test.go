package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestModelQuitsOnKeyAndCallsOnQuit(t *testing.T) {
	called := false
	m := New("smoke", func() { called = true })

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	nm := next.(Model)
	if !nm.quitting {
		t.Fatalf("expected quitting=true after Esc")
	}
	if !called {
		t.Fatalf("expected onQuit to be called")
	}
	if cmd == nil {
		t.Fatalf("expected a tea.Quit command")
	}
}

func TestModelQuitsWhenTickReachesDuration(t *testing.T) {
	m := New("smoke", nil)
	next, cmd := m.Update(TickMsg{Now: 100, Duration: 100})
	nm := next.(Model)
	if !nm.quitting {
		t.Fatalf("expected quitting=true once now==duration")
	}
	if cmd == nil {
		t.Fatalf("expected a tea.Quit command")
	}
}

func TestModelViewShowsProgress(t *testing.T) {
	m := New("smoke-test", nil)
	next, _ := m.Update(TickMsg{Now: 5, Duration: 10})
	view := next.(Model).View()
	if !strings.Contains(view, "smoke-test") {
		t.Fatalf("expected view to contain scenario name, got %q", view)
	}
	if !strings.Contains(view, "t=5/10") {
		t.Fatalf("expected view to contain the tick progress, got %q", view)
	}
}

func TestModelViewAfterQuitMsgShowsError(t *testing.T) {
	m := New("smoke", nil)
	next, _ := m.Update(QuitMsg{Err: errBoom})
	view := next.(Model).View()
	if !strings.Contains(view, "boom") {
		t.Fatalf("expected the quit error in the view, got %q", view)
	}
}

var errBoom = boomErr{}

type boomErr struct{}

func (boomErr) Error() string { return "boom" }
