package display

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Tests run without a TTY, where lipgloss detects no color support and
// strips styling, making active and idle keys render identically. Pin a
// profile so View output is deterministic.
func init() {
	lipgloss.SetColorProfile(termenv.ANSI256)
}

func TestDownUpCurrentNotes(t *testing.T) {
	p := NewPiano()
	p.Down(60, 100)
	p.Down(64, 90)
	p.Down(55, 80)
	p.Up(64)

	got := p.CurrentNotes()
	if len(got) != 2 || got[0] != 55 || got[1] != 60 {
		t.Fatalf("CurrentNotes = %v, want [55 60]", got)
	}

	// Clearing a silent note changes nothing.
	p.Up(64)
	if len(p.CurrentNotes()) != 2 {
		t.Fatal("double Up must be a no-op")
	}
}

func TestViewCoversRegister(t *testing.T) {
	p := NewPiano()
	if p.View() == "" {
		t.Fatal("empty render")
	}
	before := p.View()
	p.Down(60, 100)
	if p.View() == before {
		t.Fatal("sounding note should change the render")
	}
}
