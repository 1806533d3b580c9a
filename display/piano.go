package display

import (
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	whiteKey  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	blackKey  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	activeKey = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

// Piano is a display surface tracking which notes are sounding, rendered
// as a terminal keyboard strip. It only observes: nothing here feeds back
// into translation.
type Piano struct {
	mu        sync.Mutex
	low, high uint8
	notes     map[uint8]uint8 // note -> velocity
}

// NewPiano covers the natural register of a 61-key layout.
func NewPiano() *Piano {
	return &Piano{low: 36, high: 96, notes: make(map[uint8]uint8)}
}

// Down marks a note as sounding.
func (p *Piano) Down(note, velocity uint8) {
	p.mu.Lock()
	p.notes[note] = velocity
	p.mu.Unlock()
}

// Up clears a note. Clearing a silent note is a no-op.
func (p *Piano) Up(note uint8) {
	p.mu.Lock()
	delete(p.notes, note)
	p.mu.Unlock()
}

// CurrentNotes returns the sounding notes in ascending order.
func (p *Piano) CurrentNotes() []uint8 {
	p.mu.Lock()
	out := make([]uint8, 0, len(p.notes))
	for n := range p.notes {
		out = append(out, n)
	}
	p.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// View renders the strip: one cell per semitone, accidentals drawn high,
// naturals low, sounding notes highlighted.
func (p *Piano) View() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var b strings.Builder
	for n := p.low; n <= p.high; n++ {
		_, active := p.notes[n]
		cell := "▁"
		style := whiteKey
		if isAccidental(n) {
			cell = "▔"
			style = blackKey
		}
		if active {
			style = activeKey
		}
		b.WriteString(style.Render(cell))
	}
	return b.String()
}

func isAccidental(note uint8) bool {
	switch note % 12 {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}
