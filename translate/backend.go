package translate

import "mid2vk/keymap"

// Backend is the injected key-injection capability. Implementations may
// shell out or block on I/O; calls are serialized by the translator.
// Releasing a key that is not down must be a harmless no-op.
type Backend interface {
	Press(keymap.Token) error
	Release(keymap.Token) error
}

// Display is the piano surface notified of note activity. It never feeds
// back into translation; CurrentNotes exists so shutdown can visually
// clear stuck notes.
type Display interface {
	Down(note, velocity uint8)
	Up(note uint8)
	CurrentNotes() []uint8
}

// noopDisplay is the fallback when no display is wired.
type noopDisplay struct{}

func (noopDisplay) Down(note, velocity uint8) {}
func (noopDisplay) Up(note uint8)             {}
func (noopDisplay) CurrentNotes() []uint8     { return nil }
