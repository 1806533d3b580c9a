package keymap

// Tables holds the three overlapping note-number to key mappings. Compact is
// the primary 61-key layout; the low and high extensions cover the extra
// notes of an 88-key instrument.
type Tables struct {
	Compact       map[uint8]Token
	LowExtension  map[uint8]Token
	HighExtension map[uint8]Token
}

// Resolve looks a note up across the three tables in fixed priority order:
// compact first, then the low extension, then the high extension. A note
// present in none of them resolves to nothing; that is not an error.
func (tb Tables) Resolve(note uint8) (Token, bool) {
	if tok, ok := tb.Compact[note]; ok {
		return tok, true
	}
	if tok, ok := tb.LowExtension[note]; ok {
		return tok, true
	}
	if tok, ok := tb.HighExtension[note]; ok {
		return tok, true
	}
	return "", false
}

// CompactBase returns the compact-map entry for a note. Symbol keys are
// typed as shift plus the compact entry of the note one semitone below, so
// the translator needs this lookup independent of the extensions.
func (tb Tables) CompactBase(note uint8) (Token, bool) {
	tok, ok := tb.Compact[note]
	return tok, ok
}
