package translate

// EventKind discriminates the message types the translator consumes.
type EventKind int

const (
	NoteOn EventKind = iota
	NoteOff
	ControlChange
)

// SustainController is the MIDI controller number of the sustain pedal.
const SustainController uint8 = 64

// Event is one incoming MIDI message, constructed per message and consumed
// once. Note/Velocity are set for note events, Controller/Value for
// control changes.
type Event struct {
	Kind       EventKind
	Note       uint8
	Velocity   uint8
	Controller uint8
	Value      uint8
}

func (k EventKind) String() string {
	switch k {
	case NoteOn:
		return "note_on"
	case NoteOff:
		return "note_off"
	case ControlChange:
		return "control_change"
	}
	return "unknown"
}
