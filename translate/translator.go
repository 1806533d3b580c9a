package translate

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"mid2vk/keymap"
)

// The natural register is handled without octave transposition; notes whose
// offset from its lower bound falls outside [-15, 88] are dropped entirely.
const (
	naturalLow  = 36
	naturalHigh = 96
	rangeBelow  = -15
	rangeAbove  = 88
)

// Options configure a Translator.
type Options struct {
	Backend Backend
	Display Display
	Logger  *zap.Logger
	Tables  keymap.Tables

	// Velocity enables the alt-wrapped dynamics bracket when non-nil.
	Velocity *keymap.VelocityMap

	Sustain       bool
	SustainCutoff uint8
	NoDoubles     bool

	// HoldLength arms a one-shot auto-release per press when positive;
	// otherwise the matching note-off is the sole release trigger.
	HoldLength time.Duration
}

// Translator turns note and sustain events into backend keystrokes. Events
// arrive from a single reader, so translation itself is sequential; the
// mutex exists because auto-release timers fire concurrently and share the
// ledger and the backend.
type Translator struct {
	mu      sync.Mutex
	backend Backend
	display Display
	log     *zap.Logger

	tables    keymap.Tables
	velocity  *keymap.VelocityMap
	sustainOn bool
	cutoff    uint8
	noDoubles bool
	hold      time.Duration

	held      *ledger
	timers    *timerSet
	pressed   *pressedSet
	sustained bool
}

// New validates the options and builds a translator.
func New(opts Options) (*Translator, error) {
	if opts.Backend == nil {
		return nil, errors.New("translate: backend is required")
	}
	if len(opts.Tables.Compact) == 0 {
		return nil, errors.New("translate: compact key table is empty")
	}
	display := opts.Display
	if display == nil {
		display = noopDisplay{}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Translator{
		backend:   opts.Backend,
		display:   display,
		log:       log.Named("translate"),
		tables:    opts.Tables,
		velocity:  opts.Velocity,
		sustainOn: opts.Sustain,
		cutoff:    opts.SustainCutoff,
		noDoubles: opts.NoDoubles,
		hold:      opts.HoldLength,
		held:      newLedger(),
		timers:    newTimerSet(),
		pressed:   newPressedSet(),
	}, nil
}

// Handle consumes one MIDI event. A failure while dispatching is logged
// and never interrupts later events.
func (t *Translator) Handle(ev Event) {
	switch ev.Kind {
	case ControlChange:
		t.handleControl(ev.Controller, ev.Value)
	case NoteOn:
		// MIDI convention: a zero-velocity note-on is a note-off.
		if ev.Velocity == 0 {
			t.handleNoteOff(ev.Note)
		} else {
			t.handleNoteOn(ev.Note, ev.Velocity)
		}
	case NoteOff:
		t.handleNoteOff(ev.Note)
	}
}

// Shutdown cancels outstanding timers, force-releases everything the
// ledger still holds, and clears the display. Safe to call twice; the
// second pass is a no-op over an empty ledger.
func (t *Translator) Shutdown() {
	t.timers.cancelAll()

	t.mu.Lock()
	t.held.drainAll()
	t.sustained = false
	t.pressed.clear()
	t.mu.Unlock()

	for _, note := range t.display.CurrentNotes() {
		t.display.Up(note)
	}
}

// PressedKeys returns the observational set of keys currently down, sorted.
func (t *Translator) PressedKeys() []string {
	return t.pressed.names()
}

// HeldCount returns the number of live ledger entries.
func (t *Translator) HeldCount() int {
	return t.held.size()
}

// Sustained reports whether the sustain latch is engaged.
func (t *Translator) Sustained() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sustained
}

func (t *Translator) handleControl(controller, value uint8) {
	if !t.sustainOn || controller != SustainController {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	// Two-state debounce: strictly above the cutoff engages, strictly
	// below releases. Values at the cutoff never transition, so a noisy
	// pedal cannot chatter.
	if !t.sustained && value > t.cutoff {
		t.sustained = true
		t.press(keymap.Space)
	} else if t.sustained && value < t.cutoff {
		t.sustained = false
		t.release(keymap.Space)
	}
}

func (t *Translator) handleNoteOn(note, velocity uint8) {
	tok, ok := t.gate(note)
	if !ok {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.display.Down(note, velocity)

	if t.velocity != nil {
		class := t.velocity.Classify(velocity)
		t.press(keymap.Alt)
		t.press(class)
		t.release(class)
		t.release(keymap.Alt)
	}

	if note >= naturalLow && note <= naturalHigh {
		switch {
		case tok.IsShiftSymbol():
			// Symbol = shift + the compact key one semitone below.
			base, ok := t.tables.CompactBase(note - 1)
			if !ok {
				t.log.Debug("symbol has no base key", zap.Uint8("note", note), zap.String("key", string(tok)))
				return
			}
			if t.noDoubles {
				t.release(base)
			}
			t.press(keymap.Shift)
			t.pressHold(base, "shift+"+string(base))
			t.release(keymap.Shift)
		case tok.IsUpper():
			if t.noDoubles {
				t.release(tok.Lower())
			}
			t.press(keymap.Shift)
			t.pressHold(tok.Lower(), string(tok.Lower()))
			t.release(keymap.Shift)
		default:
			if t.noDoubles {
				t.release(tok.Lower())
			}
			t.pressHold(tok, string(tok))
		}
	} else {
		// Octave transposition region: the released lowercase guards
		// against a stuck key from a prior mismatched event.
		t.release(tok.Lower())
		t.press(keymap.Ctrl)
		t.pressHold(tok.Lower(), string(tok.Lower()))
		t.release(keymap.Ctrl)
	}
}

func (t *Translator) handleNoteOff(note uint8) {
	tok, ok := t.gate(note)
	if !ok {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.display.Up(note)

	if note >= naturalLow && note <= naturalHigh && tok.IsShiftSymbol() {
		base, ok := t.tables.CompactBase(note - 1)
		if !ok {
			t.log.Debug("symbol has no base key", zap.Uint8("note", note), zap.String("key", string(tok)))
			return
		}
		t.release(base)
		return
	}
	t.release(tok.Lower())
}

// gate applies the range check and table resolution shared by both note
// paths. Misses are diagnostics, not errors.
func (t *Translator) gate(note uint8) (keymap.Token, bool) {
	if d := int(note) - naturalLow; d < rangeBelow || d > rangeAbove {
		t.log.Debug("note out of range", zap.Uint8("note", note))
		return "", false
	}
	tok, ok := t.tables.Resolve(note)
	if !ok {
		t.log.Debug("no mapping for note", zap.Uint8("note", note))
		return "", false
	}
	return tok, true
}

// press issues a bare press and records it under the token's own identity.
// Callers hold t.mu.
func (t *Translator) press(tok keymap.Token) {
	if err := t.backend.Press(tok); err != nil {
		t.log.Warn("press failed", zap.String("key", string(tok)), zap.Error(err))
		return
	}
	t.pressed.add(string(tok))
	t.held.record(string(tok), t.inverse(tok, string(tok)))
}

// pressHold presses a key under an explicit ledger identity and, when the
// hold override is active, arms its auto-release. Callers hold t.mu.
func (t *Translator) pressHold(tok keymap.Token, identity string) {
	if err := t.backend.Press(tok); err != nil {
		t.log.Warn("press failed", zap.String("key", string(tok)), zap.Error(err))
		return
	}
	t.pressed.add(string(tok))
	t.held.record(identity, t.inverse(tok, identity))

	if t.hold > 0 {
		t.timers.schedule(identity, t.hold, func() {
			t.mu.Lock()
			if err := t.backend.Release(tok); err != nil {
				t.log.Warn("timed release failed", zap.String("key", string(tok)), zap.Error(err))
			}
			t.pressed.remove(string(tok))
			t.held.forget(identity)
			t.mu.Unlock()
		})
	}
}

// release issues a release and forgets both identities the token could be
// held under. Releasing a key that is already up is a no-op at the
// backend. Callers hold t.mu.
func (t *Translator) release(tok keymap.Token) {
	if err := t.backend.Release(tok); err != nil {
		t.log.Warn("release failed", zap.String("key", string(tok)), zap.Error(err))
	}
	t.pressed.remove(string(tok))
	t.held.forget(string(tok))
	t.held.forget("shift+" + string(tok))
}

// inverse builds the drain action that undoes a press. Shift-wrapped
// entries also release shift, mirroring how they were pressed; if shift is
// already up that release is harmless. Runs under t.mu via drainAll.
func (t *Translator) inverse(tok keymap.Token, identity string) func() {
	shifted := identity == "shift+"+string(tok)
	return func() {
		if err := t.backend.Release(tok); err != nil {
			t.log.Warn("drain release failed", zap.String("key", string(tok)), zap.Error(err))
		}
		if shifted {
			if err := t.backend.Release(keymap.Shift); err != nil {
				t.log.Warn("drain release failed", zap.String("key", "shift"), zap.Error(err))
			}
		}
		t.pressed.remove(string(tok))
	}
}
