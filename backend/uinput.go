package backend

import (
	"fmt"
	"strings"

	"github.com/bendahl/uinput"
	"go.uber.org/zap"

	"mid2vk/keymap"
)

// blockedKeys are never injected no matter what a mapping table says;
// letting a stray mapping hit F-keys or escape inside a game is worse than
// dropping the note.
var blockedKeys = map[string]bool{
	"tab": true, "backspace": true, "esc": true,
	"f1": true, "f2": true, "f3": true, "f4": true, "f5": true, "f6": true,
	"f7": true, "f8": true, "f9": true, "f10": true, "f11": true, "f12": true,
}

// Uinput injects keys through a virtual keyboard device, the userspace
// route for classic windowing systems.
type Uinput struct {
	log *zap.Logger
	kb  uinput.Keyboard
}

// NewUinput creates the virtual keyboard. Requires write access to
// /dev/uinput.
func NewUinput(log *zap.Logger) (*Uinput, error) {
	if log == nil {
		log = zap.NewNop()
	}
	kb, err := uinput.CreateKeyboard("/dev/uinput", []byte("mid2vk"))
	if err != nil {
		return nil, fmt.Errorf("create virtual keyboard: %w", err)
	}
	return &Uinput{log: log.Named("backend"), kb: kb}, nil
}

// Press pushes a key down.
func (u *Uinput) Press(tok keymap.Token) error {
	code, ok := u.resolve(tok)
	if !ok {
		return nil
	}
	if err := u.kb.KeyDown(code); err != nil {
		return fmt.Errorf("key down %q: %w", tok, err)
	}
	return nil
}

// Release lets a key up; a key that is already up stays up, without error.
func (u *Uinput) Release(tok keymap.Token) error {
	code, ok := u.resolve(tok)
	if !ok {
		return nil
	}
	if err := u.kb.KeyUp(code); err != nil {
		return fmt.Errorf("key up %q: %w", tok, err)
	}
	return nil
}

// Close destroys the virtual keyboard device.
func (u *Uinput) Close() error {
	return u.kb.Close()
}

func (u *Uinput) resolve(tok keymap.Token) (int, bool) {
	name := strings.ToLower(string(tok))
	if blockedKeys[name] {
		u.log.Debug("blocked key dropped", zap.String("key", name))
		return 0, false
	}
	code, ok := Keycode(tok)
	if !ok {
		u.log.Debug("no keycode for token", zap.String("key", name))
	}
	return code, ok
}
