package backend

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"mid2vk/keymap"
)

const ydotoolTimeout = 2 * time.Second

// Ydotool injects keycodes through the ydotoold daemon, for compositors
// where no userspace injection route exists. Every call shells out, so
// calls can block on I/O; the translator serializes them.
type Ydotool struct {
	log    *zap.Logger
	socket string
	run    func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewYdotool builds the adapter. socket may be empty, in which case the
// daemon's default socket is used.
func NewYdotool(socket string, log *zap.Logger) *Ydotool {
	if log == nil {
		log = zap.NewNop()
	}
	y := &Ydotool{
		log:    log.Named("backend"),
		socket: socket,
	}
	y.run = y.execRun
	return y
}

// Press pushes a key down.
func (y *Ydotool) Press(tok keymap.Token) error {
	return y.key(tok, 1)
}

// Release lets a key up. Releasing a key that is not down is a no-op at
// the daemon, not an error.
func (y *Ydotool) Release(tok keymap.Token) error {
	return y.key(tok, 0)
}

// Close is a no-op; the daemon is not ours to stop.
func (y *Ydotool) Close() error { return nil }

func (y *Ydotool) key(tok keymap.Token, state int) error {
	code, ok := Keycode(tok)
	if !ok {
		// Dropped keystroke, not an error: the mapping tables may carry
		// keys this adapter cannot type.
		y.log.Debug("no keycode for token", zap.String("key", string(tok)))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), ydotoolTimeout)
	defer cancel()

	out, err := y.run(ctx, "ydotool", "key", fmt.Sprintf("%d:%d", code, state))
	if err != nil {
		return fmt.Errorf("ydotool key %d:%d: %w (%s)", code, state, err, string(out))
	}
	return nil
}

func (y *Ydotool) execRun(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = os.Environ()
	if y.socket != "" {
		cmd.Env = append(cmd.Env, "YDOTOOL_SOCKET="+y.socket)
	}
	return cmd.CombinedOutput()
}
