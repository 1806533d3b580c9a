package backend

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"go.uber.org/zap"

	"mid2vk/keymap"
)

// Backend is the key-injection capability handed to the translator. The
// concrete adapter is chosen once, here; nothing downstream branches on
// platform.
type Backend interface {
	Press(keymap.Token) error
	Release(keymap.Token) error
	Close() error
}

// New detects the platform and returns a resolved capability: the daemon
// adapter on a Wayland compositor with ydotool present, the virtual
// keyboard otherwise.
func New(log *zap.Logger) (Backend, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("backend")

	if isWayland() && hasYdotool() {
		socket := findSocket()
		if socket == "" {
			log.Warn("ydotool socket not found, relying on daemon default")
		}
		if !daemonRunning() {
			if err := startDaemon(socket); err != nil {
				log.Warn("could not start ydotoold, keys may not reach other windows", zap.Error(err))
			}
		}
		log.Info("using ydotool key injection", zap.String("socket", socket))
		return NewYdotool(socket, log), nil
	}

	log.Info("using virtual keyboard key injection")
	return NewUinput(log)
}

func isWayland() bool {
	return os.Getenv("WAYLAND_DISPLAY") != ""
}

func hasYdotool() bool {
	_, err := exec.LookPath("ydotool")
	return err == nil
}

// findSocket honors an explicit YDOTOOL_SOCKET, then probes the well-known
// socket paths.
func findSocket() string {
	if s := os.Getenv("YDOTOOL_SOCKET"); s != "" {
		return s
	}
	candidates := []string{
		fmt.Sprintf("/run/user/%d/.ydotool_socket", os.Getuid()),
		"/run/user/1000/.ydotool_socket",
		"/tmp/.ydotool_socket",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func daemonRunning() bool {
	err := exec.Command("pgrep", "-f", "ydotoold").Run()
	return err == nil
}

// startDaemon launches ydotoold detached and gives it a moment to create
// its socket.
func startDaemon(socket string) error {
	args := []string{}
	if socket != "" {
		args = append(args, "--socket-path", socket)
	}
	cmd := exec.Command("ydotoold", args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return err
	}
	time.Sleep(500 * time.Millisecond)

	if !daemonRunning() {
		return fmt.Errorf("ydotoold did not stay up")
	}
	return nil
}
