package midiin

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // register MIDI driver
	"go.uber.org/zap"

	"mid2vk/translate"
)

var (
	// ErrNoInputPort means no MIDI input exists to open.
	ErrNoInputPort = errors.New("midiin: no MIDI input port available")
	// ErrAlreadyRunning means Start was called on a live session.
	ErrAlreadyRunning = errors.New("midiin: session already running")
)

// Handler consumes decoded events and cleans up held state on stop.
type Handler interface {
	Handle(translate.Event)
	Shutdown()
}

// Options configure a Session.
type Options struct {
	Handler Handler
	Logger  *zap.Logger

	// JoinTimeout bounds the wait for the reader goroutine on Stop.
	JoinTimeout time.Duration
}

// Session owns one open MIDI input, the single reader goroutine feeding the
// handler, and the stop protocol. Start and Stop are called from the same
// caller thread; the reader is the only other thread of control.
type Session struct {
	mu          sync.Mutex
	handler     Handler
	log         *zap.Logger
	joinTimeout time.Duration

	running    bool
	in         drivers.In
	stopListen func()
	stop       chan struct{}
	done       chan struct{}
}

// NewSession builds a stopped session around a handler.
func NewSession(opts Options) (*Session, error) {
	if opts.Handler == nil {
		return nil, errors.New("midiin: handler is required")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	joinTimeout := opts.JoinTimeout
	if joinTimeout <= 0 {
		joinTimeout = time.Second
	}
	return &Session{
		handler:     opts.Handler,
		log:         log.Named("midiin"),
		joinTimeout: joinTimeout,
	}, nil
}

// Start opens the named or default MIDI input and spawns the reader. On
// any failure the session stays stopped and no goroutine exists.
func (s *Session) Start(portName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}

	in, err := findPort(portName)
	if err != nil {
		return err
	}
	if err := in.Open(); err != nil {
		return fmt.Errorf("open %q: %w", in.String(), err)
	}

	events := make(chan translate.Event, 64)
	stopListen, err := gomidi.ListenTo(in, func(msg gomidi.Message, _ int32) {
		var ch, note, vel, cc, val uint8
		var ev translate.Event
		switch {
		case msg.GetNoteStart(&ch, &note, &vel):
			ev = translate.Event{Kind: translate.NoteOn, Note: note, Velocity: vel}
		case msg.GetNoteEnd(&ch, &note):
			ev = translate.Event{Kind: translate.NoteOff, Note: note}
		case msg.GetControlChange(&ch, &cc, &val):
			ev = translate.Event{Kind: translate.ControlChange, Controller: cc, Value: val}
		default:
			return
		}
		select {
		case events <- ev:
		default:
			s.log.Warn("input queue full, event dropped", zap.String("event", ev.Kind.String()))
		}
	})
	if err != nil {
		in.Close()
		return fmt.Errorf("listen on %q: %w", in.String(), err)
	}

	s.in = in
	s.stopListen = stopListen
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.running = true

	go s.loop(events, s.stop, s.done)

	s.log.Info("midi input started", zap.String("port", in.String()))
	return nil
}

// loop is the reader worker: it checks the stop signal before dispatching
// every message, so a message already being handled runs to completion but
// nothing new starts after Stop.
func (s *Session) loop(events <-chan translate.Event, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-stop:
			return
		default:
		}
		select {
		case <-stop:
			return
		case ev := <-events:
			s.handler.Handle(ev)
		}
	}
}

// Stop signals the reader, closes the input to break a blocking read,
// joins the worker with a bounded wait, and has the handler cancel timers
// and drain every held key. Safe to call when already stopped, and twice.
func (s *Session) Stop() {
	s.mu.Lock()
	if s.running {
		close(s.stop)
		if s.stopListen != nil {
			s.stopListen()
		}
		if s.in != nil {
			if err := s.in.Close(); err != nil {
				s.log.Warn("close input", zap.Error(err))
			}
		}

		select {
		case <-s.done:
		case <-time.After(s.joinTimeout):
			s.log.Warn("reader did not stop within timeout")
		}

		s.in = nil
		s.stopListen = nil
		s.running = false
		s.log.Info("midi input stopped")
	}
	s.mu.Unlock()

	// Runs even when already stopped: the sweep over an empty ledger is
	// a no-op, and a crash between the two Stop calls cannot leave a key
	// physically down.
	s.handler.Shutdown()
}

// Running reports whether the reader is live.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// PortName returns the open port's name, or "" when stopped.
func (s *Session) PortName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.in == nil {
		return ""
	}
	return s.in.String()
}

// Ports lists the names of the available MIDI inputs.
func Ports() []string {
	ins := gomidi.GetInPorts()
	names := make([]string, 0, len(ins))
	for _, p := range ins {
		names = append(names, p.String())
	}
	return names
}

// findPort picks the default input for an empty name, otherwise matches
// exactly first and by case-insensitive substring second.
func findPort(name string) (drivers.In, error) {
	ins := gomidi.GetInPorts()
	if len(ins) == 0 {
		return nil, ErrNoInputPort
	}
	if name == "" {
		return ins[0], nil
	}
	for _, p := range ins {
		if p.String() == name {
			return p, nil
		}
	}
	for _, p := range ins {
		if strings.Contains(strings.ToLower(p.String()), strings.ToLower(name)) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("midiin: input %q not found", name)
}
