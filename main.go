package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mid2vk/backend"
	"mid2vk/config"
	"mid2vk/display"
	"mid2vk/keymap"
	"mid2vk/midiin"
	"mid2vk/translate"
	"mid2vk/tui"
)

func main() {
	var (
		port    = flag.String("port", "", "MIDI input port (default: first available)")
		cfgPath = flag.String("config", "", "config file path")
		debug   = flag.Bool("debug", false, "verbose logging")
		list    = flag.Bool("list", false, "list MIDI input ports and exit")
	)
	flag.Parse()

	if *list {
		for _, name := range midiin.Ports() {
			fmt.Println(name)
		}
		return
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	logger, err := newLogger(*debug)
	if err != nil {
		fatal(err)
	}
	defer logger.Sync()

	be, err := backend.New(logger)
	if err != nil {
		fatal(fmt.Errorf("key injection unavailable: %w", err))
	}
	defer be.Close()

	tables, err := cfg.Tables()
	if err != nil {
		fatal(err)
	}
	var velocity *keymap.VelocityMap
	if cfg.Velocity {
		if velocity, err = cfg.VelocityTable(); err != nil {
			fatal(err)
		}
	}

	piano := display.NewPiano()
	tr, err := translate.New(translate.Options{
		Backend:       be,
		Display:       piano,
		Logger:        logger,
		Tables:        tables,
		Velocity:      velocity,
		Sustain:       cfg.Sustain,
		SustainCutoff: uint8(cfg.SustainCutoff),
		NoDoubles:     cfg.NoDoubles,
		HoldLength:    cfg.HoldDuration(),
	})
	if err != nil {
		fatal(err)
	}

	session, err := midiin.NewSession(midiin.Options{
		Handler: tr,
		Logger:  logger,
	})
	if err != nil {
		fatal(err)
	}

	name := *port
	if name == "" {
		name = cfg.PortName
	}
	if err := session.Start(name); err != nil {
		fatal(fmt.Errorf("could not start MIDI input: %w", err))
	}
	defer session.Stop()

	m := tui.NewModel(session, tr, piano)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fatal(err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// newLogger writes to a file next to the config: the TUI owns the
// terminal.
func newLogger(debug bool) (*zap.Logger, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{filepath.Join(dir, "mid2vk.log")}
	zc.ErrorOutputPaths = zc.OutputPaths
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zc.Build()
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
