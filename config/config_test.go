package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	tb, err := cfg.Tables()
	if err != nil {
		t.Fatal(err)
	}
	// Every symbol in the compact map must sit one semitone above its base
	// key, otherwise the shift wrap would press the wrong key.
	for note, tok := range tb.Compact {
		if !tok.IsShiftSymbol() {
			continue
		}
		if _, ok := tb.Compact[note-1]; !ok {
			t.Errorf("symbol %q at note %d has no base key at note %d", tok, note, note-1)
		}
	}
}

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if len(cfg.PianoMap.Map61) == 0 {
		t.Fatal("expected default 61keyMap")
	}
}

func TestLoadFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	doc := `{
		"portName": "Arturia KeyStep",
		"velocity": true,
		"sustain": true,
		"sustainCutoff": 50,
		"noDoubles": true,
		"customHoldLength": {"enabled": true, "noteLength": 0.25},
		"pianoMap": {
			"61keyMap": {"60": "t", "61": "T"},
			"88keyMap": {"lowNotes": {"30": "1"}, "highNotes": {"100": "z"}},
			"velocityMap": {"64": "1", "127": "2"}
		}
	}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.PortName != "Arturia KeyStep" || !cfg.NoDoubles {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if got := cfg.HoldDuration(); got != 250*time.Millisecond {
		t.Errorf("HoldDuration = %v, want 250ms", got)
	}

	tb, err := cfg.Tables()
	if err != nil {
		t.Fatal(err)
	}
	if tok, ok := tb.Resolve(100); !ok || tok != "z" {
		t.Errorf("Resolve(100) = %q, %v", tok, ok)
	}
}

func TestValidateRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty 61keyMap", func(c *Config) { c.PianoMap.Map61 = nil }},
		{"velocity on with empty table", func(c *Config) {
			c.Velocity = true
			c.PianoMap.VelocityMap = nil
		}},
		{"unparseable note key", func(c *Config) { c.PianoMap.Map61["sixty"] = "t" }},
		{"note out of range", func(c *Config) { c.PianoMap.Map61["300"] = "t" }},
		{"cutoff out of range", func(c *Config) { c.SustainCutoff = 200 }},
		{"hold enabled with zero length", func(c *Config) {
			c.CustomHoldLength = HoldLength{Enabled: true}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestHoldDurationDisabled(t *testing.T) {
	cfg := Default()
	if cfg.HoldDuration() != 0 {
		t.Fatal("hold duration should be zero when disabled")
	}
}
