package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"mid2vk/keymap"
)

// HoldLength overrides the note-off driven release with a fixed duration.
type HoldLength struct {
	Enabled    bool    `json:"enabled"`
	NoteLength float64 `json:"noteLength"` // seconds
}

// ExtendedMap holds the 88-key extensions below and above the compact range.
type ExtendedMap struct {
	LowNotes  map[string]string `json:"lowNotes,omitempty"`
	HighNotes map[string]string `json:"highNotes,omitempty"`
}

// PianoMap holds the note-number to key tables and the velocity table.
// Note numbers and velocity thresholds are decimal strings, the way the
// document stores them.
type PianoMap struct {
	Map61       map[string]string `json:"61keyMap"`
	Map88       ExtendedMap       `json:"88keyMap"`
	VelocityMap map[string]string `json:"velocityMap,omitempty"`
}

// Config is the main configuration structure.
type Config struct {
	PortName         string     `json:"portName,omitempty"`
	Velocity         bool       `json:"velocity"`
	Sustain          bool       `json:"sustain"`
	SustainCutoff    int        `json:"sustainCutoff"`
	NoDoubles        bool       `json:"noDoubles"`
	CustomHoldLength HoldLength `json:"customHoldLength"`
	PianoMap         PianoMap   `json:"pianoMap"`
}

// Default returns a config with the standard 61-key virtual-piano layout,
// sustain enabled at the conventional half-pedal cutoff, and everything
// else off.
func Default() *Config {
	return &Config{
		Sustain:       true,
		SustainCutoff: 64,
		CustomHoldLength: HoldLength{
			NoteLength: 0.1,
		},
		PianoMap: PianoMap{
			Map61: map[string]string{
				"36": "1", "37": "!", "38": "2", "39": "@", "40": "3",
				"41": "4", "42": "$", "43": "5", "44": "%", "45": "6",
				"46": "^", "47": "7", "48": "8", "49": "*", "50": "9",
				"51": "(", "52": "0", "53": "q", "54": "Q", "55": "w",
				"56": "W", "57": "e", "58": "E", "59": "r", "60": "t",
				"61": "T", "62": "y", "63": "Y", "64": "u", "65": "i",
				"66": "I", "67": "o", "68": "O", "69": "p", "70": "P",
				"71": "a", "72": "s", "73": "S", "74": "d", "75": "D",
				"76": "f", "77": "g", "78": "G", "79": "h", "80": "H",
				"81": "j", "82": "J", "83": "k", "84": "l", "85": "L",
				"86": "z", "87": "Z", "88": "x", "89": "c", "90": "C",
				"91": "v", "92": "V", "93": "b", "94": "B", "95": "n",
				"96": "m",
			},
			Map88: ExtendedMap{
				LowNotes: map[string]string{
					"21": "1", "22": "2", "23": "3", "24": "4", "25": "5",
					"26": "6", "27": "7", "28": "8", "29": "9", "30": "0",
					"31": "q", "32": "w", "33": "e", "34": "r", "35": "t",
				},
				HighNotes: map[string]string{
					"97": "y", "98": "u", "99": "i", "100": "o", "101": "p",
					"102": "a", "103": "s", "104": "d", "105": "f",
					"106": "g", "107": "h", "108": "j",
				},
			},
			VelocityMap: map[string]string{
				"40": "1", "80": "2", "110": "3", "127": "4",
			},
		},
	}
}

// Dir returns the config directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mid2vk"), nil
}

// Path returns the full path to config.json.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a config document from an explicit path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := Path()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the parts of the document that would otherwise fail
// mid-session: empty or unparseable mapping tables, an enabled velocity
// feature with no thresholds, a nonsensical cutoff or hold length.
func (c *Config) Validate() error {
	if len(c.PianoMap.Map61) == 0 {
		return fmt.Errorf("config: 61keyMap is empty")
	}
	if _, err := c.Tables(); err != nil {
		return err
	}
	if c.Velocity {
		if _, err := c.VelocityTable(); err != nil {
			return err
		}
	}
	if c.SustainCutoff < 0 || c.SustainCutoff > 127 {
		return fmt.Errorf("config: sustainCutoff %d outside 0-127", c.SustainCutoff)
	}
	if c.CustomHoldLength.Enabled && c.CustomHoldLength.NoteLength <= 0 {
		return fmt.Errorf("config: customHoldLength.noteLength must be positive")
	}
	return nil
}

// Tables converts the string-keyed document maps into lookup tables.
func (c *Config) Tables() (keymap.Tables, error) {
	compact, err := parseNoteMap("61keyMap", c.PianoMap.Map61)
	if err != nil {
		return keymap.Tables{}, err
	}
	low, err := parseNoteMap("88keyMap.lowNotes", c.PianoMap.Map88.LowNotes)
	if err != nil {
		return keymap.Tables{}, err
	}
	high, err := parseNoteMap("88keyMap.highNotes", c.PianoMap.Map88.HighNotes)
	if err != nil {
		return keymap.Tables{}, err
	}
	return keymap.Tables{Compact: compact, LowExtension: low, HighExtension: high}, nil
}

// VelocityTable converts the velocity document map into a classifier.
func (c *Config) VelocityTable() (*keymap.VelocityMap, error) {
	m := make(map[int]keymap.Token, len(c.PianoMap.VelocityMap))
	for k, v := range c.PianoMap.VelocityMap {
		th, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("config: velocityMap threshold %q: %w", k, err)
		}
		m[th] = keymap.Token(v)
	}
	vm, err := keymap.NewVelocityMap(m)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return vm, nil
}

// HoldDuration returns the auto-release duration, or zero when disabled.
func (c *Config) HoldDuration() time.Duration {
	if !c.CustomHoldLength.Enabled {
		return 0
	}
	return time.Duration(c.CustomHoldLength.NoteLength * float64(time.Second))
}

func parseNoteMap(name string, m map[string]string) (map[uint8]keymap.Token, error) {
	out := make(map[uint8]keymap.Token, len(m))
	for k, v := range m {
		note, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("config: %s note %q: %w", name, k, err)
		}
		if note < 0 || note > 127 {
			return nil, fmt.Errorf("config: %s note %d outside 0-127", name, note)
		}
		out[uint8(note)] = keymap.Token(v)
	}
	return out, nil
}
