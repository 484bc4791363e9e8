package config

import (
	"fmt"
	"os"
	"path/filepath"

	shellwords "github.com/mattn/go-shellwords"
	"gopkg.in/yaml.v3"

	"github.com/tbeaumont/gestured/internal/event"
	"github.com/tbeaumont/gestured/internal/geometry"
)

// Config is one immutable snapshot of the user's bindings. The daemon never
// mutates a loaded Config; reloads build a fresh one and swap it wholesale.
type Config struct {
	ShapeButton event.MouseButton `yaml:"shape_button"`

	// EdgeMarginPx is the distance from a display edge within which a click
	// counts as "near" that edge.
	EdgeMarginPx int `yaml:"edge_margin_px,omitempty"`

	// ShapeThreshold is the mean angular difference (radians) below which
	// two angle signatures count as the same shape.
	ShapeThreshold float64 `yaml:"shape_threshold,omitempty"`

	Bindings []Binding `yaml:"bindings"`
}

// Binding maps a click-event pattern to a command.
type Binding struct {
	Comment string       `yaml:"comment"`
	Event   EventPattern `yaml:"event"`
	Cmd     CmdLine      `yaml:"cmd"`
}

// EventPattern is the persisted match target. ShapesXY holds recorded traces
// as flat x,y integer runs; the angle signatures are derived on load and
// never written back, so edits to a trace re-derive cleanly on the next load.
type EventPattern struct {
	Button       event.MouseButton `yaml:"button"`
	Edges        []event.Edge      `yaml:"edges,omitempty"`
	Modifiers    []event.Modifier  `yaml:"modifiers,omitempty"`
	EventType    event.PressState  `yaml:"event_type"`
	ShapesXY     []Trace           `yaml:"shapes_xy,omitempty"`
	ShapesAngles [][]float64       `yaml:"-"`
}

// Trace is a recorded gesture trace, serialized as a flat integer sequence
// x0, y0, x1, y1, ...
type Trace []geometry.Point

func (t Trace) MarshalYAML() (interface{}, error) {
	flat := make([]int, 0, 2*len(t))
	for _, p := range t {
		flat = append(flat, p.X, p.Y)
	}
	return flat, nil
}

func (t *Trace) UnmarshalYAML(value *yaml.Node) error {
	var flat []int
	if err := value.Decode(&flat); err != nil {
		return fmt.Errorf("shapes_xy trace must be a flat integer list: %w", err)
	}
	if len(flat)%2 != 0 {
		return fmt.Errorf("shapes_xy trace has odd length %d", len(flat))
	}
	points := make(Trace, 0, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		points = append(points, geometry.Point{X: flat[i], Y: flat[i+1]})
	}
	*t = points
	return nil
}

// CmdLine is an argv vector. It accepts either a YAML sequence or a single
// shell-style string, which is split with shell word rules.
type CmdLine []string

func (c *CmdLine) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var line string
		if err := value.Decode(&line); err != nil {
			return err
		}
		args, err := shellwords.Parse(line)
		if err != nil {
			return fmt.Errorf("cmd %q: %w", line, err)
		}
		*c = args
		return nil
	}

	var args []string
	if err := value.Decode(&args); err != nil {
		return fmt.Errorf("cmd must be a string or a list of strings: %w", err)
	}
	*c = args
	return nil
}

// Load reads, parses, validates and finalizes a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse builds a Config from raw YAML.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.applyDefaults()
	cfg.deriveShapes()

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.ShapeButton != "" && !isPhysicalButton(c.ShapeButton) {
		return fmt.Errorf("shape_button %q is not a mouse button", c.ShapeButton)
	}
	if c.EdgeMarginPx < 0 {
		return fmt.Errorf("edge_margin_px must not be negative")
	}
	if c.ShapeThreshold < 0 {
		return fmt.Errorf("shape_threshold must not be negative")
	}

	for i, b := range c.Bindings {
		if b.Event.Button == "" {
			return fmt.Errorf("binding %d: event.button is required", i)
		}
		switch b.Event.EventType {
		case event.Press, event.Release:
		default:
			return fmt.Errorf("binding %d: event_type %q is not Press or Release", i, b.Event.EventType)
		}
		for _, e := range b.Event.Edges {
			switch e {
			case event.EdgeTop, event.EdgeLeft, event.EdgeBottom, event.EdgeRight:
			default:
				return fmt.Errorf("binding %d: unknown edge %q", i, e)
			}
		}
		if len(b.Cmd) == 0 {
			return fmt.Errorf("binding %d: cmd is required", i)
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.ShapeButton == "" {
		c.ShapeButton = event.ButtonRight
	}
	if c.EdgeMarginPx == 0 {
		c.EdgeMarginPx = 5
	}
	if c.ShapeThreshold == 0 {
		c.ShapeThreshold = 0.35
	}
}

// deriveShapes turns each binding's recorded traces into angle signatures.
func (c *Config) deriveShapes() {
	for i := range c.Bindings {
		pattern := &c.Bindings[i].Event
		pattern.ShapesAngles = nil
		for _, trace := range pattern.ShapesXY {
			pattern.ShapesAngles = append(pattern.ShapesAngles, geometry.Angles(trace))
		}
	}
}

func isPhysicalButton(b event.MouseButton) bool {
	for _, known := range event.Buttons() {
		if b == known {
			return true
		}
	}
	return false
}

// Save serializes cfg to path, rotating any existing file to path.bak first
// so a failed write never destroys the only copy.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		bak := filepath.Join(filepath.Dir(path), filepath.Base(path)+".bak")
		os.Remove(bak)
		if err := os.Rename(path, bak); err != nil {
			return fmt.Errorf("failed to back up previous config: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultPath returns the conventional config location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "gestured.yaml"
	}
	return filepath.Join(home, ".config", "gestured.yaml")
}

// InitIfMissing writes a starter config when none exists yet.
func InitIfMissing(path string) error {
	if Exists(path) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	content := `# gestured configuration

# Hold this button and drag to draw a gesture shape.
shape_button: Right

# A click within this many pixels of a display edge carries that edge.
edge_margin_px: 5

# Mean angular difference (radians) below which shapes match.
shape_threshold: 0.35

bindings: []
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	return nil
}

// Exists checks if a config file exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
