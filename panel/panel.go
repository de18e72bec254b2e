// Package panel describes the capabilities and power-on defaults of LCD
// modules built around the ST7032.
//
// The controller is the same on every module; what varies is the glass: the
// number of lines and columns, whether the icon row is wired, and the bias,
// contrast and booster settings that give a readable picture at the module's
// supply voltage.
//
// Profiles can be written in YAML on top of a built-in one:
//
//	base: sb1602b
//	name: sb1602b-3v
//	contrast: 40
//	booster: true
package panel

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Panel is the capability and default configuration of a module.
type Panel struct {
	Name    string `yaml:"name"`
	Lines   int    `yaml:"lines"`
	Columns int    `yaml:"columns"`
	Icons   bool   `yaml:"icons"`

	// Power-on defaults replayed by the initialization sequence.
	Contrast     uint8 `yaml:"contrast"`      // 0-63
	Booster      bool  `yaml:"booster"`       // Required below ~3.5V
	FollowerAmp  uint8 `yaml:"follower_amp"`  // 0-7
	OscFrequency uint8 `yaml:"osc_frequency"` // 0-7
	BiasQuarter  bool  `yaml:"bias_quarter"`  // 1/4 bias instead of 1/5
}

// Built-in profiles.
var (
	// SB1602B is the Strawberry Linux 16x2 module with icons.
	SB1602B = Panel{
		Name:         "sb1602b",
		Lines:        2,
		Columns:      16,
		Icons:        true,
		Contrast:     0x23,
		Booster:      true,
		FollowerAmp:  4,
		OscFrequency: 4,
	}
	// AQM1602Y is the Akizuki 16x2 module.
	AQM1602Y = Panel{
		Name:         "aqm1602y",
		Lines:        2,
		Columns:      16,
		Contrast:     0x23,
		Booster:      true,
		FollowerAmp:  4,
		OscFrequency: 4,
	}
	// AQM0802A is the Akizuki 8x2 module.
	AQM0802A = Panel{
		Name:         "aqm0802a",
		Lines:        2,
		Columns:      8,
		Contrast:     0x20,
		Booster:      true,
		FollowerAmp:  4,
		OscFrequency: 4,
	}
)

var builtin = []Panel{SB1602B, AQM1602Y, AQM0802A}

// Names returns the names of the built-in profiles.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for _, p := range builtin {
		names = append(names, p.Name)
	}
	return names
}

// Lookup returns the built-in profile called name, case insensitive.
func Lookup(name string) (Panel, error) {
	for _, p := range builtin {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Panel{}, fmt.Errorf("panel: unknown profile %q (known: %s)", name, strings.Join(Names(), ", "))
}

// Validate checks that p describes something the controller can drive.
func (p Panel) Validate() error {
	if p.Lines < 1 || p.Lines > 2 {
		return fmt.Errorf("panel: %s: lines must be 1 or 2, got %d", p.Name, p.Lines)
	}
	// Each DDRAM line holds 40 characters.
	if p.Columns < 1 || p.Columns > 40 {
		return fmt.Errorf("panel: %s: columns must be between 1 and 40, got %d", p.Name, p.Columns)
	}
	if p.Contrast > 0x3F {
		return fmt.Errorf("panel: %s: contrast must be between 0 and 63, got %d", p.Name, p.Contrast)
	}
	if p.FollowerAmp > 7 {
		return fmt.Errorf("panel: %s: follower_amp must be between 0 and 7, got %d", p.Name, p.FollowerAmp)
	}
	if p.OscFrequency > 7 {
		return fmt.Errorf("panel: %s: osc_frequency must be between 0 and 7, got %d", p.Name, p.OscFrequency)
	}
	return nil
}

// Cells returns the number of characters visible at once.
func (p Panel) Cells() int {
	return p.Lines * p.Columns
}

func (p Panel) String() string {
	icons := ""
	if p.Icons {
		icons = "+icons"
	}
	return fmt.Sprintf("%s(%dx%d%s)", p.Name, p.Columns, p.Lines, icons)
}

// file is the on-disk layout: a panel with an optional base profile.
type file struct {
	Base  string `yaml:"base"`
	Panel `yaml:",inline"`
}

// Load parses a YAML profile. Fields not present keep the value of the base
// profile, SB1602B when none is named. Unknown fields are an error.
func Load(r io.Reader) (Panel, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Panel{}, fmt.Errorf("panel: read: %w", err)
	}

	var probe struct {
		Base string `yaml:"base"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return Panel{}, fmt.Errorf("panel: parse: %w", err)
	}
	base := SB1602B
	if probe.Base != "" {
		if base, err = Lookup(probe.Base); err != nil {
			return Panel{}, err
		}
	}

	f := file{Panel: base}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Panel{}, fmt.Errorf("panel: parse: %w", err)
	}
	if err := f.Panel.Validate(); err != nil {
		return Panel{}, err
	}
	return f.Panel, nil
}

// LoadFile parses the YAML profile at path.
func LoadFile(path string) (Panel, error) {
	f, err := os.Open(path)
	if err != nil {
		return Panel{}, fmt.Errorf("panel: %w", err)
	}
	defer f.Close()
	return Load(f)
}
