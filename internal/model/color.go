package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is an RGB color with unit-interval components.
type Color struct {
	R float64 `yaml:"r" json:"r"`
	G float64 `yaml:"g" json:"g"`
	B float64 `yaml:"b" json:"b"`
}

// Valid reports whether every component lies in [0, 1].
func (c Color) Valid() bool {
	return unit(c.R) && unit(c.G) && unit(c.B)
}

func (c Color) String() string {
	return fmt.Sprintf("%.2f,%.2f,%.2f", c.R, c.G, c.B)
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}

// ParseColor accepts "r,g,b" unit floats, "#rrggbb", or an SVG color name
// such as "red" or "deepskyblue".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("empty color")
	}

	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 {
			return Color{}, fmt.Errorf("invalid color %q: expected #rrggbb", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return Color{
			R: float64((v>>16)&0xff) / 255,
			G: float64((v>>8)&0xff) / 255,
			B: float64(v&0xff) / 255,
		}, nil
	}

	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		if len(parts) != 3 {
			return Color{}, fmt.Errorf("invalid color %q: expected r,g,b", s)
		}
		vals := make([]float64, 3)
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
			}
			vals[i] = v
		}
		c := Color{R: vals[0], G: vals[1], B: vals[2]}
		if !c.Valid() {
			return Color{}, fmt.Errorf("invalid color %q: components must be within 0..1", s)
		}
		return c, nil
	}

	named, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return Color{}, fmt.Errorf("unknown color name %q", s)
	}
	return Color{
		R: float64(named.R) / 255,
		G: float64(named.G) / 255,
		B: float64(named.B) / 255,
	}, nil
}

// ColorMap assigns border colors to application identifiers.
type ColorMap struct {
	Default Color
	ByID    map[string]Color
}

// NewColorMap returns a map with the given default and no per-app entries.
func NewColorMap(def Color) *ColorMap {
	return &ColorMap{Default: def, ByID: make(map[string]Color)}
}

// Lookup returns the color for id, or the default when id has no entry.
func (m *ColorMap) Lookup(id string) Color {
	if c, ok := m.ByID[id]; ok {
		return c
	}
	return m.Default
}

// Set parses an "id=color" assignment and stores it.
func (m *ColorMap) Set(assignment string) error {
	id, raw, ok := strings.Cut(assignment, "=")
	if !ok {
		return fmt.Errorf("invalid color assignment %q: expected id=color", assignment)
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("invalid color assignment %q: empty id", assignment)
	}
	c, err := ParseColor(raw)
	if err != nil {
		return err
	}
	m.ByID[id] = c
	return nil
}

// IDs returns the configured identifiers in sorted order.
func (m *ColorMap) IDs() []string {
	ids := make([]string, 0, len(m.ByID))
	for id := range m.ByID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
