// Package report renders the capability table of a generation and compares
// tables across generations.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/r3labs/diff"
	"github.com/smazurov/mediacaps/internal/caps"
	"gopkg.in/yaml.v3"
)

// Format selects the Render output.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTOML, FormatYAML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown report format %q", s)
	}
}

// CapsSnapshot is a plain copy of an initialized capability object.
type CapsSnapshot struct {
	Platform   string                   `json:"platform" toml:"platform" yaml:"platform" diff:"platform"`
	Generation string                   `json:"generation" toml:"generation" yaml:"generation" diff:"generation"`
	Limits     caps.Limits              `json:"limits" toml:"limits" yaml:"limits" diff:"limits"`
	DecodeMax  map[string]caps.Size     `json:"decode_max" toml:"decode_max" yaml:"decode_max" diff:"decode_max"`
	Entries    map[string]EntrySnapshot `json:"entries" toml:"entries" yaml:"entries" diff:"entries"`
}

// EntrySnapshot is one registered profile entrypoint.
type EntrySnapshot struct {
	Profile    string            `json:"profile" toml:"profile" yaml:"profile" diff:"profile"`
	Entrypoint string            `json:"entrypoint" toml:"entrypoint" yaml:"entrypoint" diff:"entrypoint"`
	Attributes map[string]uint32 `json:"attributes" toml:"attributes" yaml:"attributes" diff:"attributes"`
	RCModes    []string          `json:"rc_modes,omitempty" toml:"rc_modes,omitempty" yaml:"rc_modes,omitempty" diff:"rc_modes"`
	DecConfigs []string          `json:"dec_configs,omitempty" toml:"dec_configs,omitempty" yaml:"dec_configs,omitempty" diff:"dec_configs"`
}

// Snapshot copies c. Entries are keyed "<profile>/<entrypoint>".
func Snapshot(c caps.Caps) *CapsSnapshot {
	limits := c.Limits()
	s := &CapsSnapshot{
		Platform:   c.Platform().String(),
		Generation: c.Generation(),
		Limits:     limits,
		DecodeMax:  make(map[string]caps.Size, len(limits.DecodeMax)),
		Entries:    make(map[string]EntrySnapshot),
	}
	for mode, size := range limits.DecodeMax {
		s.DecodeMax[mode.String()] = size
	}
	s.Limits.DecodeMax = nil

	for _, e := range c.Entries() {
		es := EntrySnapshot{
			Profile:    e.Profile.String(),
			Entrypoint: e.Entrypoint.String(),
			Attributes: make(map[string]uint32, e.Attributes.Len()),
		}
		for _, a := range e.Attributes.List() {
			es.Attributes[a.Type.String()] = a.Value
		}

		if e.Entrypoint == caps.EntrypointVLD {
			configs, _ := c.DecConfigs(e.Profile, e.Entrypoint)
			for _, dc := range configs {
				es.DecConfigs = append(es.DecConfigs, fmt.Sprintf("slice=%d,proc=%d", dc.SliceMode, dc.ProcessMode))
			}
		} else if configs, err := c.EncConfigs(e.Profile, e.Entrypoint); err == nil {
			for _, ec := range configs {
				es.RCModes = append(es.RCModes, ec.RCMode.String())
			}
		}
		s.Entries[e.Key()] = es
	}
	return s
}

// Change is one difference between two snapshots.
type Change struct {
	Type string   `json:"type" toml:"type" yaml:"type"`
	Path []string `json:"path" toml:"path" yaml:"path"`
	From any      `json:"from,omitempty" toml:"from,omitempty" yaml:"from,omitempty"`
	To   any      `json:"to,omitempty" toml:"to,omitempty" yaml:"to,omitempty"`
}

// String formats the change as "<type> <path>: <from> -> <to>".
func (c Change) String() string {
	return fmt.Sprintf("%s %s: %v -> %v", c.Type, strings.Join(c.Path, "."), c.From, c.To)
}

// DiffReport is the renderable result of comparing two snapshots.
type DiffReport struct {
	From    string   `json:"from" toml:"from" yaml:"from"`
	To      string   `json:"to" toml:"to" yaml:"to"`
	Changes []Change `json:"changes" toml:"changes" yaml:"changes"`
}

// Compare diffs a against b and labels the result with their platforms.
func Compare(a, b *CapsSnapshot) (*DiffReport, error) {
	changes, err := Diff(a, b)
	if err != nil {
		return nil, err
	}
	return &DiffReport{From: a.Platform, To: b.Platform, Changes: changes}, nil
}

// Diff lists what changes from a to b.
func Diff(a, b *CapsSnapshot) ([]Change, error) {
	changelog, err := diff.Diff(a, b)
	if err != nil {
		return nil, fmt.Errorf("failed to diff capabilities: %w", err)
	}

	out := make([]Change, 0, len(changelog))
	for _, c := range changelog {
		out = append(out, Change{Type: c.Type, Path: c.Path, From: c.From, To: c.To})
	}
	return out, nil
}

// Render writes v in the given format.
func Render(w io.Writer, v any, format Format) error {
	switch format {
	case FormatTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}
