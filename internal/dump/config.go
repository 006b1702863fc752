package dump

import (
	"fmt"
	"os"
	"slices"

	"github.com/pelletier/go-toml/v2"
)

// Config selects which dumps are written and where.
type Config struct {
	OutputDir   string          `toml:"output_dir"`
	Attributes  map[string]bool `toml:"attributes"`
	MediaStates []string        `toml:"media_states"`
	FrameStart  uint32          `toml:"frame_start"`
	FrameEnd    uint32          `toml:"frame_end"`
	HexDump     bool            `toml:"hex_dump"`
}

// DefaultConfig returns a config with every attribute disabled.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:  os.TempDir(),
		Attributes: map[string]bool{},
	}
}

// LoadConfig reads a dump config from a TOML file.
//
//	output_dir = "/tmp/mediacaps"
//	frame_start = 0
//	frame_end = 10
//	hex_dump = true
//	[attributes]
//	DumpCapsTable = true
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dump config: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse dump config %s: %w", path, err)
	}
	if cfg.FrameEnd != 0 && cfg.FrameEnd < cfg.FrameStart {
		return nil, fmt.Errorf("invalid dump config %s: frame_end %d before frame_start %d", path, cfg.FrameEnd, cfg.FrameStart)
	}
	if cfg.Attributes == nil {
		cfg.Attributes = map[string]bool{}
	}
	return cfg, nil
}

// Enabled reports whether attr is dumped for frame in the given media state.
// A zero FrameEnd leaves the range open.
func (c *Config) Enabled(attr string, frame uint32, state MediaState) bool {
	if c == nil || !c.Attributes[attr] {
		return false
	}
	if frame < c.FrameStart || (c.FrameEnd != 0 && frame > c.FrameEnd) {
		return false
	}
	if state == MediaStateNone || len(c.MediaStates) == 0 {
		return true
	}
	return slices.Contains(c.MediaStates, string(state))
}
