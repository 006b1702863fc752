package sku

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// PlatformOverride lists flags to force on or off for one platform.
type PlatformOverride struct {
	Enable  []Feature `toml:"enable" yaml:"enable"`
	Disable []Feature `toml:"disable" yaml:"disable"`
}

// Overrides maps platform names to flag overrides.
//
// Example TOML:
//
//	[cannonlake]
//	enable = ["FtrEncodeVP8"]
//	disable = ["FtrEnableMediaKernels"]
type Overrides map[string]PlatformOverride

// LoadFile reads feature overrides from a TOML or YAML file, chosen by extension.
func LoadFile(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feature overrides: %w", err)
	}

	var overrides Overrides
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &overrides)
	case ".toml", "":
		err = toml.Unmarshal(data, &overrides)
	default:
		return nil, fmt.Errorf("unsupported feature override format: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse feature overrides: %w", err)
	}

	if err := overrides.validate(); err != nil {
		return nil, err
	}
	return overrides, nil
}

func (o Overrides) validate() error {
	var unknown []string
	for name, po := range o {
		if _, err := ParsePlatform(name); err != nil {
			return err
		}
		for _, f := range slices.Concat(po.Enable, po.Disable) {
			if !Known(f) {
				unknown = append(unknown, string(f))
			}
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return fmt.Errorf("unknown feature flags: %s", strings.Join(unknown, ", "))
	}
	return nil
}

// Apply returns t with the overrides for its platform applied.
// Disable wins over enable when a flag appears in both lists.
func (o Overrides) Apply(t *Table) *Table {
	for name, po := range o {
		p, err := ParsePlatform(name)
		if err != nil || p != t.Platform() {
			continue
		}
		t = t.With(po.Enable...).Without(po.Disable...)
	}
	return t
}

// Resolve returns the default table for p with the overrides applied.
func Resolve(p Platform, o Overrides) (*Table, error) {
	t, err := Default(p)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return t, nil
	}
	return o.Apply(t), nil
}
