// Package cmd holds the command line subcommands of mediacaps.
package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smazurov/mediacaps/internal/caps"
	"github.com/smazurov/mediacaps/internal/driver"
	"github.com/smazurov/mediacaps/internal/dump"
	"github.com/smazurov/mediacaps/internal/logging"
	"github.com/smazurov/mediacaps/internal/sku"
	"github.com/spf13/cobra"
)

// sessionFlags are shared by every command that opens a session.
type sessionFlags struct {
	overrides  string
	dumpConfig string
	logLevel   string
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.overrides, "overrides", "", "Feature flag override file (TOML or YAML)")
	cmd.Flags().StringVar(&f.dumpConfig, "dump-config", "", "Diagnostic dump config file (TOML)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
}

// open resolves the platform and opens a session with the flag settings.
func (f *sessionFlags) open(platform string) (*driver.Session, error) {
	logging.Initialize(logging.Config{Level: f.logLevel, Format: "text"})

	p, err := sku.ParsePlatform(platform)
	if err != nil {
		return nil, err
	}

	var overrides sku.Overrides
	if f.overrides != "" {
		if overrides, err = sku.LoadFile(f.overrides); err != nil {
			return nil, err
		}
	}

	var sink dump.Sink = dump.NopSink{}
	if f.dumpConfig != "" {
		cfg, err := dump.LoadConfig(f.dumpConfig)
		if err != nil {
			return nil, err
		}
		sink = dump.NewFileSink(cfg, nil)
	}

	reg := caps.NewRegistry(nil)
	if err := caps.RegisterBuiltins(reg); err != nil {
		return nil, err
	}
	return driver.Open(reg, driver.Options{Platform: p, Overrides: overrides, Dump: sink})
}

// parseSize parses "1920x1080".
func parseSize(s string) (width, height uint32, err error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q, want WIDTHxHEIGHT", s)
	}
	wv, err := strconv.ParseUint(w, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	hv, err := strconv.ParseUint(h, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	return uint32(wv), uint32(hv), nil
}

// NewCommands returns every subcommand.
func NewCommands() []*cobra.Command {
	return []*cobra.Command{
		NewPlatformsCmd(),
		NewProfilesCmd(),
		NewAttribCmd(),
		NewCheckEncodeCmd(),
		NewCheckDecodeCmd(),
		NewROICmd(),
		NewReportCmd(),
		NewDiffCmd(),
		NewVersionCmd(),
	}
}
