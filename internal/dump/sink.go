// Package dump writes diagnostic buffers of a driver session to disk.
//
// Every dump is tagged with an attribute such as DumpCmdBuffer. Only
// attributes enabled in the Config, inside the configured frame range,
// produce files; everything else is a silent no-op.
package dump

import (
	"github.com/smazurov/mediacaps/internal/caps"
)

// Sink is the diagnostic interface a session reports through.
type Sink interface {
	DumpIsEnabled(attr string) bool
	Report(req caps.DumpRequest) error
}

var (
	_ Sink = NopSink{}
	_ Sink = (*FileSink)(nil)
)

// NopSink discards every request.
type NopSink struct{}

// DumpIsEnabled always returns false.
func (NopSink) DumpIsEnabled(string) bool { return false }

// Report does nothing.
func (NopSink) Report(caps.DumpRequest) error { return nil }
