// Package caps resolves what a media hardware generation can decode and
// encode, and validates requests against its limits.
//
// A capability object is created per driver session through a Registry,
// initialized once with Init, and read-only afterwards:
//
//	reg := caps.NewRegistry(logger)
//	if err := caps.RegisterBuiltins(reg); err != nil { ... }
//	c, err := reg.Create(&caps.Context{Platform: sku.PlatformCannonlake, Features: table})
//	if err := c.Init(); err != nil { ... }
//	v, err := c.GetAttributeValue(caps.ProfileHEVCMain, caps.EntrypointEncSlice, caps.AttribEncMaxRefFrames)
package caps

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/smazurov/mediacaps/internal/logging"
	"github.com/smazurov/mediacaps/internal/sku"
)

// FeatureTable answers SKU flag queries. *sku.Table implements it.
type FeatureTable interface {
	HasFeature(f sku.Feature) bool
}

// DumpAttrCapsTable is the dump attribute under which the loaded capability
// table is reported after Init.
const DumpAttrCapsTable = "DumpCapsTable"

// DumpRequest asks a diagnostic sink to dump a named buffer.
type DumpRequest struct {
	Frame uint32
	Attr  string
	Name  string
	Data  []byte
}

// DumpReporter receives dump requests. The sink decides whether dumping is
// enabled and performs any I/O.
type DumpReporter interface {
	Report(req DumpRequest) error
}

// Context carries what a generation factory needs to build a capability object.
type Context struct {
	Platform sku.Platform
	Features FeatureTable
	Reporter DumpReporter
	Logger   *slog.Logger
}

// Caps is the capability interface shared by every generation.
type Caps interface {
	Init() error
	Platform() sku.Platform
	Generation() string
	Limits() Limits

	GetAttributeValue(profile Profile, entrypoint Entrypoint, attrib AttribType) (uint32, error)
	GetPlatformSpecificAttrib(profile Profile, entrypoint Entrypoint, attrib AttribType) (uint32, error)
	CheckEncodeResolution(profile Profile, width, height uint32) error
	CheckDecodeResolution(mode CodecMode, profile Profile, width, height uint32) error
	QueryAVCROIMaxNum(rcMode RCMode) (maxNum int, isDeltaQP bool, err error)

	Entries() []ProfileEntry
	Profiles() []Profile
	Entrypoints(profile Profile) []Entrypoint
	Entry(profile Profile, entrypoint Entrypoint) (ProfileEntry, bool)
	EncConfigs(profile Profile, entrypoint Entrypoint) ([]EncConfig, error)
	DecConfigs(profile Profile, entrypoint Entrypoint) ([]DecConfig, error)
}

var _ Caps = (*MediaCaps)(nil)

type entryKey struct {
	profile    Profile
	entrypoint Entrypoint
}

// MediaCaps is the capability object of one generation.
type MediaCaps struct {
	gen      *Generation
	platform sku.Platform
	features FeatureTable
	reporter DumpReporter
	logger   *slog.Logger

	entries    map[entryKey]*ProfileEntry
	order      []entryKey
	encConfigs []EncConfig
	decConfigs []DecConfig

	loading bool
	frozen  bool
}

// NewMediaCaps creates an uninitialized capability object for a generation.
func NewMediaCaps(gen *Generation, ctx *Context) (*MediaCaps, error) {
	if gen == nil || ctx == nil {
		return nil, NewError(StatusInvalidParameter, "NewMediaCaps", "nil generation or context")
	}
	if ctx.Features == nil {
		return nil, NewError(StatusInvalidParameter, "NewMediaCaps", "nil feature table")
	}

	logger := ctx.Logger
	if logger == nil {
		logger = logging.GetLogger("caps")
	}

	return &MediaCaps{
		gen:      gen.clone(),
		platform: ctx.Platform,
		features: ctx.Features,
		reporter: ctx.Reporter,
		logger:   logger.With("platform", ctx.Platform.String(), "generation", gen.Name),
		entries:  make(map[entryKey]*ProfileEntry),
	}, nil
}

// Platform returns the platform the object was created for.
func (c *MediaCaps) Platform() sku.Platform {
	return c.platform
}

// Generation returns the generation name.
func (c *MediaCaps) Generation() string {
	return c.gen.Name
}

// Limits returns a copy of the static limits of the generation.
func (c *MediaCaps) Limits() Limits {
	return c.gen.Limits.Clone()
}

// Init loads every profile entrypoint and freezes the table. A failed Init
// leaves already registered entries in place and the object unusable.
func (c *MediaCaps) Init() error {
	if c.loading || c.frozen {
		return ErrAlreadyInitialized
	}
	c.loading = true

	if err := c.LoadProfileEntrypoints(); err != nil {
		c.logger.Error("Failed to initialize capabilities", "error", err)
		return fmt.Errorf("failed to initialize caps: %w", err)
	}
	c.frozen = true

	c.logger.Info("Capabilities loaded",
		"entries", len(c.order),
		"enc_configs", len(c.encConfigs),
		"dec_configs", len(c.decConfigs))

	c.reportTable()
	return nil
}

// Initialized reports whether Init completed.
func (c *MediaCaps) Initialized() bool {
	return c.frozen
}

// GetAttributeValue returns the attribute stored for a registered
// (profile, entrypoint). Attributes missing from the entry report
// StatusUnsupportedAttribute.
func (c *MediaCaps) GetAttributeValue(profile Profile, entrypoint Entrypoint, attrib AttribType) (uint32, error) {
	const op = "GetAttributeValue"

	if !c.frozen {
		return 0, ErrNotInitialized
	}
	switch {
	case !attrib.Valid():
		return 0, NewError(StatusInvalidParameter, op, attrib.String())
	case !profile.Valid():
		return 0, NewError(StatusInvalidParameter, op, profile.String())
	case !entrypoint.Valid():
		return 0, NewError(StatusInvalidParameter, op, entrypoint.String())
	}

	entry, ok := c.entries[entryKey{profile, entrypoint}]
	if !ok {
		if c.hasProfile(profile) {
			return 0, NewError(StatusUnsupportedEntrypoint, op, fmt.Sprintf("%s/%s", profile, entrypoint))
		}
		return 0, NewError(StatusUnsupportedProfile, op, profile.String())
	}

	if v, found := entry.Attributes.Get(attrib); found {
		return v, nil
	}
	return 0, NewError(StatusUnsupportedAttribute, op, fmt.Sprintf("%s not applicable to %s/%s", attrib, profile, entrypoint))
}

func (c *MediaCaps) hasProfile(profile Profile) bool {
	for _, k := range c.order {
		if k.profile == profile {
			return true
		}
	}
	return false
}

// Entries returns the registered entries in registration order.
func (c *MediaCaps) Entries() []ProfileEntry {
	out := make([]ProfileEntry, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, *c.entries[k])
	}
	return out
}

// Entry returns the entry registered for (profile, entrypoint).
func (c *MediaCaps) Entry(profile Profile, entrypoint Entrypoint) (ProfileEntry, bool) {
	e, ok := c.entries[entryKey{profile, entrypoint}]
	if !ok {
		return ProfileEntry{}, false
	}
	return *e, true
}

// Profiles returns the distinct registered profiles in registration order.
func (c *MediaCaps) Profiles() []Profile {
	seen := make(map[Profile]bool)
	var out []Profile
	for _, k := range c.order {
		if !seen[k.profile] {
			seen[k.profile] = true
			out = append(out, k.profile)
		}
	}
	return out
}

// Entrypoints returns the entrypoints registered for a profile.
func (c *MediaCaps) Entrypoints(profile Profile) []Entrypoint {
	var out []Entrypoint
	for _, k := range c.order {
		if k.profile == profile {
			out = append(out, k.entrypoint)
		}
	}
	return out
}

// reportTable hands a text rendering of the table to the dump reporter.
func (c *MediaCaps) reportTable() {
	if c.reporter == nil {
		return
	}

	var buf bytes.Buffer
	for _, k := range c.order {
		e := c.entries[k]
		fmt.Fprintf(&buf, "%s %s start=%d count=%d\n", e.Profile, e.Entrypoint, e.ConfigStart, e.ConfigCount)
		for _, a := range e.Attributes.List() {
			fmt.Fprintf(&buf, "  %s=0x%08x\n", a.Type, a.Value)
		}
	}

	req := DumpRequest{
		Attr: DumpAttrCapsTable,
		Name: "CapsTable",
		Data: buf.Bytes(),
	}
	if err := c.reporter.Report(req); err != nil {
		c.logger.Warn("Failed to report capability table", "error", err)
	}
}
