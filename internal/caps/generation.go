package caps

import (
	"maps"
	"slices"

	"github.com/smazurov/mediacaps/internal/sku"
)

// Size is a width/height pair in pixels.
type Size struct {
	Width  uint32 `json:"width" toml:"width" yaml:"width"`
	Height uint32 `json:"height" toml:"height" yaml:"height"`
}

// ResolutionLimits bounds the frame size of one codec family.
type ResolutionLimits struct {
	MinWidth  uint32 `json:"min_width" toml:"min_width" yaml:"min_width"`
	MaxWidth  uint32 `json:"max_width" toml:"max_width" yaml:"max_width"`
	MinHeight uint32 `json:"min_height" toml:"min_height" yaml:"min_height"`
	MaxHeight uint32 `json:"max_height" toml:"max_height" yaml:"max_height"`
}

// Contains reports whether width x height lies inside the bounds.
func (l ResolutionLimits) Contains(width, height uint32) bool {
	return width >= l.MinWidth && width <= l.MaxWidth &&
		height >= l.MinHeight && height <= l.MaxHeight
}

// Limits holds the static per-generation numeric limits.
type Limits struct {
	// Encode applies to every encode profile without its own bounds (up to 4K).
	Encode     ResolutionLimits `json:"encode" toml:"encode" yaml:"encode"`
	EncodeHEVC ResolutionLimits `json:"encode_hevc" toml:"encode_hevc" yaml:"encode_hevc"`
	EncodeJPEG ResolutionLimits `json:"encode_jpeg" toml:"encode_jpeg" yaml:"encode_jpeg"`

	// DecodeMax is keyed by codec mode; modes not listed use DecodeDefault.
	DecodeMax     map[CodecMode]Size `json:"-" toml:"-" yaml:"-"`
	DecodeDefault Size               `json:"decode_default" toml:"decode_default" yaml:"decode_default"`

	MacroblockWidth  uint32 `json:"macroblock_width" toml:"macroblock_width" yaml:"macroblock_width"`
	MacroblockHeight uint32 `json:"macroblock_height" toml:"macroblock_height" yaml:"macroblock_height"`
	VC1HeightAlign   uint32 `json:"vc1_height_align" toml:"vc1_height_align" yaml:"vc1_height_align"`

	// AVC region-of-interest capacity in CQP and BRC modes.
	AVCMaxROI    uint32 `json:"avc_max_roi" toml:"avc_max_roi" yaml:"avc_max_roi"`
	AVCMaxROIBRC uint32 `json:"avc_max_roi_brc" toml:"avc_max_roi_brc" yaml:"avc_max_roi_brc"`

	// HEVC VME reference limits.
	HEVCMaxL0Ref uint32 `json:"hevc_max_l0_ref" toml:"hevc_max_l0_ref" yaml:"hevc_max_l0_ref"`
	HEVCMaxL1Ref uint32 `json:"hevc_max_l1_ref" toml:"hevc_max_l1_ref" yaml:"hevc_max_l1_ref"`

	EncMaxSlices uint32 `json:"enc_max_slices" toml:"enc_max_slices" yaml:"enc_max_slices"`
}

// DecodeMaxFor returns the decode bound of a codec mode.
func (l Limits) DecodeMaxFor(mode CodecMode) Size {
	if s, ok := l.DecodeMax[mode]; ok {
		return s
	}
	return l.DecodeDefault
}

// EncodeLimitsFor returns the encode bounds of a profile.
func (l Limits) EncodeLimitsFor(p Profile) ResolutionLimits {
	switch p.Family() {
	case FamilyJPEG:
		return l.EncodeJPEG
	case FamilyHEVC:
		return l.EncodeHEVC
	default:
		return l.Encode
	}
}

// Generation is the data record behind one hardware generation. Each
// generation variant is a Generation value; behavior differences are carried
// by Limits, resolver overrides and the loader order.
type Generation struct {
	Name      string
	Platforms []sku.Platform
	Limits    Limits

	// DecodeProcessing enables the decode processing attribute for AVC and HEVC.
	DecodeProcessing bool

	// Resolvers override the base platform-specific attribute rules.
	Resolvers map[AttribType]attribResolver

	// Loaders run in order during Init. Nil means DefaultLoaders.
	Loaders []Loader
}

// Clone returns a copy that shares no maps or slices with l.
func (l Limits) Clone() Limits {
	l.DecodeMax = maps.Clone(l.DecodeMax)
	return l
}

// clone copies g so one capability object never mutates another's record.
func (g *Generation) clone() *Generation {
	cp := *g
	cp.Platforms = slices.Clone(g.Platforms)
	cp.Limits = g.Limits.Clone()
	cp.Resolvers = maps.Clone(g.Resolvers)
	cp.Loaders = slices.Clone(g.Loaders)
	return &cp
}

func (g *Generation) loaders() []Loader {
	if g.Loaders != nil {
		return g.Loaders
	}
	return DefaultLoaders
}

// Common limits shared by gen9 and later.
const (
	encMinWidth    = 32
	encMinHeight   = 32
	encMax4kWidth  = 4096
	encMax4kHeight = 4096

	jpegEncMinWidth  = 16
	jpegEncMinHeight = 16
	jpegEncMaxWidth  = 16384
	jpegEncMaxHeight = 16384

	macroblockSize = 16
	vc1HeightAlign = 32

	avcMaxROI    = 4
	avcMaxROIBRC = 8
)

func baseLimits() Limits {
	return Limits{
		Encode: ResolutionLimits{
			MinWidth:  encMinWidth,
			MaxWidth:  encMax4kWidth,
			MinHeight: encMinHeight,
			MaxHeight: encMax4kHeight,
		},
		EncodeHEVC: ResolutionLimits{
			MinWidth:  encMinWidth,
			MaxWidth:  encMax4kWidth,
			MinHeight: encMinHeight,
			MaxHeight: encMax4kHeight,
		},
		EncodeJPEG: ResolutionLimits{
			MinWidth:  jpegEncMinWidth,
			MaxWidth:  jpegEncMaxWidth,
			MinHeight: jpegEncMinHeight,
			MaxHeight: jpegEncMaxHeight,
		},
		DecodeMax: map[CodecMode]Size{
			DecodeModeMPEG2VLD: {Width: 2048, Height: 2048},
			DecodeModeVC1VLD:   {Width: 3840, Height: 3840},
			DecodeModeJPEG:     {Width: 16384, Height: 16384},
			DecodeModeHEVCVLD:  {Width: 4096, Height: 4096},
			DecodeModeVP9VLD:   {Width: 4096, Height: 4096},
		},
		DecodeDefault:    Size{Width: 4096, Height: 4096},
		MacroblockWidth:  macroblockSize,
		MacroblockHeight: macroblockSize,
		VC1HeightAlign:   vc1HeightAlign,
		AVCMaxROI:        avcMaxROI,
		AVCMaxROIBRC:     avcMaxROIBRC,
		HEVCMaxL0Ref:     3,
		HEVCMaxL1Ref:     1,
		EncMaxSlices:     150,
	}
}
