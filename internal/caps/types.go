package caps

import (
	"fmt"
	"strings"
)

// Profile is a codec standard plus sub-profile.
type Profile int

const (
	ProfileNone Profile = iota
	ProfileMPEG2Simple
	ProfileMPEG2Main
	ProfileH264ConstrainedBaseline
	ProfileH264Main
	ProfileH264High
	ProfileVC1Simple
	ProfileVC1Main
	ProfileVC1Advanced
	ProfileJPEGBaseline
	ProfileVP8Version0_3
	ProfileHEVCMain
	ProfileHEVCMain10
	ProfileVP9Profile0
	ProfileVP9Profile2
	profileCount
)

var profileNames = [profileCount]string{
	ProfileNone:                    "None",
	ProfileMPEG2Simple:             "MPEG2Simple",
	ProfileMPEG2Main:               "MPEG2Main",
	ProfileH264ConstrainedBaseline: "H264ConstrainedBaseline",
	ProfileH264Main:                "H264Main",
	ProfileH264High:                "H264High",
	ProfileVC1Simple:               "VC1Simple",
	ProfileVC1Main:                 "VC1Main",
	ProfileVC1Advanced:             "VC1Advanced",
	ProfileJPEGBaseline:            "JPEGBaseline",
	ProfileVP8Version0_3:           "VP8Version0_3",
	ProfileHEVCMain:                "HEVCMain",
	ProfileHEVCMain10:              "HEVCMain10",
	ProfileVP9Profile0:             "VP9Profile0",
	ProfileVP9Profile2:             "VP9Profile2",
}

// AllProfiles returns every profile in the enumeration.
func AllProfiles() []Profile {
	out := make([]Profile, 0, profileCount)
	for p := ProfileNone; p < profileCount; p++ {
		out = append(out, p)
	}
	return out
}

// Valid reports whether p is inside the enumeration.
func (p Profile) Valid() bool {
	return p >= ProfileNone && p < profileCount
}

func (p Profile) String() string {
	if p.Valid() {
		return profileNames[p]
	}
	return fmt.Sprintf("Profile(%d)", int(p))
}

// ParseProfile parses a profile name case-insensitively.
func ParseProfile(s string) (Profile, error) {
	for p := ProfileNone; p < profileCount; p++ {
		if strings.EqualFold(profileNames[p], s) {
			return p, nil
		}
	}
	return ProfileNone, fmt.Errorf("%w: unknown profile %q", ErrInvalidParameter, s)
}

// CodecFamily groups profiles of the same codec standard.
type CodecFamily int

const (
	FamilyNone CodecFamily = iota
	FamilyMPEG2
	FamilyAVC
	FamilyVC1
	FamilyJPEG
	FamilyVP8
	FamilyHEVC
	FamilyVP9
)

var familyNames = map[CodecFamily]string{
	FamilyNone:  "none",
	FamilyMPEG2: "mpeg2",
	FamilyAVC:   "avc",
	FamilyVC1:   "vc1",
	FamilyJPEG:  "jpeg",
	FamilyVP8:   "vp8",
	FamilyHEVC:  "hevc",
	FamilyVP9:   "vp9",
}

func (f CodecFamily) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("CodecFamily(%d)", int(f))
}

// Family returns the codec family of the profile.
func (p Profile) Family() CodecFamily {
	switch p {
	case ProfileMPEG2Simple, ProfileMPEG2Main:
		return FamilyMPEG2
	case ProfileH264ConstrainedBaseline, ProfileH264Main, ProfileH264High:
		return FamilyAVC
	case ProfileVC1Simple, ProfileVC1Main, ProfileVC1Advanced:
		return FamilyVC1
	case ProfileJPEGBaseline:
		return FamilyJPEG
	case ProfileVP8Version0_3:
		return FamilyVP8
	case ProfileHEVCMain, ProfileHEVCMain10:
		return FamilyHEVC
	case ProfileVP9Profile0, ProfileVP9Profile2:
		return FamilyVP9
	default:
		return FamilyNone
	}
}

// IsAvc reports whether p is an H.264 profile.
func (p Profile) IsAvc() bool { return p.Family() == FamilyAVC }

// IsHevc reports whether p is an HEVC profile.
func (p Profile) IsHevc() bool { return p.Family() == FamilyHEVC }

// Is10Bit reports whether p carries 10-bit content.
func (p Profile) Is10Bit() bool {
	return p == ProfileHEVCMain10 || p == ProfileVP9Profile2
}

// DecodeMode maps a profile to the decoder codec mode that handles it.
func (p Profile) DecodeMode() CodecMode {
	switch p.Family() {
	case FamilyMPEG2:
		return DecodeModeMPEG2VLD
	case FamilyAVC:
		return DecodeModeAVCVLD
	case FamilyVC1:
		return DecodeModeVC1VLD
	case FamilyJPEG:
		return DecodeModeJPEG
	case FamilyVP8:
		return DecodeModeVP8VLD
	case FamilyHEVC:
		return DecodeModeHEVCVLD
	case FamilyVP9:
		return DecodeModeVP9VLD
	default:
		return DecodeModeNone
	}
}

// Entrypoint is the operation mode requested for a profile.
type Entrypoint int

const (
	EntrypointVLD Entrypoint = iota + 1
	EntrypointEncSlice
	EntrypointEncPicture
	EntrypointEncSliceLP
	EntrypointVideoProc
	entrypointEnd
)

var entrypointNames = map[Entrypoint]string{
	EntrypointVLD:        "VLD",
	EntrypointEncSlice:   "EncSlice",
	EntrypointEncPicture: "EncPicture",
	EntrypointEncSliceLP: "EncSliceLP",
	EntrypointVideoProc:  "VideoProc",
}

// Valid reports whether e is inside the enumeration.
func (e Entrypoint) Valid() bool {
	return e >= EntrypointVLD && e < entrypointEnd
}

func (e Entrypoint) String() string {
	if name, ok := entrypointNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Entrypoint(%d)", int(e))
}

// IsEncode reports whether e is one of the encode entrypoints.
func (e Entrypoint) IsEncode() bool {
	return e == EntrypointEncSlice || e == EntrypointEncPicture || e == EntrypointEncSliceLP
}

// ParseEntrypoint parses an entrypoint name case-insensitively.
// "decode", "encode" and "lp" are accepted as aliases.
func ParseEntrypoint(s string) (Entrypoint, error) {
	switch strings.ToLower(s) {
	case "decode":
		return EntrypointVLD, nil
	case "encode":
		return EntrypointEncSlice, nil
	case "lp", "encode-lp":
		return EntrypointEncSliceLP, nil
	}
	for e, name := range entrypointNames {
		if strings.EqualFold(name, s) {
			return e, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown entrypoint %q", ErrInvalidParameter, s)
}

// AttribType is a capability dimension that can be queried per profile and entrypoint.
type AttribType int

const (
	AttribRTFormat AttribType = iota
	AttribRateControl
	AttribDecSliceMode
	AttribDecProcessing
	AttribEncPackedHeaders
	AttribEncMaxRefFrames
	AttribEncMaxSlices
	AttribEncSliceStructure
	AttribEncQuantization
	AttribEncIntraRefresh
	AttribEncSkipFrame
	AttribEncROI
	AttribEncRateControlExt
	AttribEncParallelRateControl
	AttribEncDirtyRect
	AttribProcessingRate
	AttribCustomRoundingControl
	AttribMaxPictureWidth
	AttribMaxPictureHeight
	attribCount
)

var attribNames = [attribCount]string{
	AttribRTFormat:               "RTFormat",
	AttribRateControl:            "RateControl",
	AttribDecSliceMode:           "DecSliceMode",
	AttribDecProcessing:          "DecProcessing",
	AttribEncPackedHeaders:       "EncPackedHeaders",
	AttribEncMaxRefFrames:        "EncMaxRefFrames",
	AttribEncMaxSlices:           "EncMaxSlices",
	AttribEncSliceStructure:      "EncSliceStructure",
	AttribEncQuantization:        "EncQuantization",
	AttribEncIntraRefresh:        "EncIntraRefresh",
	AttribEncSkipFrame:           "EncSkipFrame",
	AttribEncROI:                 "EncROI",
	AttribEncRateControlExt:      "EncRateControlExt",
	AttribEncParallelRateControl: "EncParallelRateControl",
	AttribEncDirtyRect:           "EncDirtyRect",
	AttribProcessingRate:         "ProcessingRate",
	AttribCustomRoundingControl:  "CustomRoundingControl",
	AttribMaxPictureWidth:        "MaxPictureWidth",
	AttribMaxPictureHeight:       "MaxPictureHeight",
}

// AllAttribTypes returns every attribute type in the enumeration.
func AllAttribTypes() []AttribType {
	out := make([]AttribType, 0, attribCount)
	for a := AttribType(0); a < attribCount; a++ {
		out = append(out, a)
	}
	return out
}

// Valid reports whether a is inside the enumeration.
func (a AttribType) Valid() bool {
	return a >= 0 && a < attribCount
}

func (a AttribType) String() string {
	if a.Valid() {
		return attribNames[a]
	}
	return fmt.Sprintf("AttribType(%d)", int(a))
}

// ParseAttribType parses an attribute name case-insensitively.
func ParseAttribType(s string) (AttribType, error) {
	for a := AttribType(0); a < attribCount; a++ {
		if strings.EqualFold(attribNames[a], s) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown attribute %q", ErrInvalidParameter, s)
}

// Attribute values, matching libva.
const (
	RTFormatYUV420    uint32 = 0x00000001
	RTFormatYUV422    uint32 = 0x00000002
	RTFormatYUV444    uint32 = 0x00000004
	RTFormatYUV400    uint32 = 0x00000010
	RTFormatYUV420_10 uint32 = 0x00000100

	DecSliceModeNormal uint32 = 0x00000001
	DecSliceModeBase   uint32 = 0x00000002

	DecProcessingNone uint32 = 0
	DecProcessing     uint32 = 1

	PackedHeaderSequence uint32 = 0x00000001
	PackedHeaderPicture  uint32 = 0x00000002
	PackedHeaderSlice    uint32 = 0x00000004
	PackedHeaderMisc     uint32 = 0x00000008
	PackedHeaderRawData  uint32 = 0x00000010

	SliceStructurePowerOfTwoRows       uint32 = 0x00000001
	SliceStructureArbitraryMacroblocks uint32 = 0x00000002
	SliceStructureEqualRows            uint32 = 0x00000004

	QuantizationTrellisSupported uint32 = 0x00000001

	IntraRefreshNone          uint32 = 0
	IntraRefreshRollingColumn uint32 = 1

	ProcessingRateEncode uint32 = 0x00000002
	ProcessingRateDecode uint32 = 0x00000001

	// AttribNotSupported is reported for attributes absent on this hardware.
	AttribNotSupported uint32 = 0x80000000
)

// ROI attribute packing: bit 9 priority level support, bit 8 QP delta
// support, low byte region count.
const (
	roiPriorityLevelShift = 9
	roiQPDeltaShift       = 8
	roiCountMask          = 0xff
)

// PackROI packs an ROI capability word.
func PackROI(count uint32, priorityLevel, qpDelta bool) uint32 {
	v := count & roiCountMask
	if priorityLevel {
		v |= 1 << roiPriorityLevelShift
	}
	if qpDelta {
		v |= 1 << roiQPDeltaShift
	}
	return v
}

// UnpackROI is the inverse of PackROI.
func UnpackROI(v uint32) (count uint32, priorityLevel, qpDelta bool) {
	return v & roiCountMask, v&(1<<roiPriorityLevelShift) != 0, v&(1<<roiQPDeltaShift) != 0
}

// PackRefFrames packs L0 references in the low 16 bits and L1 in the high 16 bits.
func PackRefFrames(l0, l1 uint32) uint32 {
	return (l0 & 0xffff) | (l1&0xffff)<<16
}

// UnpackRefFrames is the inverse of PackRefFrames.
func UnpackRefFrames(v uint32) (l0, l1 uint32) {
	return v & 0xffff, v >> 16
}

// RCMode is a rate-control bitmask. A base mode may be combined with
// modifier flags such as RCMB or RCParallel.
type RCMode uint32

const (
	RCNone           RCMode = 0x00000001
	RCCBR            RCMode = 0x00000002
	RCVBR            RCMode = 0x00000004
	RCVCM            RCMode = 0x00000008
	RCCQP            RCMode = 0x00000010
	RCVBRConstrained RCMode = 0x00000020
	RCICQ            RCMode = 0x00000040
	RCMB             RCMode = 0x00000080
	RCCFS            RCMode = 0x00000100
	RCParallel       RCMode = 0x00000200
	RCQVBR           RCMode = 0x00000400
	RCAVBR           RCMode = 0x00000800
)

// RCModes is the ordered rate-control table used by the encode loaders.
// Indices kernelModeStart..kernelModeEnd-1 are the modes that need media kernels.
var RCModes = [...]RCMode{
	RCCQP,
	RCCBR | RCMB,
	RCVBR | RCMB,
	RCCBR,
	RCVBR,
	RCICQ,
	RCVCM,
	RCQVBR,
	RCAVBR,
}

const (
	kernelModeStart = 3
	kernelModeEnd   = 7
)

var rcNames = []struct {
	mode RCMode
	name string
}{
	{RCNone, "NONE"},
	{RCCBR, "CBR"},
	{RCVBR, "VBR"},
	{RCVCM, "VCM"},
	{RCCQP, "CQP"},
	{RCVBRConstrained, "VBR_CONSTRAINED"},
	{RCICQ, "ICQ"},
	{RCMB, "MB"},
	{RCCFS, "CFS"},
	{RCParallel, "PARALLEL"},
	{RCQVBR, "QVBR"},
	{RCAVBR, "AVBR"},
}

func (m RCMode) String() string {
	if m == 0 {
		return "0"
	}
	var parts []string
	rest := m
	for _, n := range rcNames {
		if m&n.mode != 0 {
			parts = append(parts, n.name)
			rest &^= n.mode
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseRCMode parses names like "CQP" or "CBR|PARALLEL".
func ParseRCMode(s string) (RCMode, error) {
	var m RCMode
	for _, part := range strings.Split(s, "|") {
		part = strings.ToUpper(strings.TrimSpace(part))
		found := false
		for _, n := range rcNames {
			if n.name == part {
				m |= n.mode
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: unknown rate control mode %q", ErrInvalidParameter, part)
		}
	}
	return m, nil
}

// CodecMode selects the decoder used for the decode resolution check.
type CodecMode int

const (
	DecodeModeNone CodecMode = iota
	DecodeModeMPEG2VLD
	DecodeModeVC1VLD
	DecodeModeAVCVLD
	DecodeModeJPEG
	DecodeModeVP8VLD
	DecodeModeHEVCVLD
	DecodeModeVP9VLD
)

var codecModeNames = map[CodecMode]string{
	DecodeModeNone:     "none",
	DecodeModeMPEG2VLD: "mpeg2",
	DecodeModeVC1VLD:   "vc1",
	DecodeModeAVCVLD:   "avc",
	DecodeModeJPEG:     "jpeg",
	DecodeModeVP8VLD:   "vp8",
	DecodeModeHEVCVLD:  "hevc",
	DecodeModeVP9VLD:   "vp9",
}

func (m CodecMode) String() string {
	if name, ok := codecModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("CodecMode(%d)", int(m))
}

// ParseCodecMode parses a codec mode name such as "hevc".
func ParseCodecMode(s string) (CodecMode, error) {
	for m, name := range codecModeNames {
		if strings.EqualFold(name, s) {
			return m, nil
		}
	}
	return DecodeModeNone, fmt.Errorf("%w: unknown codec mode %q", ErrInvalidParameter, s)
}
