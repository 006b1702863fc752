package caps

import (
	"errors"
	"fmt"
)

// Attrib is one resolved attribute value.
type Attrib struct {
	Type  AttribType `json:"type"`
	Value uint32     `json:"value"`
}

// AttribMap is the ordered attribute list of one profile entry. It is built
// once during Init and read-only afterwards.
type AttribMap struct {
	attrs []Attrib
}

func (m *AttribMap) set(t AttribType, v uint32) {
	for i := range m.attrs {
		if m.attrs[i].Type == t {
			m.attrs[i].Value = v
			return
		}
	}
	m.attrs = append(m.attrs, Attrib{Type: t, Value: v})
}

// Get returns the value stored for t.
func (m *AttribMap) Get(t AttribType) (uint32, bool) {
	if m == nil {
		return 0, false
	}
	for _, a := range m.attrs {
		if a.Type == t {
			return a.Value, true
		}
	}
	return 0, false
}

// List returns a copy of the attributes in insertion order.
func (m *AttribMap) List() []Attrib {
	if m == nil {
		return nil
	}
	out := make([]Attrib, len(m.attrs))
	copy(out, m.attrs)
	return out
}

// Len returns the number of attributes.
func (m *AttribMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.attrs)
}

// attribResolver computes one platform-specific attribute. Resolvers are pure:
// they read only the generation limits and the feature table.
type attribResolver func(c *MediaCaps, profile Profile, entrypoint Entrypoint) (uint32, error)

// platformResolvers are the base rules. A Generation may replace any of them.
var platformResolvers = map[AttribType]attribResolver{
	AttribEncMaxRefFrames:       resolveEncMaxRefFrames,
	AttribDecProcessing:         resolveDecProcessing,
	AttribEncIntraRefresh:       resolveEncIntraRefresh,
	AttribEncROI:                resolveEncROI,
	AttribCustomRoundingControl: resolveZero,
}

// platformEncAttribs are appended to every encode attribute list.
var platformEncAttribs = []AttribType{
	AttribEncMaxRefFrames,
	AttribEncIntraRefresh,
	AttribEncROI,
	AttribCustomRoundingControl,
}

func notApplicable(attrib AttribType, profile Profile, entrypoint Entrypoint) error {
	return &Error{
		Status:  StatusUnsupportedAttribute,
		Op:      "GetPlatformSpecificAttrib",
		Message: fmt.Sprintf("%s not applicable to %s/%s", attrib, profile, entrypoint),
	}
}

// appliesTo reports whether a platform-specific attribute belongs to the
// entrypoint's direction.
func appliesTo(attrib AttribType, entrypoint Entrypoint) bool {
	switch attrib {
	case AttribDecProcessing:
		return entrypoint == EntrypointVLD
	case AttribEncMaxRefFrames, AttribEncIntraRefresh, AttribEncROI, AttribCustomRoundingControl:
		return entrypoint.IsEncode()
	}
	return true
}

func resolveEncMaxRefFrames(c *MediaCaps, profile Profile, entrypoint Entrypoint) (uint32, error) {
	if entrypoint == EntrypointEncSliceLP || !profile.IsHevc() {
		return 0, notApplicable(AttribEncMaxRefFrames, profile, entrypoint)
	}
	return PackRefFrames(c.gen.Limits.HEVCMaxL0Ref, c.gen.Limits.HEVCMaxL1Ref), nil
}

func resolveDecProcessing(c *MediaCaps, profile Profile, _ Entrypoint) (uint32, error) {
	if c.gen.DecodeProcessing && (profile.IsAvc() || profile.IsHevc()) {
		return DecProcessing, nil
	}
	return DecProcessingNone, nil
}

func resolveEncIntraRefresh(_ *MediaCaps, profile Profile, _ Entrypoint) (uint32, error) {
	if profile.IsAvc() {
		return IntraRefreshRollingColumn, nil
	}
	return IntraRefreshNone, nil
}

// resolveEncROI reports the BRC capacity, the larger of the CQP and BRC limits.
func resolveEncROI(c *MediaCaps, profile Profile, entrypoint Entrypoint) (uint32, error) {
	if entrypoint == EntrypointEncSliceLP {
		return 0, notApplicable(AttribEncROI, profile, entrypoint)
	}
	if profile.IsAvc() {
		return PackROI(c.gen.Limits.AVCMaxROIBRC, true, true), nil
	}
	return 0, nil
}

func resolveZero(_ *MediaCaps, _ Profile, _ Entrypoint) (uint32, error) {
	return 0, nil
}

// GetPlatformSpecificAttrib resolves a generation-specific attribute.
// Attributes that are architecturally inapplicable report
// StatusUnsupportedAttribute; types outside the enumeration report
// StatusInvalidParameter.
func (c *MediaCaps) GetPlatformSpecificAttrib(profile Profile, entrypoint Entrypoint, attrib AttribType) (uint32, error) {
	const op = "GetPlatformSpecificAttrib"

	switch {
	case !attrib.Valid():
		return 0, NewError(StatusInvalidParameter, op, attrib.String())
	case !profile.Valid():
		return 0, NewError(StatusInvalidParameter, op, profile.String())
	case !entrypoint.Valid():
		return 0, NewError(StatusInvalidParameter, op, entrypoint.String())
	}

	resolve, ok := c.gen.Resolvers[attrib]
	if !ok {
		resolve, ok = platformResolvers[attrib]
	}
	if !ok {
		return 0, NewError(StatusUnsupportedAttribute, op, attrib.String()+" is not platform specific")
	}
	if !appliesTo(attrib, entrypoint) {
		return 0, notApplicable(attrib, profile, entrypoint)
	}
	return resolve(c, profile, entrypoint)
}

// CreateEncAttributes builds the attribute list of an encode entry.
func (c *MediaCaps) CreateEncAttributes(profile Profile, entrypoint Entrypoint) (*AttribMap, error) {
	m := &AttribMap{}
	family := profile.Family()

	rt := RTFormatYUV420
	switch {
	case family == FamilyJPEG:
		rt = RTFormatYUV420 | RTFormatYUV422 | RTFormatYUV444 | RTFormatYUV400
	case profile.Is10Bit():
		rt |= RTFormatYUV420_10
	}
	m.set(AttribRTFormat, rt)

	var rc uint32
	var parallel uint32
	for _, mode := range c.encRCModes(profile, entrypoint) {
		rc |= uint32(mode)
		if mode&RCParallel != 0 {
			parallel++
		}
	}
	m.set(AttribRateControl, rc)

	switch family {
	case FamilyAVC, FamilyHEVC:
		m.set(AttribEncPackedHeaders, PackedHeaderSequence|PackedHeaderPicture|PackedHeaderSlice|PackedHeaderMisc|PackedHeaderRawData)
	case FamilyJPEG:
		m.set(AttribEncPackedHeaders, PackedHeaderRawData)
	default:
		m.set(AttribEncPackedHeaders, PackedHeaderSequence|PackedHeaderPicture)
	}

	limits := c.gen.Limits.EncodeLimitsFor(profile)
	m.set(AttribMaxPictureWidth, limits.MaxWidth)
	m.set(AttribMaxPictureHeight, limits.MaxHeight)

	if family == FamilyAVC || family == FamilyHEVC {
		m.set(AttribEncMaxSlices, c.gen.Limits.EncMaxSlices)
		if entrypoint == EntrypointEncSliceLP {
			m.set(AttribEncSliceStructure, SliceStructureEqualRows)
		} else {
			m.set(AttribEncSliceStructure, SliceStructureArbitraryMacroblocks|SliceStructureEqualRows|SliceStructurePowerOfTwoRows)
			m.set(AttribEncQuantization, QuantizationTrellisSupported)
		}
		m.set(AttribEncSkipFrame, 1)
	}

	if family == FamilyAVC && entrypoint == EntrypointEncSlice {
		// bits 0-7 max temporal layers minus one, bit 8 per-layer bitrate control
		m.set(AttribEncRateControlExt, 3|1<<8)
	}
	if family == FamilyHEVC && entrypoint == EntrypointEncSliceLP {
		m.set(AttribEncDirtyRect, 4)
	}

	m.set(AttribProcessingRate, ProcessingRateEncode)
	if parallel > 0 {
		m.set(AttribEncParallelRateControl, parallel)
	}

	if err := c.addPlatformAttribs(m, profile, entrypoint, platformEncAttribs); err != nil {
		return nil, err
	}
	return m, nil
}

// CreateDecAttributes builds the attribute list of a decode entry.
func (c *MediaCaps) CreateDecAttributes(profile Profile, entrypoint Entrypoint) (*AttribMap, error) {
	m := &AttribMap{}

	rt := RTFormatYUV420
	switch {
	case profile.Family() == FamilyJPEG:
		rt = RTFormatYUV420 | RTFormatYUV422 | RTFormatYUV444 | RTFormatYUV400
	case profile.Is10Bit():
		rt |= RTFormatYUV420_10
	}
	m.set(AttribRTFormat, rt)

	if profile.IsAvc() {
		m.set(AttribDecSliceMode, DecSliceModeNormal|DecSliceModeBase)
	} else {
		m.set(AttribDecSliceMode, DecSliceModeNormal)
	}

	bound := c.gen.Limits.DecodeMaxFor(profile.DecodeMode())
	m.set(AttribMaxPictureWidth, bound.Width)
	m.set(AttribMaxPictureHeight, bound.Height)
	m.set(AttribProcessingRate, ProcessingRateDecode)

	if err := c.addPlatformAttribs(m, profile, entrypoint, []AttribType{AttribDecProcessing}); err != nil {
		return nil, err
	}
	return m, nil
}

// addPlatformAttribs resolves each type and stores it. Inapplicable types are
// left out of the list; any other failure aborts.
func (c *MediaCaps) addPlatformAttribs(m *AttribMap, profile Profile, entrypoint Entrypoint, types []AttribType) error {
	for _, t := range types {
		v, err := c.GetPlatformSpecificAttrib(profile, entrypoint, t)
		if errors.Is(err, ErrUnsupportedAttribute) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to resolve %s for %s/%s: %w", t, profile, entrypoint, err)
		}
		m.set(t, v)
	}
	return nil
}
