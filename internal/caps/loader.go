package caps

import (
	"fmt"

	"github.com/smazurov/mediacaps/internal/sku"
)

// EncConfig is one registered encode configuration.
type EncConfig struct {
	RCMode RCMode `json:"rc_mode"`
}

// DecConfig is one registered decode configuration.
type DecConfig struct {
	SliceMode   uint32 `json:"slice_mode"`
	ProcessMode uint32 `json:"process_mode"`
}

// ProfileEntry is a registered (profile, entrypoint) with its attribute list
// and the contiguous range of configs it owns.
type ProfileEntry struct {
	Profile     Profile
	Entrypoint  Entrypoint
	Attributes  *AttribMap
	ConfigStart int
	ConfigCount int
}

// Key returns "<profile>/<entrypoint>".
func (e ProfileEntry) Key() string {
	return e.Profile.String() + "/" + e.Entrypoint.String()
}

// Loader registers the entries of one codec family and entrypoint.
type Loader struct {
	Name string
	Load func(c *MediaCaps) error
}

// DefaultLoaders is the load order used by generations that do not set their own.
var DefaultLoaders = []Loader{
	{"AvcDec", (*MediaCaps).loadAvcDec},
	{"AvcEnc", (*MediaCaps).loadAvcEnc},
	{"AvcEncLp", (*MediaCaps).loadAvcEncLp},
	{"Mpeg2Dec", (*MediaCaps).loadMpeg2Dec},
	{"Mpeg2Enc", (*MediaCaps).loadMpeg2Enc},
	{"Vc1Dec", (*MediaCaps).loadVc1Dec},
	{"JpegDec", (*MediaCaps).loadJpegDec},
	{"JpegEnc", (*MediaCaps).loadJpegEnc},
	{"HevcDec", (*MediaCaps).loadHevcDec},
	{"HevcEnc", (*MediaCaps).loadHevcEnc},
	{"HevcEncLp", (*MediaCaps).loadHevcEncLp},
	{"Vp8Dec", (*MediaCaps).loadVp8Dec},
	{"Vp8Enc", (*MediaCaps).loadVp8Enc},
	{"Vp9Dec", (*MediaCaps).loadVp9Dec},
	{"Vp9Enc", (*MediaCaps).loadVp9Enc},
	{"None", (*MediaCaps).loadNone},
}

// LoadProfileEntrypoints runs every loader of the generation in order and
// stops at the first failure.
func (c *MediaCaps) LoadProfileEntrypoints() error {
	for _, l := range c.gen.loaders() {
		if err := l.Load(c); err != nil {
			return fmt.Errorf("%s: %w", l.Name, err)
		}
		c.logger.Debug("Loaded profile entrypoints", "loader", l.Name, "entries", len(c.order))
	}
	return nil
}

// AddEncConfig appends an encode config to the shared sequence.
func (c *MediaCaps) AddEncConfig(mode RCMode) error {
	if c.frozen {
		return ErrFrozen
	}
	c.encConfigs = append(c.encConfigs, EncConfig{RCMode: mode})
	return nil
}

// AddDecConfig appends a decode config to the shared sequence.
func (c *MediaCaps) AddDecConfig(sliceMode, processMode uint32) error {
	if c.frozen {
		return ErrFrozen
	}
	c.decConfigs = append(c.decConfigs, DecConfig{SliceMode: sliceMode, ProcessMode: processMode})
	return nil
}

// AddProfileEntry registers (profile, entrypoint). The config range must be
// the one just appended: start+count equals the current sequence length.
func (c *MediaCaps) AddProfileEntry(profile Profile, entrypoint Entrypoint, attrs *AttribMap, start, count int) error {
	const op = "AddProfileEntry"

	if c.frozen {
		return ErrFrozen
	}
	if !profile.Valid() || !entrypoint.Valid() || attrs == nil {
		return NewError(StatusInvalidParameter, op, fmt.Sprintf("%s/%s", profile, entrypoint))
	}

	key := entryKey{profile, entrypoint}
	if _, exists := c.entries[key]; exists {
		return NewError(StatusOperationFailed, op, fmt.Sprintf("duplicate entry %s/%s", profile, entrypoint))
	}

	seqLen := len(c.encConfigs)
	if entrypoint == EntrypointVLD {
		seqLen = len(c.decConfigs)
	}
	if start < 0 || count < 0 || start+count != seqLen {
		return NewError(StatusOperationFailed, op,
			fmt.Sprintf("config range [%d,%d) of %s/%s does not end at %d", start, start+count, profile, entrypoint, seqLen))
	}

	c.entries[key] = &ProfileEntry{
		Profile:     profile,
		Entrypoint:  entrypoint,
		Attributes:  attrs,
		ConfigStart: start,
		ConfigCount: count,
	}
	c.order = append(c.order, key)
	return nil
}

// EncConfigs returns a copy of the encode configs of a registered entry.
func (c *MediaCaps) EncConfigs(profile Profile, entrypoint Entrypoint) ([]EncConfig, error) {
	e, ok := c.entries[entryKey{profile, entrypoint}]
	if !ok || entrypoint == EntrypointVLD {
		return nil, NewError(StatusUnsupportedEntrypoint, "EncConfigs", fmt.Sprintf("%s/%s", profile, entrypoint))
	}
	out := make([]EncConfig, e.ConfigCount)
	copy(out, c.encConfigs[e.ConfigStart:e.ConfigStart+e.ConfigCount])
	return out, nil
}

// DecConfigs returns a copy of the decode configs of a registered entry.
func (c *MediaCaps) DecConfigs(profile Profile, entrypoint Entrypoint) ([]DecConfig, error) {
	e, ok := c.entries[entryKey{profile, entrypoint}]
	if !ok || entrypoint != EntrypointVLD {
		return nil, NewError(StatusUnsupportedEntrypoint, "DecConfigs", fmt.Sprintf("%s/%s", profile, entrypoint))
	}
	out := make([]DecConfig, e.ConfigCount)
	copy(out, c.decConfigs[e.ConfigStart:e.ConfigStart+e.ConfigCount])
	return out, nil
}

// encRCModes lists the rate-control configs registered for an encode entry:
// CQP always, plus the media kernel modes (each plain and parallel) when the
// kernels are enabled. JPEG has no rate control and VP9 is CQP only.
func (c *MediaCaps) encRCModes(profile Profile, _ Entrypoint) []RCMode {
	switch profile.Family() {
	case FamilyJPEG:
		return []RCMode{RCNone}
	case FamilyVP9:
		return []RCMode{RCCQP}
	}

	modes := []RCMode{RCCQP}
	if c.features.HasFeature(sku.FtrEnableMediaKernels) {
		for _, m := range RCModes[kernelModeStart:kernelModeEnd] {
			modes = append(modes, m, m|RCParallel)
		}
	}
	return modes
}

func (c *MediaCaps) registerEncode(profile Profile, entrypoint Entrypoint, attrs *AttribMap) error {
	start := len(c.encConfigs)
	for _, mode := range c.encRCModes(profile, entrypoint) {
		if err := c.AddEncConfig(mode); err != nil {
			return err
		}
	}
	return c.AddProfileEntry(profile, entrypoint, attrs, start, len(c.encConfigs)-start)
}

func (c *MediaCaps) loadEncode(entrypoint Entrypoint, profiles ...Profile) error {
	for _, p := range profiles {
		attrs, err := c.CreateEncAttributes(p, entrypoint)
		if err != nil {
			return err
		}
		if err := c.registerEncode(p, entrypoint, attrs); err != nil {
			return err
		}
	}
	return nil
}

func (c *MediaCaps) loadDecode(profiles ...Profile) error {
	for _, p := range profiles {
		attrs, err := c.CreateDecAttributes(p, EntrypointVLD)
		if err != nil {
			return err
		}

		start := len(c.decConfigs)
		sliceModes, _ := attrs.Get(AttribDecSliceMode)
		processing, _ := attrs.Get(AttribDecProcessing)
		for _, mode := range []uint32{DecSliceModeNormal, DecSliceModeBase} {
			if sliceModes&mode == 0 {
				continue
			}
			if err := c.AddDecConfig(mode, DecProcessingNone); err != nil {
				return err
			}
			if processing == DecProcessing {
				if err := c.AddDecConfig(mode, DecProcessing); err != nil {
					return err
				}
			}
		}
		if err := c.AddProfileEntry(p, EntrypointVLD, attrs, start, len(c.decConfigs)-start); err != nil {
			return err
		}
	}
	return nil
}

func (c *MediaCaps) has(f sku.Feature) bool {
	return c.features.HasFeature(f)
}

func (c *MediaCaps) loadAvcDec() error {
	if !c.has(sku.FtrAVCVLDLongDecoding) {
		return nil
	}
	return c.loadDecode(ProfileH264Main, ProfileH264High, ProfileH264ConstrainedBaseline)
}

func (c *MediaCaps) loadAvcEnc() error {
	if !c.has(sku.FtrEncodeAVC) {
		return nil
	}
	return c.loadEncode(EntrypointEncSlice, ProfileH264Main, ProfileH264High, ProfileH264ConstrainedBaseline)
}

func (c *MediaCaps) loadAvcEncLp() error {
	if !c.has(sku.FtrEncodeAVCVdenc) {
		return nil
	}
	return c.loadEncode(EntrypointEncSliceLP, ProfileH264Main, ProfileH264High, ProfileH264ConstrainedBaseline)
}

func (c *MediaCaps) loadMpeg2Dec() error {
	if !c.has(sku.FtrMPEG2VLDDecoding) {
		return nil
	}
	return c.loadDecode(ProfileMPEG2Simple, ProfileMPEG2Main)
}

func (c *MediaCaps) loadMpeg2Enc() error {
	if !c.has(sku.FtrEncodeMPEG2) {
		return nil
	}
	return c.loadEncode(EntrypointEncSlice, ProfileMPEG2Simple, ProfileMPEG2Main)
}

func (c *MediaCaps) loadVc1Dec() error {
	if !c.has(sku.FtrVC1VLDDecoding) {
		return nil
	}
	return c.loadDecode(ProfileVC1Simple, ProfileVC1Main, ProfileVC1Advanced)
}

func (c *MediaCaps) loadJpegDec() error {
	if !c.has(sku.FtrIntelJPEGDecoding) {
		return nil
	}
	return c.loadDecode(ProfileJPEGBaseline)
}

func (c *MediaCaps) loadJpegEnc() error {
	if !c.has(sku.FtrEncodeJPEG) {
		return nil
	}
	return c.loadEncode(EntrypointEncPicture, ProfileJPEGBaseline)
}

func (c *MediaCaps) loadHevcDec() error {
	if c.has(sku.FtrHEVCVLDMainDecoding) {
		if err := c.loadDecode(ProfileHEVCMain); err != nil {
			return err
		}
	}
	if c.has(sku.FtrHEVCVLDMain10Decoding) {
		return c.loadDecode(ProfileHEVCMain10)
	}
	return nil
}

func (c *MediaCaps) loadHevcEnc() error {
	if c.has(sku.FtrEncodeHEVC) {
		if err := c.loadEncode(EntrypointEncSlice, ProfileHEVCMain); err != nil {
			return err
		}
	}
	if c.has(sku.FtrEncodeHEVC10bit) {
		return c.loadEncode(EntrypointEncSlice, ProfileHEVCMain10)
	}
	return nil
}

// loadHevcEncLp builds one attribute list for the low-power HEVC entry and
// shares it between the Main and Main10 registrations.
func (c *MediaCaps) loadHevcEncLp() error {
	hasMain := c.has(sku.FtrEncodeHEVCVdencMain)
	hasMain10 := c.has(sku.FtrEncodeHEVCVdencMain10)
	if !hasMain && !hasMain10 {
		return nil
	}

	attrs, err := c.CreateEncAttributes(ProfileHEVCMain, EntrypointEncSliceLP)
	if err != nil {
		return err
	}

	if hasMain {
		if err := c.registerEncode(ProfileHEVCMain, EntrypointEncSliceLP, attrs); err != nil {
			return err
		}
	}
	if hasMain10 {
		if err := c.registerEncode(ProfileHEVCMain10, EntrypointEncSliceLP, attrs); err != nil {
			return err
		}
	}
	return nil
}

func (c *MediaCaps) loadVp8Dec() error {
	if !c.has(sku.FtrVP8VLDDecoding) {
		return nil
	}
	return c.loadDecode(ProfileVP8Version0_3)
}

func (c *MediaCaps) loadVp8Enc() error {
	if !c.has(sku.FtrEncodeVP8) {
		return nil
	}
	return c.loadEncode(EntrypointEncSlice, ProfileVP8Version0_3)
}

func (c *MediaCaps) loadVp9Dec() error {
	if c.has(sku.FtrVP9VLDDecoding) {
		if err := c.loadDecode(ProfileVP9Profile0); err != nil {
			return err
		}
	}
	if c.has(sku.FtrVP9VLD10bProfile2Decoding) {
		return c.loadDecode(ProfileVP9Profile2)
	}
	return nil
}

func (c *MediaCaps) loadVp9Enc() error {
	if !c.has(sku.FtrEncodeVP9Vdenc) {
		return nil
	}
	return c.loadEncode(EntrypointEncSliceLP, ProfileVP9Profile0)
}

// loadNone registers the video processing entry, which owns no configs.
func (c *MediaCaps) loadNone() error {
	attrs := &AttribMap{}
	attrs.set(AttribRTFormat, RTFormatYUV420|RTFormatYUV422|RTFormatYUV444|RTFormatYUV400|RTFormatYUV420_10)
	return c.AddProfileEntry(ProfileNone, EntrypointVideoProc, attrs, len(c.encConfigs), 0)
}
