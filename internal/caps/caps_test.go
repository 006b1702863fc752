package caps

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/smazurov/mediacaps/internal/sku"
)

type recordingReporter struct {
	requests []DumpRequest
	err      error
}

func (r *recordingReporter) Report(req DumpRequest) error {
	r.requests = append(r.requests, req)
	return r.err
}

func newCaps(t *testing.T, gen *Generation, table *sku.Table) *MediaCaps {
	t.Helper()
	c, err := NewMediaCaps(gen, &Context{Platform: table.Platform(), Features: table})
	if err != nil {
		t.Fatalf("NewMediaCaps failed: %v", err)
	}
	return c
}

func initCaps(t *testing.T, gen *Generation, table *sku.Table) *MediaCaps {
	t.Helper()
	c := newCaps(t, gen, table)
	if err := c.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return c
}

func defaultTable(t *testing.T, p sku.Platform) *sku.Table {
	t.Helper()
	table, err := sku.Default(p)
	if err != nil {
		t.Fatalf("sku.Default(%s) failed: %v", p, err)
	}
	return table
}

func TestHEVCMaxRefFramesLowPowerVsNormal(t *testing.T) {
	table := defaultTable(t, sku.PlatformCannonlake)
	if !table.HasFeature(sku.FtrEncodeHEVCVdencMain) {
		t.Fatal("cannonlake table must carry HEVC VDENC main")
	}
	c := initCaps(t, Gen10(), table)

	_, err := c.GetAttributeValue(ProfileHEVCMain, EntrypointEncSliceLP, AttribEncMaxRefFrames)
	if !errors.Is(err, ErrUnsupportedAttribute) {
		t.Fatalf("HEVCMain/EncSliceLP max ref frames error = %v, want unsupported attribute", err)
	}

	v, err := c.GetAttributeValue(ProfileHEVCMain, EntrypointEncSlice, AttribEncMaxRefFrames)
	if err != nil {
		t.Fatalf("HEVCMain/EncSlice max ref frames failed: %v", err)
	}
	l0, l1 := UnpackRefFrames(v)
	if l0 != c.Limits().HEVCMaxL0Ref || l1 != c.Limits().HEVCMaxL1Ref {
		t.Errorf("max ref frames = L0 %d L1 %d, want L0 %d L1 %d", l0, l1, c.Limits().HEVCMaxL0Ref, c.Limits().HEVCMaxL1Ref)
	}
	if v != 4|4<<16 {
		t.Errorf("packed max ref frames = 0x%x, want 0x40004", v)
	}
}

func TestPlatformSpecificAttrib(t *testing.T) {
	c := initCaps(t, Gen10(), defaultTable(t, sku.PlatformCannonlake))

	tests := []struct {
		name       string
		profile    Profile
		entrypoint Entrypoint
		attrib     AttribType
		want       uint32
		wantErr    error
	}{
		{"max ref avc", ProfileH264Main, EntrypointEncSlice, AttribEncMaxRefFrames, 0, ErrUnsupportedAttribute},
		{"max ref hevc lp", ProfileHEVCMain10, EntrypointEncSliceLP, AttribEncMaxRefFrames, 0, ErrUnsupportedAttribute},
		{"max ref hevc", ProfileHEVCMain10, EntrypointEncSlice, AttribEncMaxRefFrames, PackRefFrames(4, 4), nil},
		{"dec processing avc", ProfileH264High, EntrypointVLD, AttribDecProcessing, DecProcessing, nil},
		{"dec processing hevc", ProfileHEVCMain, EntrypointVLD, AttribDecProcessing, DecProcessing, nil},
		{"dec processing vp9", ProfileVP9Profile0, EntrypointVLD, AttribDecProcessing, DecProcessingNone, nil},
		{"intra refresh avc", ProfileH264Main, EntrypointEncSlice, AttribEncIntraRefresh, IntraRefreshRollingColumn, nil},
		{"intra refresh hevc", ProfileHEVCMain, EntrypointEncSlice, AttribEncIntraRefresh, IntraRefreshNone, nil},
		{"roi avc", ProfileH264Main, EntrypointEncSlice, AttribEncROI, 1<<9 | 1<<8 | 8, nil},
		{"roi avc lp", ProfileH264Main, EntrypointEncSliceLP, AttribEncROI, 0, ErrUnsupportedAttribute},
		{"roi hevc", ProfileHEVCMain, EntrypointEncSlice, AttribEncROI, 0, nil},
		{"roi mpeg2", ProfileMPEG2Main, EntrypointEncSlice, AttribEncROI, 0, nil},
		{"custom rounding", ProfileH264Main, EntrypointEncSlice, AttribCustomRoundingControl, 0, nil},
		{"not platform specific", ProfileH264Main, EntrypointEncSlice, AttribRTFormat, 0, ErrUnsupportedAttribute},
		{"attrib out of range", ProfileH264Main, EntrypointEncSlice, AttribType(99), 0, ErrInvalidParameter},
		{"negative attrib", ProfileH264Main, EntrypointEncSlice, AttribType(-1), 0, ErrInvalidParameter},
		{"profile out of range", Profile(42), EntrypointEncSlice, AttribEncROI, 0, ErrInvalidParameter},
		{"entrypoint out of range", ProfileH264Main, Entrypoint(0), AttribEncROI, 0, ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.GetPlatformSpecificAttrib(tt.profile, tt.entrypoint, tt.attrib)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("value = 0x%x, want 0x%x", got, tt.want)
			}
		})
	}
}

func TestAttributeDirectionMismatch(t *testing.T) {
	c := initCaps(t, Gen10(), defaultTable(t, sku.PlatformCannonlake))

	tests := []struct {
		name       string
		profile    Profile
		entrypoint Entrypoint
		attrib     AttribType
	}{
		{"avc decode roi", ProfileH264Main, EntrypointVLD, AttribEncROI},
		{"avc decode intra refresh", ProfileH264Main, EntrypointVLD, AttribEncIntraRefresh},
		{"avc decode custom rounding", ProfileH264Main, EntrypointVLD, AttribCustomRoundingControl},
		{"hevc decode max ref", ProfileHEVCMain, EntrypointVLD, AttribEncMaxRefFrames},
		{"avc encode dec processing", ProfileH264Main, EntrypointEncSlice, AttribDecProcessing},
		{"hevc encode dec processing", ProfileHEVCMain, EntrypointEncSlice, AttribDecProcessing},
		{"hevc lp dec processing", ProfileHEVCMain, EntrypointEncSliceLP, AttribDecProcessing},
		{"avc decode packed headers", ProfileH264Main, EntrypointVLD, AttribEncPackedHeaders},
		{"avc encode slice mode", ProfileH264Main, EntrypointEncSlice, AttribDecSliceMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := c.Entry(tt.profile, tt.entrypoint); !ok {
				t.Fatalf("%s/%s not registered", tt.profile, tt.entrypoint)
			}
			v, err := c.GetAttributeValue(tt.profile, tt.entrypoint, tt.attrib)
			if !errors.Is(err, ErrUnsupportedAttribute) || v != 0 {
				t.Errorf("GetAttributeValue = (0x%x, %v), want (0, unsupported attribute)", v, err)
			}
			v, err = c.GetPlatformSpecificAttrib(tt.profile, tt.entrypoint, tt.attrib)
			if err == nil || v != 0 {
				t.Errorf("GetPlatformSpecificAttrib = (0x%x, %v), want an error and 0", v, err)
			}
		})
	}
}

func TestGetAttributeValueIsPure(t *testing.T) {
	for _, gen := range Generations() {
		for _, p := range gen.Platforms {
			t.Run(p.String(), func(t *testing.T) {
				c := initCaps(t, gen, defaultTable(t, p))
				for _, e := range c.Entries() {
					for _, a := range AllAttribTypes() {
						v1, err1 := c.GetAttributeValue(e.Profile, e.Entrypoint, a)
						v2, err2 := c.GetAttributeValue(e.Profile, e.Entrypoint, a)
						if v1 != v2 || StatusOf(err1) != StatusOf(err2) {
							t.Errorf("%s %s: (0x%x, %v) then (0x%x, %v)", e.Key(), a, v1, err1, v2, err2)
						}
						if StatusOf(err1) == StatusInvalidParameter {
							t.Errorf("%s %s: valid query reported invalid parameter", e.Key(), a)
						}
					}
				}
			})
		}
	}
}

func TestUnsupportedSentinelIsZero(t *testing.T) {
	c := initCaps(t, Gen10(), defaultTable(t, sku.PlatformCannonlake))

	for _, e := range c.Entries() {
		if !e.Entrypoint.IsEncode() || e.Entrypoint == EntrypointEncSliceLP {
			continue
		}
		if !e.Profile.IsAvc() {
			v, err := c.GetAttributeValue(e.Profile, e.Entrypoint, AttribEncROI)
			if err != nil || v != 0 {
				t.Errorf("%s ROI = (0x%x, %v), want (0, nil)", e.Key(), v, err)
			}
			v, err = c.GetAttributeValue(e.Profile, e.Entrypoint, AttribEncIntraRefresh)
			if err != nil || v != 0 {
				t.Errorf("%s intra refresh = (0x%x, %v), want (0, nil)", e.Key(), v, err)
			}
		}
		if !e.Profile.IsHevc() {
			if _, err := c.GetAttributeValue(e.Profile, e.Entrypoint, AttribEncMaxRefFrames); !errors.Is(err, ErrUnsupportedAttribute) {
				t.Errorf("%s max ref frames error = %v, want unsupported attribute", e.Key(), err)
			}
		}
	}
}

func TestGetAttributeValueUnregistered(t *testing.T) {
	table := defaultTable(t, sku.PlatformCannonlake).Without(sku.FtrVP8VLDDecoding)
	c := initCaps(t, Gen10(), table)

	tests := []struct {
		name       string
		profile    Profile
		entrypoint Entrypoint
		want       Status
	}{
		{"missing profile", ProfileVP8Version0_3, EntrypointVLD, StatusUnsupportedProfile},
		{"missing entrypoint", ProfileVP9Profile2, EntrypointEncSliceLP, StatusUnsupportedEntrypoint},
		{"jpeg slice encode", ProfileJPEGBaseline, EntrypointEncSlice, StatusUnsupportedEntrypoint},
		{"invalid profile", Profile(-3), EntrypointVLD, StatusInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.GetAttributeValue(tt.profile, tt.entrypoint, AttribRTFormat)
			if got := StatusOf(err); got != tt.want {
				t.Errorf("status = %s, want %s (err %v)", got, tt.want, err)
			}
		})
	}
}

func TestStoredAttributes(t *testing.T) {
	c := initCaps(t, Gen10(), defaultTable(t, sku.PlatformCannonlake))

	tests := []struct {
		name       string
		profile    Profile
		entrypoint Entrypoint
		attrib     AttribType
		want       uint32
	}{
		{"hevc main10 rt format", ProfileHEVCMain10, EntrypointEncSlice, AttribRTFormat, RTFormatYUV420 | RTFormatYUV420_10},
		{"avc decode slice mode", ProfileH264Main, EntrypointVLD, AttribDecSliceMode, DecSliceModeNormal | DecSliceModeBase},
		{"hevc decode max width", ProfileHEVCMain, EntrypointVLD, AttribMaxPictureWidth, 8192},
		{"mpeg2 decode max height", ProfileMPEG2Main, EntrypointVLD, AttribMaxPictureHeight, 2048},
		{"jpeg encode max width", ProfileJPEGBaseline, EntrypointEncPicture, AttribMaxPictureWidth, 16384},
		{"jpeg rate control", ProfileJPEGBaseline, EntrypointEncPicture, AttribRateControl, uint32(RCNone)},
		{"vp9 lp rate control", ProfileVP9Profile0, EntrypointEncSliceLP, AttribRateControl, uint32(RCCQP)},
		{"hevc lp slice structure", ProfileHEVCMain, EntrypointEncSliceLP, AttribEncSliceStructure, SliceStructureEqualRows},
		{"hevc lp dirty rect", ProfileHEVCMain10, EntrypointEncSliceLP, AttribEncDirtyRect, 4},
		{"avc parallel rate control", ProfileH264High, EntrypointEncSlice, AttribEncParallelRateControl, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.GetAttributeValue(tt.profile, tt.entrypoint, tt.attrib)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("value = 0x%x, want 0x%x", got, tt.want)
			}
		})
	}
}

func TestConfigRangesAreContiguous(t *testing.T) {
	for _, gen := range Generations() {
		for _, p := range gen.Platforms {
			t.Run(p.String(), func(t *testing.T) {
				c := initCaps(t, gen, defaultTable(t, p))

				encEnd, decEnd := 0, 0
				for _, e := range c.Entries() {
					end := &encEnd
					total := len(c.encConfigs)
					if e.Entrypoint == EntrypointVLD {
						end = &decEnd
						total = len(c.decConfigs)
					}
					if e.ConfigStart != *end {
						t.Errorf("%s starts at %d, previous range ended at %d", e.Key(), e.ConfigStart, *end)
					}
					*end = e.ConfigStart + e.ConfigCount
					if *end > total {
						t.Errorf("%s range ends at %d past sequence length %d", e.Key(), *end, total)
					}
				}
				if encEnd != len(c.encConfigs) {
					t.Errorf("encode ranges cover %d of %d configs", encEnd, len(c.encConfigs))
				}
				if decEnd != len(c.decConfigs) {
					t.Errorf("decode ranges cover %d of %d configs", decEnd, len(c.decConfigs))
				}
			})
		}
	}
}

func TestRateControlMatchesConfigs(t *testing.T) {
	c := initCaps(t, Gen10(), defaultTable(t, sku.PlatformCannonlake))

	for _, e := range c.Entries() {
		if !e.Entrypoint.IsEncode() {
			continue
		}
		configs, err := c.EncConfigs(e.Profile, e.Entrypoint)
		if err != nil {
			t.Fatalf("EncConfigs(%s) failed: %v", e.Key(), err)
		}
		if len(configs) == 0 {
			t.Errorf("%s has no encode configs", e.Key())
		}
		var mask RCMode
		for _, cfg := range configs {
			mask |= cfg.RCMode
		}
		rc, _ := e.Attributes.Get(AttribRateControl)
		if RCMode(rc) != mask {
			t.Errorf("%s rate control attribute %s, configs %s", e.Key(), RCMode(rc), mask)
		}
	}
}

func TestEncodeConfigEnumeration(t *testing.T) {
	tests := []struct {
		name    string
		table   func(*sku.Table) *sku.Table
		profile Profile
		want    []RCMode
	}{
		{
			name:    "media kernels",
			table:   func(t *sku.Table) *sku.Table { return t },
			profile: ProfileH264Main,
			want: []RCMode{
				RCCQP,
				RCCBR, RCCBR | RCParallel,
				RCVBR, RCVBR | RCParallel,
				RCICQ, RCICQ | RCParallel,
				RCVCM, RCVCM | RCParallel,
			},
		},
		{
			name:    "no media kernels",
			table:   func(t *sku.Table) *sku.Table { return t.Without(sku.FtrEnableMediaKernels) },
			profile: ProfileH264Main,
			want:    []RCMode{RCCQP},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := initCaps(t, Gen10(), tt.table(defaultTable(t, sku.PlatformCannonlake)))
			configs, err := c.EncConfigs(tt.profile, EntrypointEncSlice)
			if err != nil {
				t.Fatalf("EncConfigs failed: %v", err)
			}
			var got []RCMode
			for _, cfg := range configs {
				got = append(got, cfg.RCMode)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("configs = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHEVCLowPowerGating(t *testing.T) {
	tests := []struct {
		name       string
		disable    []sku.Feature
		wantMain   bool
		wantMain10 bool
	}{
		{"both flags", nil, true, true},
		{"main10 only", []sku.Feature{sku.FtrEncodeHEVCVdencMain}, false, true},
		{"main only", []sku.Feature{sku.FtrEncodeHEVCVdencMain10}, true, false},
		{"neither", []sku.Feature{sku.FtrEncodeHEVCVdencMain, sku.FtrEncodeHEVCVdencMain10}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := defaultTable(t, sku.PlatformCannonlake).Without(tt.disable...)
			c := initCaps(t, Gen10(), table)

			main, okMain := c.Entry(ProfileHEVCMain, EntrypointEncSliceLP)
			main10, okMain10 := c.Entry(ProfileHEVCMain10, EntrypointEncSliceLP)
			if okMain != tt.wantMain || okMain10 != tt.wantMain10 {
				t.Fatalf("registered main=%v main10=%v, want main=%v main10=%v", okMain, okMain10, tt.wantMain, tt.wantMain10)
			}
			if okMain && okMain10 && main.Attributes != main10.Attributes {
				t.Error("Main and Main10 low power entries should share one attribute list")
			}
		})
	}
}

func TestGen9HasNoLowPowerHEVC(t *testing.T) {
	// Force the flags on to check that the gen9 loader list leaves them out.
	table := defaultTable(t, sku.PlatformSkylake).With(sku.FtrEncodeHEVCVdencMain, sku.FtrEncodeVP9Vdenc)
	c := initCaps(t, Gen9(), table)

	if _, ok := c.Entry(ProfileHEVCMain, EntrypointEncSliceLP); ok {
		t.Error("gen9 registered HEVC low power encode")
	}
	if _, ok := c.Entry(ProfileVP9Profile0, EntrypointEncSliceLP); ok {
		t.Error("gen9 registered VP9 encode")
	}
	v, err := c.GetAttributeValue(ProfileH264Main, EntrypointVLD, AttribDecProcessing)
	if err != nil || v != DecProcessingNone {
		t.Errorf("gen9 AVC decode processing = (%d, %v), want (0, nil)", v, err)
	}
}

func TestGen11CustomRounding(t *testing.T) {
	c := initCaps(t, Gen11(), defaultTable(t, sku.PlatformIcelake))

	v, err := c.GetAttributeValue(ProfileH264Main, EntrypointEncSlice, AttribCustomRoundingControl)
	if err != nil || v != 1 {
		t.Errorf("AVC custom rounding = (%d, %v), want (1, nil)", v, err)
	}
	v, err = c.GetAttributeValue(ProfileH264Main, EntrypointEncSliceLP, AttribCustomRoundingControl)
	if err != nil || v != 0 {
		t.Errorf("AVC LP custom rounding = (%d, %v), want (0, nil)", v, err)
	}
}

func TestLifecycle(t *testing.T) {
	c := newCaps(t, Gen10(), defaultTable(t, sku.PlatformCannonlake))

	if _, err := c.GetAttributeValue(ProfileH264Main, EntrypointVLD, AttribRTFormat); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("query before Init error = %v, want ErrNotInitialized", err)
	}
	if err := c.CheckEncodeResolution(ProfileH264Main, 1920, 1088); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("check before Init error = %v, want ErrNotInitialized", err)
	}

	if err := c.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if !c.Initialized() {
		t.Error("Initialized() = false after Init")
	}
	if err := c.Init(); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("second Init error = %v, want ErrAlreadyInitialized", err)
	}
	if err := c.AddEncConfig(RCCQP); !errors.Is(err, ErrFrozen) {
		t.Errorf("AddEncConfig after Init error = %v, want ErrFrozen", err)
	}
	if err := c.AddDecConfig(DecSliceModeNormal, DecProcessingNone); !errors.Is(err, ErrFrozen) {
		t.Errorf("AddDecConfig after Init error = %v, want ErrFrozen", err)
	}
	if err := c.AddProfileEntry(ProfileVP8Version0_3, EntrypointEncSlice, &AttribMap{}, len(c.encConfigs), 0); !errors.Is(err, ErrFrozen) {
		t.Errorf("AddProfileEntry after Init error = %v, want ErrFrozen", err)
	}
}

func TestInitAbortsOnLoaderFailure(t *testing.T) {
	boom := NewError(StatusOperationFailed, "test", "boom")
	gen := Gen10()
	gen.Loaders = []Loader{
		{"AvcDec", (*MediaCaps).loadAvcDec},
		{"Broken", func(*MediaCaps) error { return boom }},
		{"HevcDec", (*MediaCaps).loadHevcDec},
	}

	c := newCaps(t, gen, defaultTable(t, sku.PlatformCannonlake))
	err := c.Init()
	if !errors.Is(err, boom) {
		t.Fatalf("Init error = %v, want wrapped loader error", err)
	}
	if !strings.Contains(err.Error(), "Broken") {
		t.Errorf("Init error %q does not name the loader", err)
	}
	if c.Initialized() {
		t.Error("failed Init left the object initialized")
	}
	if _, ok := c.Entry(ProfileH264Main, EntrypointVLD); !ok {
		t.Error("entries committed before the failure should remain")
	}
	if _, ok := c.Entry(ProfileHEVCMain, EntrypointVLD); ok {
		t.Error("loaders after the failure should not run")
	}
}

func TestAddProfileEntryRejectsBadRanges(t *testing.T) {
	c := newCaps(t, Gen10(), defaultTable(t, sku.PlatformCannonlake))
	attrs := &AttribMap{}

	if err := c.AddEncConfig(RCCQP); err != nil {
		t.Fatalf("AddEncConfig failed: %v", err)
	}
	if err := c.AddProfileEntry(ProfileH264Main, EntrypointEncSlice, attrs, 0, 2); err == nil {
		t.Error("range past the sequence end was accepted")
	}
	if err := c.AddProfileEntry(ProfileH264Main, EntrypointEncSlice, attrs, 0, 1); err != nil {
		t.Fatalf("AddProfileEntry failed: %v", err)
	}
	if err := c.AddProfileEntry(ProfileH264Main, EntrypointEncSlice, attrs, 1, 0); err == nil {
		t.Error("duplicate entry was accepted")
	}
	if err := c.AddProfileEntry(ProfileH264High, EntrypointVLD, attrs, 0, 1); err == nil {
		t.Error("decode entry accepted an encode range")
	}
}

func TestInitReportsTable(t *testing.T) {
	reporter := &recordingReporter{err: errors.New("disk full")}
	table := defaultTable(t, sku.PlatformCannonlake)
	c, err := NewMediaCaps(Gen10(), &Context{Platform: sku.PlatformCannonlake, Features: table, Reporter: reporter})
	if err != nil {
		t.Fatalf("NewMediaCaps failed: %v", err)
	}

	if err := c.Init(); err != nil {
		t.Fatalf("Init should not fail on reporter errors: %v", err)
	}
	if len(reporter.requests) != 1 {
		t.Fatalf("got %d dump requests, want 1", len(reporter.requests))
	}
	req := reporter.requests[0]
	if req.Attr != DumpAttrCapsTable {
		t.Errorf("dump attr = %q, want %q", req.Attr, DumpAttrCapsTable)
	}
	if !strings.Contains(string(req.Data), "HEVCMain EncSliceLP") {
		t.Errorf("dumped table misses HEVCMain EncSliceLP:\n%s", req.Data)
	}
}

func TestProfilesAndEntrypoints(t *testing.T) {
	c := initCaps(t, Gen10(), defaultTable(t, sku.PlatformCannonlake))

	if !slices.Contains(c.Profiles(), ProfileNone) {
		t.Error("video processing profile missing")
	}
	got := c.Entrypoints(ProfileHEVCMain)
	want := []Entrypoint{EntrypointVLD, EntrypointEncSlice, EntrypointEncSliceLP}
	if !slices.Equal(got, want) {
		t.Errorf("HEVCMain entrypoints = %v, want %v", got, want)
	}
	if _, err := c.DecConfigs(ProfileHEVCMain, EntrypointEncSlice); err == nil {
		t.Error("DecConfigs accepted an encode entrypoint")
	}
	dec, err := c.DecConfigs(ProfileHEVCMain, EntrypointVLD)
	if err != nil {
		t.Fatalf("DecConfigs failed: %v", err)
	}
	if len(dec) != 2 || dec[1].ProcessMode != DecProcessing {
		t.Errorf("HEVC decode configs = %+v, want plain and processing", dec)
	}
}
