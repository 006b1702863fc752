package caps

import "github.com/smazurov/mediacaps/internal/sku"

// gen9Loaders is the gen9 load order. The low-power HEVC and VP9 encoders
// arrived with gen10.
var gen9Loaders = []Loader{
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
	{"Vp8Dec", (*MediaCaps).loadVp8Dec},
	{"Vp8Enc", (*MediaCaps).loadVp8Enc},
	{"Vp9Dec", (*MediaCaps).loadVp9Dec},
	{"None", (*MediaCaps).loadNone},
}

// Gen9 returns the Skylake/Kabylake generation.
func Gen9() *Generation {
	return &Generation{
		Name:      "gen9",
		Platforms: []sku.Platform{sku.PlatformSkylake, sku.PlatformKabylake},
		Limits:    baseLimits(),
		Loaders:   gen9Loaders,
	}
}
