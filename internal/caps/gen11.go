package caps

import "github.com/smazurov/mediacaps/internal/sku"

// Gen11 returns the Icelake generation. It extends gen10 with custom
// rounding control on the media kernel AVC and HEVC encoders.
func Gen11() *Generation {
	l := baseLimits()
	l.EncodeHEVC.MaxWidth = 8192
	l.EncodeHEVC.MaxHeight = 8192
	l.DecodeMax[DecodeModeHEVCVLD] = Size{Width: 8192, Height: 8192}
	l.DecodeMax[DecodeModeVP9VLD] = Size{Width: 8192, Height: 8192}
	l.DecodeDefault = Size{Width: 4096, Height: 4096}
	l.HEVCMaxL0Ref = 3
	l.HEVCMaxL1Ref = 3

	return &Generation{
		Name:             "gen11",
		Platforms:        []sku.Platform{sku.PlatformIcelake},
		Limits:           l,
		DecodeProcessing: true,
		Resolvers: map[AttribType]attribResolver{
			AttribCustomRoundingControl: resolveGen11CustomRounding,
		},
	}
}

func resolveGen11CustomRounding(_ *MediaCaps, profile Profile, entrypoint Entrypoint) (uint32, error) {
	if entrypoint == EntrypointEncSlice && (profile.IsAvc() || profile.IsHevc()) {
		return 1, nil
	}
	return 0, nil
}
