package caps

import "github.com/smazurov/mediacaps/internal/sku"

// Gen10 returns the Cannonlake generation: 8K HEVC and VP9 decode, 8K HEVC
// encode and decode processing for AVC and HEVC.
func Gen10() *Generation {
	l := baseLimits()
	l.EncodeHEVC.MaxWidth = 8192
	l.EncodeHEVC.MaxHeight = 8192
	l.DecodeMax[DecodeModeHEVCVLD] = Size{Width: 8192, Height: 8192}
	l.DecodeMax[DecodeModeVP9VLD] = Size{Width: 8192, Height: 8192}
	l.HEVCMaxL0Ref = 4
	l.HEVCMaxL1Ref = 4

	return &Generation{
		Name:             "gen10",
		Platforms:        []sku.Platform{sku.PlatformCannonlake},
		Limits:           l,
		DecodeProcessing: true,
	}
}
