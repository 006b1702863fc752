package caps

import "fmt"

func resolutionError(op string, profile Profile, width, height uint32, reason string) error {
	return NewError(StatusResolutionNotSupported, op, fmt.Sprintf("%s %dx%d: %s", profile, width, height, reason))
}

// CheckEncodeResolution validates an encode frame size. JPEG is checked
// against its own bounds only; every other profile must also be a multiple
// of the macroblock size.
func (c *MediaCaps) CheckEncodeResolution(profile Profile, width, height uint32) error {
	const op = "CheckEncodeResolution"

	if !c.frozen {
		return ErrNotInitialized
	}
	if !profile.Valid() {
		return NewError(StatusInvalidParameter, op, profile.String())
	}

	l := &c.gen.Limits
	bounds := l.EncodeLimitsFor(profile)
	if !bounds.Contains(width, height) {
		return resolutionError(op, profile, width, height,
			fmt.Sprintf("outside %dx%d..%dx%d", bounds.MinWidth, bounds.MinHeight, bounds.MaxWidth, bounds.MaxHeight))
	}
	if profile.Family() == FamilyJPEG {
		return nil
	}
	if width%l.MacroblockWidth != 0 || height%l.MacroblockHeight != 0 {
		return resolutionError(op, profile, width, height,
			fmt.Sprintf("not aligned to %dx%d macroblocks", l.MacroblockWidth, l.MacroblockHeight))
	}
	return nil
}

// CheckDecodeResolution validates a decode frame size against the maximum of
// the codec mode. VC1 advanced heights are aligned up before the comparison.
// Minimum sizes are not checked on the decode path.
func (c *MediaCaps) CheckDecodeResolution(mode CodecMode, profile Profile, width, height uint32) error {
	const op = "CheckDecodeResolution"

	if !c.frozen {
		return ErrNotInitialized
	}
	if !profile.Valid() {
		return NewError(StatusInvalidParameter, op, profile.String())
	}

	bound := c.gen.Limits.DecodeMaxFor(mode)

	alignedHeight := height
	if profile == ProfileVC1Advanced {
		alignedHeight = alignCeil(height, c.gen.Limits.VC1HeightAlign)
	}

	if width > bound.Width || alignedHeight > bound.Height {
		return resolutionError(op, profile, width, height,
			fmt.Sprintf("exceeds %s maximum %dx%d", mode, bound.Width, bound.Height))
	}
	return nil
}

// QueryAVCROIMaxNum returns how many AVC regions of interest a rate-control
// mode supports and whether ROI is expressed as a QP delta.
func (c *MediaCaps) QueryAVCROIMaxNum(rcMode RCMode) (maxNum int, isDeltaQP bool, err error) {
	if !c.frozen {
		return 0, false, ErrNotInitialized
	}
	if rcMode == RCCQP {
		return int(c.gen.Limits.AVCMaxROI), true, nil
	}
	return int(c.gen.Limits.AVCMaxROIBRC), true, nil
}

func alignCeil(v, align uint32) uint32 {
	if align == 0 {
		return v
	}
	return (v + align - 1) / align * align
}
