package sku

import (
	"fmt"
	"slices"
)

// Feature is the name of a SKU feature flag.
type Feature string

// Feature flags consulted by the capability loaders.
const (
	FtrAVCVLDLongDecoding        Feature = "FtrAVCVLDLongDecoding"
	FtrMPEG2VLDDecoding          Feature = "FtrMPEG2VLDDecoding"
	FtrVC1VLDDecoding            Feature = "FtrVC1VLDDecoding"
	FtrIntelJPEGDecoding         Feature = "FtrIntelJPEGDecoding"
	FtrHEVCVLDMainDecoding       Feature = "FtrHEVCVLDMainDecoding"
	FtrHEVCVLDMain10Decoding     Feature = "FtrHEVCVLDMain10Decoding"
	FtrVP8VLDDecoding            Feature = "FtrVP8VLDDecoding"
	FtrVP9VLDDecoding            Feature = "FtrVP9VLDDecoding"
	FtrVP9VLD10bProfile2Decoding Feature = "FtrVP9VLD10bProfile2Decoding"
	FtrEncodeAVC                 Feature = "FtrEncodeAVC"
	FtrEncodeAVCVdenc            Feature = "FtrEncodeAVCVdenc"
	FtrEncodeMPEG2               Feature = "FtrEncodeMPEG2"
	FtrEncodeJPEG                Feature = "FtrEncodeJPEG"
	FtrEncodeHEVC                Feature = "FtrEncodeHEVC"
	FtrEncodeHEVC10bit           Feature = "FtrEncodeHEVC10bit"
	FtrEncodeHEVCVdencMain       Feature = "FtrEncodeHEVCVdencMain"
	FtrEncodeHEVCVdencMain10     Feature = "FtrEncodeHEVCVdencMain10"
	FtrEncodeVP8                 Feature = "FtrEncodeVP8"
	FtrEncodeVP9Vdenc            Feature = "FtrEncodeVP9Vdenc"
	FtrEnableMediaKernels        Feature = "FtrEnableMediaKernels"
	FtrVERing                    Feature = "FtrVERing"
)

// AllFeatures lists every feature flag known to the driver.
var AllFeatures = []Feature{
	FtrAVCVLDLongDecoding,
	FtrMPEG2VLDDecoding,
	FtrVC1VLDDecoding,
	FtrIntelJPEGDecoding,
	FtrHEVCVLDMainDecoding,
	FtrHEVCVLDMain10Decoding,
	FtrVP8VLDDecoding,
	FtrVP9VLDDecoding,
	FtrVP9VLD10bProfile2Decoding,
	FtrEncodeAVC,
	FtrEncodeAVCVdenc,
	FtrEncodeMPEG2,
	FtrEncodeJPEG,
	FtrEncodeHEVC,
	FtrEncodeHEVC10bit,
	FtrEncodeHEVCVdencMain,
	FtrEncodeHEVCVdencMain10,
	FtrEncodeVP8,
	FtrEncodeVP9Vdenc,
	FtrEnableMediaKernels,
	FtrVERing,
}

// Known reports whether f is a recognized feature flag.
func Known(f Feature) bool {
	return slices.Contains(AllFeatures, f)
}

// Table is a read-only set of feature flags for one platform.
// A Table is never mutated after construction, so concurrent reads are safe.
type Table struct {
	platform Platform
	flags    map[Feature]struct{}
}

// NewTable builds a table for the platform with the given flags set.
func NewTable(platform Platform, features ...Feature) *Table {
	t := &Table{
		platform: platform,
		flags:    make(map[Feature]struct{}, len(features)),
	}
	for _, f := range features {
		t.flags[f] = struct{}{}
	}
	return t
}

// Platform returns the platform the table describes.
func (t *Table) Platform() Platform {
	return t.platform
}

// HasFeature reports whether the flag is set. A nil table has no features.
func (t *Table) HasFeature(f Feature) bool {
	if t == nil {
		return false
	}
	_, ok := t.flags[f]
	return ok
}

// Features returns the set flags in sorted order.
func (t *Table) Features() []Feature {
	out := make([]Feature, 0, len(t.flags))
	for f := range t.flags {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// With returns a copy of the table with the given flags set.
func (t *Table) With(features ...Feature) *Table {
	out := NewTable(t.platform, t.Features()...)
	for _, f := range features {
		out.flags[f] = struct{}{}
	}
	return out
}

// Without returns a copy of the table with the given flags cleared.
func (t *Table) Without(features ...Feature) *Table {
	out := NewTable(t.platform, t.Features()...)
	for _, f := range features {
		delete(out.flags, f)
	}
	return out
}

var commonDecode = []Feature{
	FtrAVCVLDLongDecoding,
	FtrMPEG2VLDDecoding,
	FtrVC1VLDDecoding,
	FtrIntelJPEGDecoding,
	FtrHEVCVLDMainDecoding,
	FtrVP8VLDDecoding,
	FtrVP9VLDDecoding,
}

var commonEncode = []Feature{
	FtrEncodeAVC,
	FtrEncodeMPEG2,
	FtrEncodeJPEG,
	FtrEncodeHEVC,
	FtrEnableMediaKernels,
	FtrVERing,
}

// Default returns the built-in feature table of a platform.
func Default(p Platform) (*Table, error) {
	features := slices.Concat(commonDecode, commonEncode)

	switch p {
	case PlatformSkylake:
		features = append(features, FtrEncodeAVCVdenc)
	case PlatformKabylake:
		features = append(features,
			FtrEncodeAVCVdenc,
			FtrHEVCVLDMain10Decoding,
			FtrEncodeHEVC10bit,
		)
	case PlatformCannonlake:
		features = append(features,
			FtrEncodeAVCVdenc,
			FtrHEVCVLDMain10Decoding,
			FtrVP9VLD10bProfile2Decoding,
			FtrEncodeHEVC10bit,
			FtrEncodeHEVCVdencMain,
			FtrEncodeHEVCVdencMain10,
			FtrEncodeVP9Vdenc,
		)
	case PlatformIcelake:
		features = append(features,
			FtrEncodeAVCVdenc,
			FtrHEVCVLDMain10Decoding,
			FtrVP9VLD10bProfile2Decoding,
			FtrEncodeHEVC10bit,
			FtrEncodeHEVCVdencMain,
			FtrEncodeHEVCVdencMain10,
			FtrEncodeVP9Vdenc,
		)
	default:
		return nil, fmt.Errorf("no feature table for %s", p)
	}

	return NewTable(p, features...), nil
}
