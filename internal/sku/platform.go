package sku

import (
	"fmt"
	"strings"
)

// Platform identifies a hardware product family. It selects the feature
// table and the capability implementation for a driver session.
type Platform int

const (
	PlatformUnknown Platform = iota
	PlatformSkylake
	PlatformKabylake
	PlatformCannonlake
	PlatformIcelake
)

var platformNames = map[Platform]string{
	PlatformSkylake:    "skylake",
	PlatformKabylake:   "kabylake",
	PlatformCannonlake: "cannonlake",
	PlatformIcelake:    "icelake",
}

// Platforms returns every known platform in declaration order.
func Platforms() []Platform {
	return []Platform{PlatformSkylake, PlatformKabylake, PlatformCannonlake, PlatformIcelake}
}

func (p Platform) String() string {
	if name, ok := platformNames[p]; ok {
		return name
	}
	return fmt.Sprintf("platform(%d)", int(p))
}

// Gen returns the graphics generation number of the platform, or 0 if unknown.
func (p Platform) Gen() int {
	switch p {
	case PlatformSkylake, PlatformKabylake:
		return 9
	case PlatformCannonlake:
		return 10
	case PlatformIcelake:
		return 11
	default:
		return 0
	}
}

// Valid reports whether p is one of the known platforms.
func (p Platform) Valid() bool {
	_, ok := platformNames[p]
	return ok
}

// ParsePlatform accepts a platform name ("cannonlake") or a short code ("cnl").
func ParsePlatform(s string) (Platform, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "skl":
		return PlatformSkylake, nil
	case "kbl":
		return PlatformKabylake, nil
	case "cnl", "gen10":
		return PlatformCannonlake, nil
	case "icl", "gen11":
		return PlatformIcelake, nil
	}
	for p, n := range platformNames {
		if n == name {
			return p, nil
		}
	}
	return PlatformUnknown, fmt.Errorf("unknown platform: %q", s)
}
