package domain

import (
	"fmt"
	"strings"
)

// Region is a supported Nigerian state or city.
type Region string

const (
	RegionAbuja         Region = "Abuja"
	RegionLagos         Region = "Lagos"
	RegionPortHarcourt  Region = "Port Harcourt"
	RegionOgun          Region = "Ogun"
	RegionAbeokuta      Region = "Abeokuta"
	DefaultRegion              = RegionLagos
	CurrentLocationText        = "My Current Location"
)

// SupportedRegions in display order.
var SupportedRegions = []Region{
	RegionLagos,
	RegionAbuja,
	RegionPortHarcourt,
	RegionOgun,
	RegionAbeokuta,
}

// IsValid checks if the region is one of SupportedRegions.
func (r Region) IsValid() bool {
	for _, s := range SupportedRegions {
		if r == s {
			return true
		}
	}
	return false
}

// ParseRegion matches s case-insensitively against the supported regions.
// An empty string resolves to fallback.
func ParseRegion(s string, fallback Region) (Region, error) {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return fallback, nil
	}
	for _, r := range SupportedRegions {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return "", ValidationError{Field: "state", Msg: fmt.Sprintf("unsupported region %q", s)}
}

// Placeholder holds example inputs shown for a region.
type Placeholder struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// Placeholders returns example origin/destination for r.
func (r Region) Placeholders() Placeholder {
	switch r {
	case RegionAbuja:
		return Placeholder{Origin: "e.g., Wuse Market", Destination: "e.g., Jabi Lake Mall"}
	case RegionLagos:
		return Placeholder{Origin: "e.g., CMS Bus Stop", Destination: "e.g., Ikeja City Mall"}
	default:
		return Placeholder{Origin: "Enter origin", Destination: "Enter destination"}
	}
}

// Coordinates is a device position in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// IsValid checks the coordinate ranges.
func (c Coordinates) IsValid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// TravelMode is the classification of a single route step.
type TravelMode string

const (
	ModeWalk     TravelMode = "Walk"
	ModeBus      TravelMode = "Bus"
	ModeTricycle TravelMode = "Tricycle"
	ModeUnknown  TravelMode = "Unknown"
)
