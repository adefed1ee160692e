package models

import (
	"strings"

	"along/internal/domain"
)

// RouteStep is one numbered instruction of a route.
type RouteStep struct {
	Index int               `json:"index"`
	Text  string            `json:"text"`
	Mode  domain.TravelMode `json:"mode"`
}

// RouteRequest is a search as submitted by the client.
type RouteRequest struct {
	Origin          string              `json:"origin"`
	Destination     string              `json:"destination"`
	State           string              `json:"state"`
	CurrentLocation *domain.Coordinates `json:"currentLocation"`
	// Swap asks for the return journey of Origin -> Destination.
	Swap bool `json:"swap,omitempty"`
}

// UsesCurrentLocation reports whether the origin is the device position.
func (r RouteRequest) UsesCurrentLocation() bool {
	return strings.TrimSpace(r.Origin) == domain.CurrentLocationText && r.CurrentLocation != nil
}

// Swapped exchanges origin and destination. The current-location origin cannot be swapped.
func (r RouteRequest) Swapped() (RouteRequest, bool) {
	if strings.TrimSpace(r.Origin) == domain.CurrentLocationText {
		return r, false
	}
	r.Origin, r.Destination = r.Destination, r.Origin
	r.Swap = false
	return r, true
}

// RouteResult is the parsed answer for a RouteRequest.
type RouteResult struct {
	Origin      string        `json:"origin"`
	Destination string        `json:"destination"`
	Region      domain.Region `json:"region"`
	Route       string        `json:"route"`
	Steps       []RouteStep   `json:"steps"`
	Found       bool          `json:"found"`
}
