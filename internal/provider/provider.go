// Package provider asks a text model for public-transport directions.
package provider

import (
	"context"
	"strings"

	"along/internal/domain"
)

// RouteQuery is what a provider needs to describe a route.
type RouteQuery struct {
	Origin      string
	Destination string
	Region      domain.Region
	Coordinates *domain.Coordinates
}

// RouteTextProvider returns free-form numbered-list directions.
// Failures are domain.ProviderError values.
type RouteTextProvider interface {
	FetchRoute(ctx context.Context, q RouteQuery) (string, error)
}

func (q RouteQuery) validate() error {
	switch {
	case strings.TrimSpace(q.Origin) == "":
		return domain.ProviderError{Kind: domain.ProviderInvalidInput, Msg: "origin is required"}
	case strings.TrimSpace(q.Destination) == "":
		return domain.ProviderError{Kind: domain.ProviderInvalidInput, Msg: "destination is required"}
	case !q.Region.IsValid():
		return domain.ProviderError{Kind: domain.ProviderInvalidInput, Msg: "unsupported region " + string(q.Region)}
	case q.Coordinates != nil && !q.Coordinates.IsValid():
		return domain.ProviderError{Kind: domain.ProviderInvalidInput, Msg: "coordinates out of range"}
	}
	return nil
}

// Unconfigured stands in when no API key is set.
type Unconfigured struct{}

func (Unconfigured) FetchRoute(context.Context, RouteQuery) (string, error) {
	return "", domain.ProviderError{
		Kind: domain.ProviderAuth,
		Msg:  "API key is not configured. Please add it to your environment variables.",
	}
}
