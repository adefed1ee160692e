package services

import (
	"context"
	"fmt"
	"strings"

	"along/internal/domain"
	"along/internal/domain/models"
	"along/internal/provider"
	"along/internal/steps"
	"along/internal/utils"
)

// RouteService answers route searches and keeps the session history.
type RouteService struct {
	Provider      provider.RouteTextProvider
	History       *HistoryBook
	DefaultRegion domain.Region
	RequestID     string
}

// Search asks the provider for directions, parses them into steps and, once
// the provider has answered, counts the search in the session history.
func (s RouteService) Search(ctx context.Context, session string, req models.RouteRequest) (models.RouteResult, error) {
	if req.Swap {
		swapped, ok := req.Swapped()
		if !ok {
			return models.RouteResult{}, domain.ValidationError{Field: "swap", Msg: "current location cannot be used as a destination"}
		}
		req = swapped
	}
	origin := utils.NormalizeSpace(req.Origin)
	destination := utils.NormalizeSpace(req.Destination)
	if origin == "" || destination == "" {
		return models.RouteResult{}, domain.ValidationError{Msg: "Missing required fields"}
	}

	fallback := s.DefaultRegion
	if !fallback.IsValid() {
		fallback = domain.DefaultRegion
	}
	region, err := domain.ParseRegion(req.State, fallback)
	if err != nil {
		return models.RouteResult{}, err
	}

	q := provider.RouteQuery{Origin: origin, Destination: destination, Region: region}
	if req.UsesCurrentLocation() {
		if !req.CurrentLocation.IsValid() {
			return models.RouteResult{}, domain.ValidationError{Field: "currentLocation", Msg: "coordinates out of range"}
		}
		coords := *req.CurrentLocation
		q.Coordinates = &coords
	}

	utils.LogEvent(s.RequestID, "route", "search", fmt.Sprintf("region=%s location=%t", region, q.Coordinates != nil))

	text, err := s.Provider.FetchRoute(ctx, q)
	if err != nil {
		utils.LogFailure(s.RequestID, "route", "fetch_route", err)
		return models.RouteResult{}, err
	}

	if s.History != nil {
		store := s.History.Session(ctx, session)
		if err := store.Record(ctx, origin, destination, region); err != nil {
			utils.LogFailure(s.RequestID, "route", "record_history", err)
		}
	}

	parsed := steps.Parse(text)
	return models.RouteResult{
		Origin:      origin,
		Destination: destination,
		Region:      region,
		Route:       strings.TrimSpace(text),
		Steps:       parsed,
		Found:       len(parsed) > 0,
	}, nil
}

// HistoryOf returns the ranked history of session.
func (s RouteService) HistoryOf(ctx context.Context, session string) []models.HistoryEntry {
	if s.History == nil {
		return []models.HistoryEntry{}
	}
	entries := s.History.Session(ctx, session).List()
	utils.LogEvent(s.RequestID, "route", "history", fmt.Sprintf("entries=%d", len(entries)))
	return entries
}
