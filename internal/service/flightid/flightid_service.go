// Package flightid resolves a booking leg to a machine-readable flight
// identifier by searching the Airmax API and matching on date and flight
// number.
package flightid

import (
	"context"
	"log"

	"github.com/makersair/fhbridge/internal/airmax"
	"github.com/makersair/fhbridge/internal/domain"
	"github.com/makersair/fhbridge/internal/match"
)

type SearchAPI interface {
	SearchFlights(ctx context.Context, req airmax.SearchRequest) ([]domain.FlightCandidate, error)
}

type Cache interface {
	GetSearchResults(ctx context.Context, origin, destination, date string) ([]domain.FlightCandidate, error)
	SetSearchResults(ctx context.Context, origin, destination, date string, candidates []domain.FlightCandidate) error
}

type Resolver struct {
	search SearchAPI
	cache  Cache
}

type ResolverOption func(*Resolver)

func WithCache(cache Cache) ResolverOption {
	return func(r *Resolver) { r.cache = cache }
}

func NewResolver(search SearchAPI, opts ...ResolverOption) *Resolver {
	r := &Resolver{search: search}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve finds the flight identifier for one leg. Search failure, an empty
// result and a no-match all degrade to the booking's availability item pk
// (Legacy=true); resolution never fails outright and never aborts the
// surrounding webhook.
func (r *Resolver) Resolve(ctx context.Context, leg *domain.BookingLeg) domain.ResolvedLeg {
	date := leg.Date.Format("2006-01-02")

	candidates := r.cachedSearch(ctx, leg, date)
	if len(candidates) == 0 {
		log.Printf("no flights found for %s-%s on %s, falling back to item pk %d",
			leg.Origin, leg.Destination, date, leg.ItemPK)
		return legacy(leg)
	}

	candidate, ok := match.Find(candidates, leg.Date, leg.FlightNumber)
	if !ok {
		log.Printf("no candidate matched flight %s on %s among %d results, falling back to item pk %d",
			leg.FlightNumber, date, len(candidates), leg.ItemPK)
		return legacy(leg)
	}

	return domain.ResolvedLeg{Leg: leg, FlightID: candidate.Identifier}
}

func (r *Resolver) cachedSearch(ctx context.Context, leg *domain.BookingLeg, date string) []domain.FlightCandidate {
	if r.cache != nil {
		if cached, err := r.cache.GetSearchResults(ctx, leg.Origin, leg.Destination, date); err == nil && cached != nil {
			return cached
		}
	}

	candidates, err := r.search.SearchFlights(ctx, airmax.SearchRequest{
		DepartDateStart:   date,
		DepartDateEnd:     date,
		DepartOrigin:      leg.Origin,
		DepartDestination: leg.Destination,
		AdultCount:        1,
		InfantCount:       0,
	})
	if err != nil {
		log.Printf("flight search for %s-%s on %s failed: %v", leg.Origin, leg.Destination, date, err)
		return nil
	}
	if r.cache != nil && len(candidates) > 0 {
		_ = r.cache.SetSearchResults(ctx, leg.Origin, leg.Destination, date, candidates)
	}
	return candidates
}

func legacy(leg *domain.BookingLeg) domain.ResolvedLeg {
	return domain.ResolvedLeg{Leg: leg, FlightID: leg.ItemPK, Legacy: true}
}
