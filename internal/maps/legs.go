package maps

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"googlemaps.github.io/maps"

	"voyage/internal/itinerary"
)

// Estimator is the routing lookup LegPlanner needs. *RouteService
// implements it.
type Estimator interface {
	GetTravelEstimate(ctx context.Context, origin, destination string, mode maps.Mode) (time.Duration, string, error)
}

// Hop is one move between consecutive destinations.
type Hop struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Leg is a Hop with its estimate. Error is set instead of the estimate when
// the lookup for that hop failed; other legs are still reported.
type Leg struct {
	Hop
	Mode            string `json:"mode"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	Distance        string `json:"distance,omitempty"`
	Error           string `json:"error,omitempty"`
}

// Hops pairs consecutive destinations. Repeated stays in the same city
// produce no hop.
func Hops(dests []itinerary.Destination) []Hop {
	var hops []Hop
	for i := 1; i < len(dests); i++ {
		from, to := place(dests[i-1]), place(dests[i])
		if strings.EqualFold(from, to) {
			continue
		}
		hops = append(hops, Hop{From: from, To: to})
	}
	return hops
}

func place(d itinerary.Destination) string {
	city, country := strings.TrimSpace(d.City), strings.TrimSpace(d.Country)
	if country == "" {
		return city
	}
	return city + ", " + country
}

// LegPlanner estimates every hop of an itinerary. Driving is tried first,
// then transit.
type LegPlanner struct {
	routes Estimator
	modes  []maps.Mode
}

func NewLegPlanner(routes Estimator) *LegPlanner {
	return &LegPlanner{
		routes: routes,
		modes:  []maps.Mode{maps.TravelModeDriving, maps.TravelModeTransit},
	}
}

// Legs returns one Leg per hop. Only a cancelled or expired ctx fails the
// whole call.
func (p *LegPlanner) Legs(ctx context.Context, it itinerary.Itinerary) ([]Leg, error) {
	hops := Hops(it.Destinations)
	legs := make([]Leg, 0, len(hops))
	for _, h := range hops {
		leg, err := p.estimate(ctx, h)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			log.Printf("maps: %s -> %s: %v", h.From, h.To, err)
			leg.Error = err.Error()
		}
		legs = append(legs, leg)
	}
	return legs, nil
}

func (p *LegPlanner) estimate(ctx context.Context, h Hop) (Leg, error) {
	var lastErr error
	for _, mode := range p.modes {
		d, dist, err := p.routes.GetTravelEstimate(ctx, h.From, h.To, mode)
		if err == nil {
			return Leg{
				Hop:             h,
				Mode:            string(mode),
				DurationMinutes: int(d.Round(time.Minute) / time.Minute),
				Distance:        dist,
			}, nil
		}
		lastErr = err
		if !errors.Is(err, ErrNoRoute) {
			break
		}
	}
	return Leg{Hop: h, Mode: string(p.modes[0])}, lastErr
}
