// README: Google Places text search for well-rated spots at each destination.
package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"voyage/internal/itinerary"
)

const (
	minPlaceRating   = 4.0
	placesPerStop    = 3
	maxPlaceQueryLen = 80
)

// Place is a trimmed Places result.
type Place struct {
	Near             string  `json:"near"`
	Name             string  `json:"name"`
	Address          string  `json:"address"`
	Rating           float32 `json:"rating"`
	PlaceID          string  `json:"place_id"`
	UserRatingsTotal int     `json:"user_ratings_total"`
}

// ErrBadQuery is returned for an empty or oversize search query.
var ErrBadQuery = errors.New("invalid places query")

type textSearcher interface {
	TextSearch(ctx context.Context, r *maps.TextSearchRequest) (maps.PlacesSearchResponse, error)
}

type PlacesService struct {
	client textSearcher
}

func NewPlacesService(apiKey string) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client}, nil
}

// SearchNearby returns up to three places rated 4.0 or better matching query
// near location. Names containing any exclude term are skipped.
func (s *PlacesService) SearchNearby(ctx context.Context, location, query string, exclude []string) ([]Place, error) {
	q := strings.TrimSpace(query)
	if location != "" {
		q = fmt.Sprintf("%s near %s", q, location)
	}
	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{Query: q, Language: "en"})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	var out []Place
	for _, r := range resp.Results {
		if r.Rating < minPlaceRating || containsAny(r.Name, exclude) {
			continue
		}
		out = append(out, Place{
			Near:             location,
			Name:             r.Name,
			Address:          r.FormattedAddress,
			Rating:           r.Rating,
			PlaceID:          r.PlaceID,
			UserRatingsTotal: r.UserRatingsTotal,
		})
		if len(out) >= placesPerStop {
			break
		}
	}
	return out, nil
}

// SearchTrip runs SearchNearby for every distinct destination of it and
// merges the results by place id. Destinations whose lookup fails are
// skipped; an error is returned only when ctx is done.
func (s *PlacesService) SearchTrip(ctx context.Context, it itinerary.Itinerary, query string) ([]Place, error) {
	query = strings.TrimSpace(query)
	if query == "" || len(query) > maxPlaceQueryLen {
		return nil, fmt.Errorf("%w: must be 1-%d characters", ErrBadQuery, maxPlaceQueryLen)
	}

	seen := make(map[string]bool)
	stops := make(map[string]bool)
	places := []Place{}
	for _, d := range it.Destinations {
		stop := place(d)
		if stops[strings.ToLower(stop)] {
			continue
		}
		stops[strings.ToLower(stop)] = true

		results, err := s.SearchNearby(ctx, stop, query, nil)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		for _, p := range results {
			if !seen[p.PlaceID] {
				seen[p.PlaceID] = true
				places = append(places, p)
			}
		}
	}
	return places, nil
}

func containsAny(s string, terms []string) bool {
	lower := strings.ToLower(s)
	for _, t := range terms {
		if t != "" && strings.Contains(lower, strings.ToLower(t)) {
			return true
		}
	}
	return false
}
