// README: Shared itinerary fixtures for tests across packages.
package testutil

import (
	"encoding/json"

	"voyage/internal/itinerary"
)

// ParisJSON is a three-day plan in the shape an LLM returns it: no id and
// no timestamps.
const ParisJSON = `{
  "title": "Three Days in Paris",
  "overview": "Museums, cafés and a river cruise through the French capital.",
  "duration": 3,
  "destinations": [{"city": "Paris", "country": "France", "days_spent": 3}],
  "trip_style": "Cultural",
  "best_time_to_visit": "April-June",
  "daily_itinerary": [
    {
      "day": 1,
      "location": "Paris",
      "theme": "Arrival & First Impressions",
      "activities": [
        {"time": "10:00 AM", "title": "Airport Transfer", "description": "RER B into the city", "duration": "1 hour", "cost": "€12"},
        {"time": "2:00 PM", "title": "Eiffel Tower Visit", "description": "Summit views over Paris", "duration": "3 hours", "cost": "€15-25", "tips": "Book tickets online to skip the lines"}
      ],
      "meals": {"lunch": "Café de Flore", "dinner": "Le Relais de l'Entrecôte"},
      "accommodation": "Hotel Malte Opera",
      "budget_estimate": "€150-200"
    },
    {
      "day": 2,
      "location": "Paris",
      "theme": "Art & Museums",
      "activities": [
        {"time": "9:00 AM", "title": "Louvre", "description": "Mona Lisa and the Egyptian wing", "duration": "4 hours", "cost": "€22"}
      ]
    },
    {
      "day": 3,
      "location": "Paris",
      "theme": "Montmartre",
      "activities": [
        {"time": "10:00 AM", "title": "Sacré-Cœur", "description": "Hilltop basilica", "duration": "2 hours", "cost": "Free"}
      ],
      "transportation": "Metro line 2 to Anvers"
    }
  ],
  "packing_suggestions": ["Comfortable walking shoes", "Light rain jacket"],
  "budget_breakdown": {
    "accommodation": "€450-600",
    "food": "€180-240",
    "activities": "€60-90",
    "transportation": "€40",
    "total_estimate": "€730-970 per person"
  },
  "important_notes": ["Many museums close on Mondays or Tuesdays"]
}`

// Paris returns a freshly decoded copy of ParisJSON.
func Paris() itinerary.Itinerary {
	var it itinerary.Itinerary
	if err := json.Unmarshal([]byte(ParisJSON), &it); err != nil {
		panic(err)
	}
	return it
}

// ParisWith returns ParisJSON with top-level keys replaced or added.
func ParisWith(overrides map[string]any) []byte {
	var obj map[string]any
	if err := json.Unmarshal([]byte(ParisJSON), &obj); err != nil {
		panic(err)
	}
	for k, v := range overrides {
		obj[k] = v
	}
	raw, err := json.Marshal(obj)
	if err != nil {
		panic(err)
	}
	return raw
}

// ParisWithout returns ParisJSON with the named top-level keys removed.
func ParisWithout(keys ...string) []byte {
	var obj map[string]any
	if err := json.Unmarshal([]byte(ParisJSON), &obj); err != nil {
		panic(err)
	}
	for _, k := range keys {
		delete(obj, k)
	}
	raw, err := json.Marshal(obj)
	if err != nil {
		panic(err)
	}
	return raw
}
