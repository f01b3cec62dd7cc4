// README: Itinerary aggregate and its nested value types.
package itinerary

import "time"

// Itinerary is the root travel plan. ID and CreatedAt are assigned by the
// owner on creation and survive every refinement.
type Itinerary struct {
	ID                 string           `json:"id,omitempty"`
	Title              string           `json:"title"`
	Overview           string           `json:"overview"`
	Duration           int              `json:"duration"`
	Destinations       []Destination    `json:"destinations"`
	TripStyle          string           `json:"trip_style"`
	BestTimeToVisit    string           `json:"best_time_to_visit"`
	DailyItinerary     []DayPlan        `json:"daily_itinerary"`
	PackingSuggestions []string         `json:"packing_suggestions,omitempty"`
	BudgetBreakdown    *BudgetBreakdown `json:"budget_breakdown,omitempty"`
	ImportantNotes     []string         `json:"important_notes,omitempty"`
	CreatedAt          time.Time        `json:"created_at,omitzero"`
	UpdatedAt          *time.Time       `json:"updated_at,omitempty"`
}

type Destination struct {
	City      string `json:"city"`
	Country   string `json:"country"`
	DaysSpent int    `json:"days_spent"`
}

// DayPlan is one day's schedule. Day numbers are expected to be sequential
// but nothing enforces it.
type DayPlan struct {
	Day            int        `json:"day"`
	Date           string     `json:"date,omitempty"`
	Location       string     `json:"location"`
	Theme          string     `json:"theme"`
	Activities     []Activity `json:"activities"`
	Meals          *Meals     `json:"meals,omitempty"`
	Accommodation  string     `json:"accommodation,omitempty"`
	Transportation string     `json:"transportation,omitempty"`
	BudgetEstimate string     `json:"budget_estimate,omitempty"`
}

// Activity times, durations and costs are free-text labels ("9:00 AM",
// "2 hours", "€15-25") and are never parsed.
type Activity struct {
	Time        string `json:"time"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Cost        string `json:"cost,omitempty"`
	Tips        string `json:"tips,omitempty"`
}

type Meals struct {
	Breakfast string `json:"breakfast,omitempty"`
	Lunch     string `json:"lunch,omitempty"`
	Dinner    string `json:"dinner,omitempty"`
}

type BudgetBreakdown struct {
	Accommodation  string `json:"accommodation"`
	Food           string `json:"food"`
	Activities     string `json:"activities"`
	Transportation string `json:"transportation"`
	TotalEstimate  string `json:"total_estimate"`
}

// WithIdentity returns a copy of it carrying id and createdAt.
func (it Itinerary) WithIdentity(id string, createdAt time.Time) Itinerary {
	it.ID = id
	it.CreatedAt = createdAt
	return it
}
