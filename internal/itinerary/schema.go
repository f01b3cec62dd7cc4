// README: Single declaration of the itinerary shape shared by the validator and the LLM output schemas.
package itinerary

// Kind is the JSON type a Field must carry.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindObject
	KindArray
	// KindTimestamp is an RFC 3339 string.
	KindTimestamp
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindTimestamp:
		return "timestamp"
	default:
		return "unknown"
	}
}

// Field describes one node of the itinerary tree.
type Field struct {
	Name        string
	Kind        Kind
	Required    bool
	Positive    bool
	MinItems    int
	Description string
	// Assigned fields are set by the owner of the itinerary, never by the model.
	// They are optional on input and left out of provider output schemas.
	Assigned bool
	Fields   []Field
	Elem     *Field
}

func str(name, desc string) Field {
	return Field{Name: name, Kind: KindString, Required: true, Description: desc}
}

func optStr(name, desc string) Field {
	return Field{Name: name, Kind: KindString, Description: desc}
}

func posInt(name, desc string) Field {
	return Field{Name: name, Kind: KindInteger, Required: true, Positive: true, Description: desc}
}

func strList(name, desc string) Field {
	return Field{Name: name, Kind: KindArray, Description: desc, Elem: &Field{Kind: KindString}}
}

// ActivitySchema describes one scheduled event.
var ActivitySchema = Field{
	Name: "activity",
	Kind: KindObject,
	Fields: []Field{
		str("time", `Time of day (e.g., "9:00 AM", "2:00 PM")`),
		str("title", "Name of the activity or attraction"),
		str("description", "Brief description of what to do/see"),
		str("duration", `Estimated duration (e.g., "2 hours", "Half day")`),
		optStr("cost", `Estimated cost range (e.g., "€15-25", "Free")`),
		optStr("tips", "Helpful tips or recommendations"),
	},
}

// DayPlanSchema describes one day of the trip.
var DayPlanSchema = Field{
	Name: "day_plan",
	Kind: KindObject,
	Fields: []Field{
		posInt("day", "Day number of the trip"),
		optStr("date", "Suggested date (if specific dates provided)"),
		str("location", "Primary city/location for this day"),
		str("theme", "Overall theme or focus of the day"),
		{Name: "activities", Kind: KindArray, Required: true, Description: "List of activities for the day", Elem: &ActivitySchema},
		{Name: "meals", Kind: KindObject, Description: "Meal recommendations", Fields: []Field{
			optStr("breakfast", "Breakfast recommendation"),
			optStr("lunch", "Lunch recommendation"),
			optStr("dinner", "Dinner recommendation"),
		}},
		optStr("accommodation", "Where to stay (if changing locations)"),
		optStr("transportation", "How to get around or to next destination"),
		optStr("budget_estimate", "Estimated daily budget"),
	},
}

// DestinationSchema describes one stop of the trip.
var DestinationSchema = Field{
	Name: "destination",
	Kind: KindObject,
	Fields: []Field{
		str("city", "City name"),
		str("country", "Country name"),
		posInt("days_spent", "Number of days spent at this destination"),
	},
}

var budgetSchema = Field{
	Name:        "budget_breakdown",
	Kind:        KindObject,
	Description: "Estimated cost ranges",
	Fields: []Field{
		str("accommodation", "Estimated accommodation costs"),
		str("food", "Estimated food costs"),
		str("activities", "Estimated activity costs"),
		str("transportation", "Estimated transportation costs"),
		str("total_estimate", "Total estimated budget"),
	},
}

// Schema is the itinerary root. Every producer and consumer of itinerary
// JSON derives its shape from this value.
var Schema = Field{
	Name: "itinerary",
	Kind: KindObject,
	Fields: []Field{
		{Name: "id", Kind: KindString, Assigned: true, Description: "Unique identifier for the itinerary"},
		str("title", "Catchy title for the itinerary"),
		str("overview", "Brief overview of the trip"),
		posInt("duration", "Total number of days"),
		{Name: "destinations", Kind: KindArray, Required: true, MinItems: 1, Description: "List of main destinations", Elem: &DestinationSchema},
		str("trip_style", "Type of trip (relaxing, adventure, cultural, etc.)"),
		str("best_time_to_visit", "Recommended time of year"),
		{Name: "daily_itinerary", Kind: KindArray, Required: true, Description: "Day-by-day plan", Elem: &DayPlanSchema},
		strList("packing_suggestions", "What to pack"),
		budgetSchema,
		strList("important_notes", "Important travel tips or warnings"),
		{Name: "created_at", Kind: KindTimestamp, Assigned: true, Description: "When the itinerary was created"},
		{Name: "updated_at", Kind: KindTimestamp, Assigned: true, Description: "When the itinerary was last updated"},
	},
}
