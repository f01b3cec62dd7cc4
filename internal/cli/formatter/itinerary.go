// README: Terminal rendering of itineraries, chat transcripts, trips and legs.
package formatter

import (
	"fmt"
	"strings"
	"time"

	"voyage/internal/itinerary"
	"voyage/internal/maps"
	"voyage/internal/modules/chat"
	"voyage/internal/modules/trips"
)

// FormatItinerary renders the full plan: overview box, one section per day,
// then budget, packing and notes when present.
func FormatItinerary(it itinerary.Itinerary) string {
	var b strings.Builder

	places := make([]string, 0, len(it.Destinations))
	for _, d := range it.Destinations {
		places = append(places, fmt.Sprintf("%s, %s (%dd)", d.City, d.Country, d.DaysSpent))
	}
	summary := []string{
		it.Overview,
		"",
		fmt.Sprintf("%s  %s", Dim("Duration"), pluralDays(it.Duration)),
		fmt.Sprintf("%s  %s", Dim("Style   "), it.TripStyle),
		fmt.Sprintf("%s  %s", Dim("Route   "), strings.Join(places, " → ")),
		fmt.Sprintf("%s  %s", Dim("Best    "), it.BestTimeToVisit),
	}
	b.WriteString(RenderBox(it.Title, strings.Join(summary, "\n")))
	b.WriteString("\n")

	for _, day := range it.DailyItinerary {
		b.WriteString("\n")
		b.WriteString(Header(fmt.Sprintf("Day %d · %s", day.Day, day.Location)))
		b.WriteString("\n")
		b.WriteString(StyleBlue.Render(day.Theme))
		b.WriteString("\n")
		for _, a := range day.Activities {
			fmt.Fprintf(&b, "  %s  %s %s\n", StyleYellow.Render(fmt.Sprintf("%-9s", a.Time)), Bold(a.Title), Dim("("+a.Duration+")"))
			fmt.Fprintf(&b, "             %s\n", a.Description)
			if a.Cost != "" {
				fmt.Fprintf(&b, "             %s %s\n", Dim("cost:"), a.Cost)
			}
			if a.Tips != "" {
				fmt.Fprintf(&b, "             %s %s\n", Dim("tip:"), a.Tips)
			}
		}
		if day.Meals != nil {
			meals := []string{}
			for _, m := range []struct{ label, v string }{
				{"breakfast", day.Meals.Breakfast},
				{"lunch", day.Meals.Lunch},
				{"dinner", day.Meals.Dinner},
			} {
				if m.v != "" {
					meals = append(meals, m.label+": "+m.v)
				}
			}
			if len(meals) > 0 {
				fmt.Fprintf(&b, "  %s %s\n", Dim("meals"), strings.Join(meals, " · "))
			}
		}
		if day.Accommodation != "" {
			fmt.Fprintf(&b, "  %s %s\n", Dim("stay "), day.Accommodation)
		}
		if day.Transportation != "" {
			fmt.Fprintf(&b, "  %s %s\n", Dim("move "), day.Transportation)
		}
		if day.BudgetEstimate != "" {
			fmt.Fprintf(&b, "  %s %s\n", Dim("budget"), day.BudgetEstimate)
		}
	}

	if bb := it.BudgetBreakdown; bb != nil {
		b.WriteString("\n")
		b.WriteString(Header("Budget"))
		b.WriteString("\n")
		for _, row := range [][2]string{
			{"Accommodation", bb.Accommodation},
			{"Food", bb.Food},
			{"Activities", bb.Activities},
			{"Transportation", bb.Transportation},
			{"Total", bb.TotalEstimate},
		} {
			if row[1] != "" {
				fmt.Fprintf(&b, "  %-15s %s\n", row[0], row[1])
			}
		}
	}
	writeList(&b, "Packing", it.PackingSuggestions)
	writeList(&b, "Notes", it.ImportantNotes)
	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n")
	b.WriteString(Header(title))
	b.WriteString("\n")
	for _, item := range items {
		fmt.Fprintf(b, "  • %s\n", item)
	}
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// FormatMessage renders one transcript line, colored by role.
func FormatMessage(m chat.Message) string {
	switch m.Role {
	case chat.RoleUser:
		return StyleBlue.Render("you ›") + " " + m.Content
	case chat.RoleAssistant:
		return StyleGreen.Render("voyage ›") + " " + m.Content
	default:
		return StyleRed.Render("! " + m.Content)
	}
}

// FormatItineraryList numbers itineraries from 1 and marks the current one.
func FormatItineraryList(list []itinerary.Itinerary, currentID string) string {
	if len(list) == 0 {
		return Dim("No itineraries yet.")
	}
	var b strings.Builder
	for i, it := range list {
		marker := "  "
		if it.ID == currentID {
			marker = StyleGreen.Render("▸ ")
		}
		fmt.Fprintf(&b, "%s%d. %s %s\n", marker, i+1, it.Title, Dim("("+pluralDays(it.Duration)+", "+it.TripStyle+")"))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatTrips renders saved trip summaries as a table.
func FormatTrips(list []trips.Summary, now time.Time) string {
	if len(list) == 0 {
		return Dim("No saved trips.")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", StyleHeader.Render(fmt.Sprintf("%-36s  %-32s  %4s  %s", "ID", "TITLE", "DAYS", "SAVED")))
	for _, s := range list {
		fmt.Fprintf(&b, "%-36s  %-32s  %4d  %s\n", s.ID, truncate(s.Title, 32), s.Duration, Dim(relative(s.CreatedAt, now)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatLegs renders travel estimates between destinations.
func FormatLegs(legs []maps.Leg) string {
	if len(legs) == 0 {
		return Dim("Single destination; no travel legs.")
	}
	var b strings.Builder
	for _, l := range legs {
		route := fmt.Sprintf("%s → %s", l.From, l.To)
		if l.Error != "" {
			fmt.Fprintf(&b, "%s  %s\n", route, StyleRed.Render(l.Error))
			continue
		}
		fmt.Fprintf(&b, "%s  %s %s\n", route, StyleYellow.Render(humanMinutes(l.DurationMinutes)), Dim(l.Mode+", "+l.Distance))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatPlaces groups place suggestions under the destination they were
// found near.
func FormatPlaces(places []maps.Place) string {
	if len(places) == 0 {
		return Dim("Nothing found.")
	}
	var b strings.Builder
	near := ""
	for _, p := range places {
		if p.Near != near {
			near = p.Near
			b.WriteString(Header(near))
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "  %s %s %s\n", Bold(p.Name), StyleYellow.Render(fmt.Sprintf("★%.1f", p.Rating)), Dim(p.Address))
	}
	return strings.TrimRight(b.String(), "\n")
}

func humanMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	if m%60 == 0 {
		return fmt.Sprintf("%dh", m/60)
	}
	return fmt.Sprintf("%dh%02dm", m/60, m%60)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func relative(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 14*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
