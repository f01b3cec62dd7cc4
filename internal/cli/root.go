// README: Cobra command tree for the voyage terminal client.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"voyage/internal/itinerary"
	"voyage/internal/maps"
	"voyage/internal/modules/chat"
	"voyage/internal/modules/trips"
)

// TripsAPI is the saved-trip surface of the server. *apiclient.Client
// implements it.
type TripsAPI interface {
	ListTrips(ctx context.Context, limit int) ([]trips.Summary, error)
	GetTrip(ctx context.Context, id string) (*itinerary.Itinerary, error)
	SaveTrip(ctx context.Context, id string, it itinerary.Itinerary) (*itinerary.Itinerary, error)
	DeleteTrip(ctx context.Context, id string) error
	Legs(ctx context.Context, id string) ([]maps.Leg, error)
	Places(ctx context.Context, id, query string) ([]maps.Place, error)
}

// App holds what the commands act on. Chat is a local state container whose
// generator and refiner call the server.
type App struct {
	Chat  *chat.Chat
	Trips TripsAPI
}

// NewRootCmd creates the top-level "voyage" command.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "voyage",
		Short:         "Plan and refine travel itineraries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newChatCmd(app),
		newGenerateCmd(app),
		newTripsCmd(app),
	)
	return root
}
