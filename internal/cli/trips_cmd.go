package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"voyage/internal/cli/formatter"
)

func newTripsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trips",
		Short: "Manage saved trips",
	}
	cmd.AddCommand(
		newTripsListCmd(app),
		newTripsShowCmd(app),
		newTripsDeleteCmd(app),
		newTripsLegsCmd(app),
		newTripsPlacesCmd(app),
	)
	return cmd
}

func newTripsListCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved trips, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := app.Trips.ListTrips(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTrips(list, time.Now()))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of trips")
	return cmd
}

func newTripsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := app.Trips.GetTrip(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatItinerary(*it))
			return nil
		},
	}
}

func newTripsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Trips.DeleteTrip(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("deleted "+args[0]))
			return nil
		},
	}
}

func newTripsLegsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "legs <id>",
		Short: "Estimate travel time between a trip's destinations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			legs, err := app.Trips.Legs(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatLegs(legs))
			return nil
		},
	}
}

func newTripsPlacesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "places <id> <query>",
		Short: "Suggest well-rated places at a trip's destinations",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			places, err := app.Trips.Places(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlaces(places))
			return nil
		},
	}
}
