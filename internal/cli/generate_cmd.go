package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"voyage/internal/cli/formatter"
	"voyage/internal/modules/chat"
)

func newGenerateCmd(app *App) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "generate <prompt>",
		Short: "Generate one itinerary and print it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := app.Chat.GenerateItinerary(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			st := app.Chat.Snapshot()
			if out != chat.OutcomeSucceeded || st.CurrentItinerary == nil {
				if st.Request.Error != "" {
					return errors.New(st.Request.Error)
				}
				return fmt.Errorf("generation %s", out)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, formatter.FormatItinerary(*st.CurrentItinerary))

			if save {
				saved, err := app.Trips.SaveTrip(cmd.Context(), st.CurrentItinerary.ID, *st.CurrentItinerary)
				if err != nil {
					return fmt.Errorf("save trip: %w", err)
				}
				fmt.Fprintln(w, formatter.Dim("saved as "+saved.ID))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "save the result as a trip")
	return cmd
}
