// README: Interactive chat loop over the local chat state container.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"voyage/internal/cli/formatter"
	"voyage/internal/modules/chat"
)

const chatHelp = `Type a request to plan a trip. Once an itinerary exists, plain text refines it.
  /new <prompt>   start a fresh itinerary
  /list           list itineraries in this chat
  /select <n>     make itinerary n current
  /delete <n>     delete itinerary n
  /show           print the current itinerary
  /save           save the current itinerary as a trip
  /clear          clear the transcript
  /reset          clear the transcript and all itineraries
  /quit           leave`

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Plan a trip interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := &shell{app: app, out: cmd.OutOrStdout()}
			return s.run(cmd.Context(), cmd.InOrStdin())
		},
	}
}

type shell struct {
	app  *App
	out  io.Writer
	seen int
}

func (s *shell) run(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(s.out, formatter.Dim(chatHelp))
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, formatter.StyleBlue.Render("› "))
		if !sc.Scan() {
			fmt.Fprintln(s.out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if quit := s.handle(ctx, line); quit {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// handle runs one input line and reports whether the loop should stop.
func (s *shell) handle(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/quit", "/exit":
		return true
	case "/help":
		fmt.Fprintln(s.out, formatter.Dim(chatHelp))
	case "/new":
		s.call(func() (chat.Outcome, error) { return s.app.Chat.GenerateItinerary(ctx, arg) })
	case "/list":
		st := s.app.Chat.Snapshot()
		fmt.Fprintln(s.out, formatter.FormatItineraryList(st.Itineraries, currentID(st)))
	case "/select", "/delete":
		s.byIndex(cmd, arg)
	case "/show":
		if cur := s.app.Chat.Snapshot().CurrentItinerary; cur != nil {
			fmt.Fprintln(s.out, formatter.FormatItinerary(*cur))
		} else {
			fmt.Fprintln(s.out, formatter.Dim("No current itinerary."))
		}
	case "/save":
		s.save(ctx)
	case "/clear":
		s.app.Chat.ClearMessages()
		s.seen = 0
	case "/reset":
		s.app.Chat.ClearAll()
		s.seen = 0
	default:
		if strings.HasPrefix(cmd, "/") {
			fmt.Fprintln(s.out, formatter.StyleRed.Render("unknown command "+cmd))
			return false
		}
		if s.app.Chat.Snapshot().CurrentItinerary == nil {
			s.call(func() (chat.Outcome, error) { return s.app.Chat.GenerateItinerary(ctx, line) })
		} else {
			s.call(func() (chat.Outcome, error) { return s.app.Chat.RefineItinerary(ctx, line) })
		}
	}
	return false
}

func (s *shell) call(fn func() (chat.Outcome, error)) {
	fmt.Fprintln(s.out, formatter.Dim("planning..."))
	out, err := fn()
	if err != nil {
		fmt.Fprintln(s.out, formatter.StyleRed.Render(err.Error()))
		return
	}
	st := s.printNew()
	if out == chat.OutcomeSucceeded && st.CurrentItinerary != nil {
		fmt.Fprintln(s.out, formatter.FormatItinerary(*st.CurrentItinerary))
	}
}

// printNew writes transcript entries not shown yet, skipping the user's own
// lines which are already on screen.
func (s *shell) printNew() chat.State {
	st := s.app.Chat.Snapshot()
	if s.seen > len(st.Messages) {
		s.seen = 0
	}
	for _, m := range st.Messages[s.seen:] {
		if m.Role != chat.RoleUser {
			fmt.Fprintln(s.out, formatter.FormatMessage(m))
		}
	}
	s.seen = len(st.Messages)
	return st
}

func (s *shell) byIndex(cmd, arg string) {
	st := s.app.Chat.Snapshot()
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(st.Itineraries) {
		fmt.Fprintln(s.out, formatter.StyleRed.Render(fmt.Sprintf("%s expects a number between 1 and %d", cmd, len(st.Itineraries))))
		return
	}
	id := st.Itineraries[n-1].ID
	if cmd == "/select" {
		s.app.Chat.SelectItinerary(id)
	} else {
		s.app.Chat.DeleteItinerary(id)
	}
	st = s.app.Chat.Snapshot()
	fmt.Fprintln(s.out, formatter.FormatItineraryList(st.Itineraries, currentID(st)))
}

func (s *shell) save(ctx context.Context) {
	cur := s.app.Chat.Snapshot().CurrentItinerary
	if cur == nil {
		fmt.Fprintln(s.out, formatter.Dim("No current itinerary."))
		return
	}
	if s.app.Trips == nil {
		fmt.Fprintln(s.out, formatter.StyleRed.Render("saving is not available"))
		return
	}
	saved, err := s.app.Trips.SaveTrip(ctx, cur.ID, *cur)
	if err != nil {
		fmt.Fprintln(s.out, formatter.StyleRed.Render("save failed: "+err.Error()))
		return
	}
	fmt.Fprintln(s.out, formatter.StyleGreen.Render("saved as "+saved.ID))
}

func currentID(st chat.State) string {
	if st.CurrentItinerary == nil {
		return ""
	}
	return st.CurrentItinerary.ID
}
