// README: Terminal client; drives a local chat against a running voyage-api.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"voyage/internal/apiclient"
	"voyage/internal/cli"
	"voyage/internal/modules/chat"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	baseURL := os.Getenv("VOYAGE_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	// A stable id keeps quota and saved trips attached to this user.
	clientID := os.Getenv("VOYAGE_CLIENT_ID")
	if clientID == "" {
		clientID = "cli-" + uuid.NewString()
	}

	client := apiclient.New(baseURL, apiclient.WithClientID(clientID))
	app := &cli.App{
		Chat:  chat.New(client, client),
		Trips: client,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
