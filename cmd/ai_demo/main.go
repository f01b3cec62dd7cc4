package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"voyage/internal/ai"
	"voyage/internal/modules/planner"
)

// One-shot generation straight against Gemini, bypassing the HTTP layer.
func main() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	prompt := "3 days in Kyoto in autumn, focused on temples and food"
	if len(os.Args) > 1 {
		prompt = strings.Join(os.Args[1:], " ")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	provider, err := ai.NewGeminiProvider(ctx, apiKey, os.Getenv("VOYAGE_GEMINI_MODEL"), ai.NewLogObserver(logger))
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	fmt.Printf("Prompt: %s\n", prompt)
	it, err := planner.NewService(provider, logger).Generate(ctx, prompt)
	if err != nil {
		log.Fatalf("Error generating itinerary: %v", err)
	}

	out, _ := json.MarshalIndent(it, "", "  ")
	fmt.Println(string(out))
}
