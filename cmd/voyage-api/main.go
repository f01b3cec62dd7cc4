// README: Entry point; loads config, wires services, starts HTTP server and background sweeps.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"voyage/internal/ai"
	"voyage/internal/config"
	httptransport "voyage/internal/http"
	"voyage/internal/http/handlers"
	"voyage/internal/http/middleware"
	"voyage/internal/infra"
	"voyage/internal/maps"
	"voyage/internal/modules/chat"
	"voyage/internal/modules/planner"
	"voyage/internal/modules/quota"
	"voyage/internal/modules/trips"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	provider, closeProvider, err := newProvider(ctx, cfg.AI, logger)
	if err != nil {
		log.Fatalf("ai provider: %v", err)
	}
	defer closeProvider()

	var p planner.Planner = planner.NewService(provider, logger)
	if cfg.Redis.Addr != "" && cfg.CacheTTL > 0 {
		rdb, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			log.Fatal(err)
		}
		defer rdb.Close()
		p = planner.NewCachedService(p, rdb, cfg.CacheTTL)
	}

	var (
		q         handlers.Quota
		tripRoute *handlers.TripHandler
	)
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
		defer dbPool.Close()

		if cfg.QuotaMonthly > 0 {
			q = quota.NewService(quota.NewStore(dbPool, cfg.QuotaMonthly))
		}

		var (
			legs   handlers.LegPlanner
			places handlers.PlaceFinder
		)
		if cfg.Maps.APIKey != "" {
			routes, err := maps.NewRouteService(cfg.Maps.APIKey)
			if err != nil {
				log.Fatal(err)
			}
			legs = maps.NewLegPlanner(routes)
			if places, err = maps.NewPlacesService(cfg.Maps.APIKey); err != nil {
				log.Fatal(err)
			}
		}
		tripRoute = handlers.NewTripHandler(trips.NewService(trips.NewStore(dbPool)), legs, places)
	} else {
		log.Printf("VOYAGE_DB_DSN not set; trips and quota are disabled")
	}

	sessions := chat.NewRegistry(func() *chat.Chat { return chat.New(p, p) }, nil)
	limiter := middleware.NewRateLimiter(cfg.HTTP.RatePerMin)

	sweeper := cron.New()
	if _, err := sweeper.AddFunc("@every 1m", func() {
		if n := sessions.Sweep(cfg.SessionIdle); n > 0 {
			log.Printf("swept %d idle sessions", n)
		}
		limiter.Sweep(cfg.SessionIdle)
	}); err != nil {
		log.Fatal(err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	gin.SetMode(gin.ReleaseMode)
	router := httptransport.NewRouter(httptransport.RouterDeps{
		Itineraries: handlers.NewItineraryHandler(p, q, cfg.AI.Timeout),
		Sessions:    handlers.NewSessionHandler(sessions, q, cfg.AI.Timeout),
		Trips:       tripRoute,
		RateLimiter: limiter,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	})

	if err := httptransport.NewServer(cfg.HTTP.Addr, router).Run(ctx); err != nil {
		log.Fatal(err)
	}
}

func newProvider(ctx context.Context, cfg config.AIConfig, logger *slog.Logger) (ai.LLMProvider, func(), error) {
	observer := ai.NewLogObserver(logger)
	switch cfg.Provider {
	case config.ProviderOpenAI:
		p, err := ai.NewOpenAIProvider(cfg.OpenAIKey,
			ai.WithOpenAIBaseURL(cfg.OpenAIBaseURL),
			ai.WithOpenAIModel(cfg.OpenAIModel),
			ai.WithOpenAIObserver(observer),
		)
		return p, func() {}, err
	default:
		p, err := ai.NewGeminiProvider(ctx, cfg.GeminiKey, cfg.GeminiModel, observer)
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil
	}
}
