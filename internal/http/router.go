// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyage/internal/http/handlers"
	"voyage/internal/http/middleware"
)

// RouterDeps carries the pieces NewRouter mounts. Trips is optional; the
// trip routes are left out when it is nil.
type RouterDeps struct {
	Itineraries *handlers.ItineraryHandler
	Sessions    *handlers.SessionHandler
	Trips       *handlers.TripHandler
	RateLimiter *middleware.RateLimiter
	CORSOrigins []string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.ClientID(), middleware.Logging())
	if len(deps.CORSOrigins) > 0 {
		r.Use(middleware.CORS(deps.CORSOrigins))
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")
	if deps.RateLimiter != nil {
		api.Use(deps.RateLimiter.Limit())
	}

	api.POST("/generate-itinerary", deps.Itineraries.Generate)
	api.POST("/refine-itinerary", deps.Itineraries.Refine)

	s := deps.Sessions
	api.POST("/sessions", s.Create)
	api.GET("/sessions/:id", s.Get)
	api.DELETE("/sessions/:id", s.Delete)
	api.POST("/sessions/:id/generate", s.Generate)
	api.POST("/sessions/:id/refine", s.Refine)
	api.PUT("/sessions/:id/current/:itineraryId", s.Select)
	api.DELETE("/sessions/:id/itineraries/:itineraryId", s.DeleteItinerary)
	api.POST("/sessions/:id/clear", s.Clear)

	if t := deps.Trips; t != nil {
		api.GET("/trips", t.List)
		api.GET("/trips/:id", t.Get)
		api.PUT("/trips/:id", t.Put)
		api.DELETE("/trips/:id", t.Delete)
		api.GET("/trips/:id/legs", t.Legs)
		api.GET("/trips/:id/places", t.Places)
	}
	return r
}
