package planner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"voyage/internal/itinerary"
)

const generateKeyPrefix = "planner:generate:%s"

// CachedService remembers generation results in Redis keyed by a hash of
// the trimmed prompt. Refinements always go to the wrapped Planner.
// Cache failures are logged and never fail the request.
type CachedService struct {
	next  Planner
	redis *redis.Client
	ttl   time.Duration
}

func NewCachedService(next Planner, rdb *redis.Client, ttl time.Duration) *CachedService {
	return &CachedService{next: next, redis: rdb, ttl: ttl}
}

func (c *CachedService) Generate(ctx context.Context, prompt string) (*itinerary.Itinerary, error) {
	if _, err := checkInput(prompt); err != nil {
		return nil, err
	}
	key := generateKey(prompt)

	raw, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if it, perr := itinerary.Parse(raw); perr == nil {
			return it, nil
		}
		// Stale shape from an older schema; regenerate and overwrite.
	case !errors.Is(err, redis.Nil):
		log.Printf("planner cache: get %s: %v", key, err)
	}

	it, err := c.next.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(it); err == nil {
		if err := c.redis.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			log.Printf("planner cache: set %s: %v", key, err)
		}
	}
	return it, nil
}

func (c *CachedService) Refine(ctx context.Context, current itinerary.Itinerary, instruction string) (*itinerary.Itinerary, error) {
	return c.next.Refine(ctx, current, instruction)
}

func generateKey(prompt string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(prompt)))
	return fmt.Sprintf(generateKeyPrefix, hex.EncodeToString(sum[:]))
}
