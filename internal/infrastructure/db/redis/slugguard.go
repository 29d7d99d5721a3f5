package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const reservationTTL = 30 * time.Second

// SlugGuard provides short-lived slug reservations backed by Redis. It
// narrows the window between the uniqueness check and the insert when two
// requests race on the same name; the unique index remains the authority.
// Key format: slug:<kind>:<slug>
type SlugGuard struct {
	client *redis.Client
}

// NewSlugGuard creates a SlugGuard wrapping the given Redis client.
func NewSlugGuard(client *redis.Client) *SlugGuard {
	return &SlugGuard{client: client}
}

// Reserve claims a slug for the duration of the reservation TTL. It returns
// false when another request already holds the slug.
func (g *SlugGuard) Reserve(ctx context.Context, kind, slug string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(kind, slug), "1", reservationTTL).Result()
	if err != nil {
		return false, fmt.Errorf("slug reserve: %w", err)
	}
	return ok, nil
}

// Release drops a reservation early, once the insert has settled either way.
func (g *SlugGuard) Release(ctx context.Context, kind, slug string) error {
	return g.client.Del(ctx, g.key(kind, slug)).Err()
}

func (g *SlugGuard) key(kind, slug string) string {
	return fmt.Sprintf("slug:%s:%s", kind, slug)
}
