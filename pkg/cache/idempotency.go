package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis remembers client-supplied idempotency tokens so duplicate
// network retries of the same buyer turn are answered without a second
// transcript append. A nil *Redis is valid and remembers nothing; the ledger
// still deduplicates by transcript-tail comparison.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(addr, password string) *Redis {
	if addr == "" {
		return nil
	}
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       0,
		}),
		ttl: 24 * time.Hour,
	}
}

// Seen records the token and reports whether it was already present. Errors
// degrade to "not seen": a broken cache must never block a negotiation turn.
func (r *Redis) Seen(ctx context.Context, negotiationID, token string) bool {
	if r == nil || token == "" {
		return false
	}
	sum := sha256.Sum256([]byte(negotiationID + ":" + token))
	key := "nego:idem:" + hex.EncodeToString(sum[:])
	set, err := r.client.SetNX(ctx, key, 1, r.ttl).Result()
	if err != nil {
		return false
	}
	return !set
}
