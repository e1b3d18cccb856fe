package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/vetclinic/user-service/internal/core/domain"
	"github.com/vetclinic/user-service/internal/core/ports"
)

const defaultRoleTTL = 10 * time.Minute

// RoleCache is a read-through cache in front of a RoleRepository.
// Key format: role:<name>
//
// Redis failures never fail a lookup; the cache is bypassed and the
// underlying repository answers.
type RoleCache struct {
	next   ports.RoleRepository
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewRoleCache wraps next with a Redis cache.
func NewRoleCache(next ports.RoleRepository, client *redis.Client, ttl time.Duration, log zerolog.Logger) *RoleCache {
	if ttl <= 0 {
		ttl = defaultRoleTTL
	}
	return &RoleCache{next: next, client: client, ttl: ttl, log: log}
}

func (c *RoleCache) FindByName(ctx context.Context, name domain.RoleName) (*domain.Role, error) {
	key := c.key(name)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var role domain.Role
		if jsonErr := json.Unmarshal(raw, &role); jsonErr == nil {
			return &role, nil
		}
		c.log.Warn().Str("key", key).Msg("discarding undecodable cached role")
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn().Err(err).Str("key", key).Msg("role cache read failed")
	}

	role, err := c.next.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(role); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("role cache write failed")
		}
	}
	return role, nil
}

// EnsureRoles seeds through to the repository and drops the cached entries.
func (c *RoleCache) EnsureRoles(ctx context.Context, names []domain.RoleName) error {
	if err := c.next.EnsureRoles(ctx, names); err != nil {
		return err
	}

	keys := make([]string, 0, len(names))
	for _, n := range names {
		keys = append(keys, c.key(n))
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			c.log.Warn().Err(err).Msg("role cache invalidation failed")
		}
	}
	return nil
}

func (c *RoleCache) key(name domain.RoleName) string {
	return fmt.Sprintf("role:%s", name)
}
