package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"claimgate/internal/model"
)

// ScopeCache keeps validated token scopes in redis so the public validate
// hot path does not hit MySQL on every probe. Entries never outlive the
// token: the effective TTL is capped at the token's remaining validity.
type ScopeCache struct {
	client   *redisv9.Client
	scopeTTL time.Duration
}

func NewScopeCache(client *redisv9.Client, scopeTTL time.Duration) *ScopeCache {
	if scopeTTL <= 0 {
		scopeTTL = 60 * time.Second
	}
	return &ScopeCache{
		client:   client,
		scopeTTL: scopeTTL,
	}
}

func (c *ScopeCache) GetScope(ctx context.Context, token string) (*model.TokenScope, bool, error) {
	raw, err := c.client.Get(ctx, c.scopeKey(token)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get scope failed: %w", err)
	}

	var scope model.TokenScope
	if err := json.Unmarshal([]byte(raw), &scope); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached scope failed: %w", err)
	}
	return &scope, true, nil
}

func (c *ScopeCache) SetScope(ctx context.Context, scope *model.TokenScope) error {
	ttl := c.scopeTTL
	if remaining := time.Until(scope.ExpiresAt); remaining < ttl {
		ttl = remaining
	}
	if ttl <= 0 {
		return nil
	}

	payload, err := json.Marshal(scope)
	if err != nil {
		return fmt.Errorf("marshal scope cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.scopeKey(scope.Token), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set scope failed: %w", err)
	}
	return nil
}

func (c *ScopeCache) scopeKey(token string) string {
	return fmt.Sprintf("upload:scope:%s", token)
}
