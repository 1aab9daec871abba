package favorite

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"material_market_backend/internal/config"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Set holds the favorited listing ids. Ids are not checked against the
// listing store.
type Set interface {
	Toggle(ctx context.Context, id string) (bool, error)
	IsFavorite(ctx context.Context, id string) (bool, error)
	IDs(ctx context.Context) ([]string, error)
}

type memorySet struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

// NewMemorySet creates an in-process favorites set.
func NewMemorySet() Set {
	return &memorySet{ids: make(map[string]struct{})}
}

func (s *memorySet) Toggle(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]struct{}, len(s.ids)+1)
	for k := range s.ids {
		next[k] = struct{}{}
	}
	_, member := next[id]
	if member {
		delete(next, id)
	} else {
		next[id] = struct{}{}
	}
	s.ids = next
	return !member, nil
}

func (s *memorySet) IsFavorite(ctx context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok, nil
}

func (s *memorySet) IDs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

// toggleScript flips membership atomically and returns 1 when the id
// was added.
var toggleScript = goredis.NewScript(`
if redis.call("SREM", KEYS[1], ARGV[1]) == 1 then
  return 0
end
redis.call("SADD", KEYS[1], ARGV[1])
return 1
`)

type redisSet struct {
	client *goredis.Client
	key    string
}

// NewRedisSet stores favorites as members of a Redis set at key.
func NewRedisSet(client *goredis.Client, key string) Set {
	return &redisSet{client: client, key: key}
}

func (s *redisSet) Toggle(ctx context.Context, id string) (bool, error) {
	added, err := toggleScript.Run(ctx, s.client, []string{s.key}, id).Int()
	if err != nil {
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}
	return added == 1, nil
}

func (s *redisSet) IsFavorite(ctx context.Context, id string) (bool, error) {
	ok, err := s.client.SIsMember(ctx, s.key, id).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return ok, nil
}

func (s *redisSet) IDs(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// ProvideSet selects the set implementation from FAVORITES_BACKEND.
func ProvideSet(cfg *config.Config, client *goredis.Client, logger *zap.Logger) Set {
	if cfg.FavoritesBackend == config.BackendRedis && client != nil {
		logger.Info("Using redis favorites set", zap.String("key", cfg.FavoritesKey))
		return NewRedisSet(client, cfg.FavoritesKey)
	}
	logger.Info("Using in-memory favorites set")
	return NewMemorySet()
}
