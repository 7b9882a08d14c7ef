package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Green Room cache keys. Tallies are cheap to recompute but hot during a
// voting window.
const (
	GreenroomResultsKeyFmt = "greenroom:results:%s" // cycle
	GreenroomResultsTTL    = 30 * time.Second
)

// Community feed cache keys, one entry per page.
const (
	FeedPageKeyFmt = "feed:page:%d:%d" // limit, offset
	FeedTTL        = 60 * time.Second
)

var client *redis.Client

// Init initializes the Redis connection
func Init() error {
	// K8s sets REDIS_SERVICE_HOST and REDIS_SERVICE_PORT for services
	host := os.Getenv("REDIS_SERVICE_HOST")
	if host == "" {
		host = "redis" // fallback to service name
	}
	port := os.Getenv("REDIS_SERVICE_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// hashCredentials creates a hash of email+password for cache key
func hashCredentials(email, password string) string {
	h := sha256.New()
	h.Write([]byte(email + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials are cached and valid
func GetCachedAuth(ctx context.Context, email, password string) (int64, bool) {
	if client == nil {
		return 0, false
	}
	key := hashCredentials(email, password)
	userID, err := client.Get(ctx, key).Int64()
	if err != nil {
		return 0, false
	}
	return userID, true
}

// CacheAuth caches valid credentials for 15 minutes
func CacheAuth(ctx context.Context, email, password string, userID int64) {
	if client == nil {
		return
	}
	key := hashCredentials(email, password)
	client.Set(ctx, key, userID, 15*time.Minute)
}

// InvalidateAuth removes cached auth for a user (on password change/logout)
func InvalidateAuth(ctx context.Context, email, password string) {
	if client == nil {
		return
	}
	key := hashCredentials(email, password)
	client.Del(ctx, key)
}

// GetCachedResults returns the cached Green Room scoreboard for a cycle
func GetCachedResults(ctx context.Context, cycle string) ([]byte, bool) {
	return GetCached(ctx, fmt.Sprintf(GreenroomResultsKeyFmt, cycle))
}

// CacheResults stores the Green Room scoreboard for a cycle
func CacheResults(ctx context.Context, cycle string, data []byte) {
	SetCached(ctx, fmt.Sprintf(GreenroomResultsKeyFmt, cycle), data, GreenroomResultsTTL)
}

// InvalidateGreenroomCaches clears contest caches.
// Called when: project status changes, votes cast, tickets granted.
func InvalidateGreenroomCaches(ctx context.Context) {
	InvalidatePattern(ctx, "greenroom:*")
}

// GetCachedFeedPage returns one cached feed page
func GetCachedFeedPage(ctx context.Context, limit, offset int) ([]byte, bool) {
	return GetCached(ctx, fmt.Sprintf(FeedPageKeyFmt, limit, offset))
}

// CacheFeedPage stores one feed page
func CacheFeedPage(ctx context.Context, limit, offset int, data []byte) {
	SetCached(ctx, fmt.Sprintf(FeedPageKeyFmt, limit, offset), data, FeedTTL)
}

// InvalidateFeedCaches clears community feed caches.
// Called when: CreatePost, DeletePost, CreateComment.
func InvalidateFeedCaches(ctx context.Context) {
	InvalidatePattern(ctx, "feed:*")
}

// InvalidateSettingCaches clears setting caches.
// Called when: UpdateSetting.
func InvalidateSettingCaches(ctx context.Context) {
	InvalidatePattern(ctx, "settings:*")
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
