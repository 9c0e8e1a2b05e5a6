package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cympfh/shanghai/internal/model"
)

// Cache key prefixes and TTLs.
const (
	journalKeyPrefix = "journal:"

	// DefaultJournalTTL bounds how stale a cached journal may get when
	// another writer appends directly upstream.
	DefaultJournalTTL = 30 * time.Second
)

// Common cache errors.
var (
	ErrCacheMiss = errors.New("cache miss")
)

// JournalKey builds the cache key for a journal section.
func JournalKey(section string) string {
	return journalKeyPrefix + section
}

// GetJournal retrieves cached journal entries for a section.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetJournal(ctx context.Context, section string) ([]model.Entry, error) {
	raw, err := c.client.Get(ctx, JournalKey(section)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var entries []model.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		// A corrupt value behaves as a miss; the next fetch overwrites it.
		return nil, ErrCacheMiss
	}

	return entries, nil
}

// SetJournal stores journal entries for a section with the given TTL.
func (c *Cache) SetJournal(ctx context.Context, section string, entries []model.Entry, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultJournalTTL
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode journal entries: %w", err)
	}

	if err := c.client.Set(ctx, JournalKey(section), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache journal: %w", err)
	}

	return nil
}

// InvalidateJournal drops the cached journal for a section.
// Called after a successful append so readers see the new entry.
func (c *Cache) InvalidateJournal(ctx context.Context, section string) error {
	if err := c.client.Del(ctx, JournalKey(section)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate journal cache: %w", err)
	}
	return nil
}
