package services

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Cache tags used across the service
const (
	TagLeaderboard = "leaderboard"
)

// ProfileTag returns the per-user profile cache tag.
func ProfileTag(userID string) string {
	return "profile:" + userID
}

// CacheKey builds a namespaced cache key, e.g. CacheKey("gamification", "profile", userID).
func CacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}

// CacheService is the read-through cache collaborator: Wrap runs the producer
// on a miss and stores the result under the key with a TTL and tags;
// InvalidateByTags drops every key carrying any of the given tags.
type CacheService interface {
	Wrap(key string, ttl time.Duration, tags []string, producer func() (interface{}, error)) (interface{}, error)
	InvalidateByTags(tags []string)
}

type cacheEntry struct {
	value     interface{}
	expiresAt time.Time
	tags      []string
}

// MemoryCache is a process-local CacheService. A shared store can replace it
// behind the same interface when the service scales out.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	byTag   map[string]map[string]struct{} // tag → set of keys
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]cacheEntry),
		byTag:   make(map[string]map[string]struct{}),
	}
}

func (c *MemoryCache) Wrap(key string, ttl time.Duration, tags []string, producer func() (interface{}, error)) (interface{}, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.value, nil
	}

	value, err := producer()
	if err != nil {
		return nil, fmt.Errorf("cache producer for %s: %w", key, err)
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
		tags:      tags,
	}
	for _, tag := range tags {
		if c.byTag[tag] == nil {
			c.byTag[tag] = make(map[string]struct{})
		}
		c.byTag[tag][key] = struct{}{}
	}
	c.mu.Unlock()

	return value, nil
}

func (c *MemoryCache) InvalidateByTags(tags []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, tag := range tags {
		for key := range c.byTag[tag] {
			c.dropLocked(key)
		}
		delete(c.byTag, tag)
	}
}

// dropLocked removes a key and its reverse tag index entries. Caller holds mu.
func (c *MemoryCache) dropLocked(key string) {
	entry, ok := c.entries[key]
	if !ok {
		return
	}
	for _, tag := range entry.tags {
		if keys := c.byTag[tag]; keys != nil {
			delete(keys, key)
			if len(keys) == 0 {
				delete(c.byTag, tag)
			}
		}
	}
	delete(c.entries, key)
}
