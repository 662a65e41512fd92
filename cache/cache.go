// Package cache is an opt-in, short-lived store of served listing
// responses, keyed by kind and effective query. It is off unless a TTL is
// configured.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/use-agent/leekduck/models"
)

// Cache is safe for concurrent use.
type Cache struct {
	lru *expirable.LRU[string, *models.ListResponse]
}

// New creates a Cache holding up to maxEntries responses for ttl each.
func New(maxEntries int, ttl time.Duration) *Cache {
	return &Cache{lru: expirable.NewLRU[string, *models.ListResponse](maxEntries, nil, ttl)}
}

// Key derives the cache key from the kind and the effective query.
func Key(kind models.Kind, q models.ListQuery) string {
	merge := q.Merge == nil || *q.Merge
	h := sha256.New()
	h.Write([]byte(kind))
	h.Write([]byte("|"))
	h.Write([]byte(q.Tier))
	h.Write([]byte("|"))
	h.Write([]byte(q.Label))
	h.Write([]byte("|"))
	h.Write([]byte(q.Category))
	h.Write([]byte("|"))
	h.Write([]byte(strconv.FormatBool(merge)))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns a cached response. Only successful responses are ever stored.
func (c *Cache) Get(key string) (*models.ListResponse, bool) {
	return c.lru.Get(key)
}

// Set stores resp unless it failed.
func (c *Cache) Set(key string, resp *models.ListResponse) {
	if resp == nil || !resp.Success {
		return
	}
	c.lru.Add(key, resp)
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.lru.Purge()
}
