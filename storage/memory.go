package storage

import (
	cache "github.com/patrickmn/go-cache"
)

// MemoryTier is the tertiary tier: an in-process cache that lives for
// the process lifetime and is the last line of defense. It must never
// refuse a write.
type MemoryTier struct {
	cache *cache.Cache
}

func NewMemoryTier() *MemoryTier {
	return &MemoryTier{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (t *MemoryTier) Name() string {
	return "memory"
}

func (t *MemoryTier) TryRead(key string) (string, bool) {
	obj, ok := t.cache.Get(key)
	if !ok {
		return "", false
	}
	value, _ := obj.(string)
	return value, true
}

func (t *MemoryTier) TryReadAll() (map[string]string, bool) {
	items := t.cache.Items()
	all := make(map[string]string, len(items))
	for key, item := range items {
		if value, ok := item.Object.(string); ok {
			all[key] = value
		}
	}
	return all, true
}

func (t *MemoryTier) TryWrite(key string, value string) bool {
	t.cache.Set(key, value, cache.NoExpiration)
	return true
}
