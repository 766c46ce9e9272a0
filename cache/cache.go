// Package cache keeps rendered template fragments in memory
package cache

import (
	"strings"
	"time"

	"blog/config"

	cmap "github.com/orcaman/concurrent-map/v2"
)

type entry struct {
	value     string
	expiresAt time.Time
}

var (
	fragments = cmap.New[entry]()
	now       = time.Now
)

func Enabled() bool {
	return config.CACHE_ENABLED
}

// Get returns the cached value, expired entries are removed on access
func Get(key string) (string, bool) {
	e, ok := fragments.Get(key)
	if !ok {
		return "", false
	}
	if now().After(e.expiresAt) {
		fragments.RemoveCb(key, func(key string, v entry, exists bool) bool {
			return exists && now().After(v.expiresAt)
		})
		return "", false
	}
	return e.value, true
}

// Set stores value for timeout. Nothing is stored when the cache is disabled
func Set(key, value string, timeout time.Duration) {
	if !Enabled() || timeout <= 0 {
		return
	}
	fragments.Set(key, entry{value: value, expiresAt: now().Add(timeout)})
}

// DeletePrefix drops every key starting with prefix, e.g. all pages of a fragment
func DeletePrefix(prefix string) {
	for _, key := range fragments.Keys() {
		if strings.HasPrefix(key, prefix) {
			fragments.Remove(key)
		}
	}
}

func Clear() {
	fragments.Clear()
}
