package cache

import (
	"testing"
	"time"

	"blog/config"

	"github.com/stretchr/testify/assert"
)

func TestSetGet(t *testing.T) {
	config.CACHE_ENABLED = true
	Clear()
	Set("a", "value", time.Minute)
	v, ok := Get("a")
	assert.True(t, ok)
	assert.Equal(t, "value", v)

	Set("a", "other", time.Minute)
	v, _ = Get("a")
	assert.Equal(t, "other", v)
}

func TestExpiry(t *testing.T) {
	config.CACHE_ENABLED = true
	Clear()
	current := time.Unix(1000, 0)
	now = func() time.Time { return current }
	defer func() { now = time.Now }()

	Set("a", "value", 20*time.Second)
	current = current.Add(19 * time.Second)
	_, ok := Get("a")
	assert.True(t, ok)

	current = current.Add(2 * time.Second)
	_, ok = Get("a")
	assert.False(t, ok)
	assert.False(t, fragments.Has("a"))
}

func TestDisabled(t *testing.T) {
	config.CACHE_ENABLED = false
	defer func() { config.CACHE_ENABLED = true }()
	Clear()
	Set("a", "value", time.Minute)
	_, ok := Get("a")
	assert.False(t, ok)
}

func TestDeletePrefixAndClear(t *testing.T) {
	config.CACHE_ENABLED = true
	Clear()
	Set("template.cache.index_page.1", "x", time.Minute)
	Set("template.cache.index_page.2", "y", time.Minute)
	Set("template.cache.other.1", "z", time.Minute)
	DeletePrefix("template.cache.index_page.")
	_, ok := Get("template.cache.index_page.1")
	assert.False(t, ok)
	_, ok = Get("template.cache.index_page.2")
	assert.False(t, ok)
	_, ok = Get("template.cache.other.1")
	assert.True(t, ok)
	Clear()
	_, ok = Get("template.cache.other.1")
	assert.False(t, ok)
}
