package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	CacheNoCache = 0
	CacheCustom  = -1
	CacheOneDay  = 86400
)

// CacheRouter sets the cache-control header. Pages depend on the session so they are
// never cached by browsers, uploaded media never changes and can be cached publicly
type CacheRouter struct {
	CacheTime int // defaults to CacheNoCache = 0
	Public    bool
}

func (cr *CacheRouter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cr.CacheTime != CacheCustom {
			if cr.CacheTime == CacheNoCache {
				c.Header("cache-control", "no-cache")
			} else if cr.Public {
				c.Header("cache-control", "public, max-age="+strconv.Itoa(cr.CacheTime))
			} else {
				c.Header("cache-control", "private, max-age="+strconv.Itoa(cr.CacheTime))
			}
		}
		c.Next()
	}
}
