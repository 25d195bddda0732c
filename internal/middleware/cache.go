package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	responseMetaKey = "response_meta"
	cacheHitKey     = "cache_hit"
)

// ResponseMeta attaches a metadata map to every request so handlers can
// report cache usage and timings in the envelope.
func ResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Set(responseMetaKey, map[string]interface{}{})
		c.Next()
		meta := metaMap(c)
		if _, ok := meta["processing_time_ms"]; !ok {
			meta["processing_time_ms"] = time.Since(start).Milliseconds()
		}
	}
}

// SetCacheHit marks whether the response was served from the conflict cache.
func SetCacheHit(c *gin.Context, hit bool) {
	SetMeta(c, cacheHitKey, hit)
}

// SetMeta stores one metadata value for the current response.
func SetMeta(c *gin.Context, key string, value interface{}) {
	metaMap(c)[key] = value
}

// Meta returns a copy of the metadata collected so far, or nil when empty.
func Meta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	raw, ok := c.Get(responseMetaKey)
	if !ok {
		return nil
	}
	typed, ok := raw.(map[string]interface{})
	if !ok || len(typed) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(typed))
	for k, v := range typed {
		out[k] = v
	}
	return out
}

func metaMap(c *gin.Context) map[string]interface{} {
	if raw, ok := c.Get(responseMetaKey); ok {
		if typed, ok := raw.(map[string]interface{}); ok {
			return typed
		}
	}
	meta := make(map[string]interface{})
	c.Set(responseMetaKey, meta)
	return meta
}
