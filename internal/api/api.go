// Package api holds the gin handlers. Handlers stay thin: bind the
// request, call the service, map typed errors onto HTTP statuses.
// Unexpected errors are logged server-side and surfaced as a generic
// 500 body.
package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const responseCacheTTL = 60 // seconds

// currentUserID reads the caller's identity set by the JWT middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func walletCacheKey(userID uint) string {
	return "wallet:user:" + strconv.Itoa(int(userID))
}

func ordersCacheKey(userID uint) string {
	return "orders:user:" + strconv.Itoa(int(userID))
}

func watchlistCacheKey(userID uint) string {
	return "watchlist:user:" + strconv.Itoa(int(userID))
}
