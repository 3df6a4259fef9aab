package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Darekar-Ishita/Trading-website/internal/domain"
	"github.com/Darekar-Ishita/Trading-website/internal/service"
	"github.com/Darekar-Ishita/Trading-website/internal/utils"
)

type WatchlistRequest struct {
	Symbol   string `json:"symbol" binding:"required"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
}

// respondWithWatchlist returns the user's current watchlist, the shape
// every watchlist endpoint answers with.
func respondWithWatchlist(c *gin.Context, watchlist *service.WatchlistService, userID uint) {
	entries, err := watchlist.List(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch watchlist"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetWatchlistHandler lists the caller's watched symbols, cached
// briefly.
func GetWatchlistHandler(watchlist *service.WatchlistService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		ctx := context.Background()
		cacheKey := watchlistCacheKey(userID)
		var cached []domain.WatchlistEntry
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}

		entries, err := watchlist.List(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch watchlist"})
			return
		}

		_ = utils.SetCache(ctx, rdb, cacheKey, entries, responseCacheTTL*time.Second)
		c.JSON(http.StatusOK, entries)
	}
}

// AddToWatchlistHandler adds a symbol and returns the updated list.
// Re-adding a watched symbol is a no-op.
func AddToWatchlistHandler(watchlist *service.WatchlistService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req WatchlistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Symbol is required"})
			return
		}

		if _, err := watchlist.Add(userID, req.Symbol, req.Name, req.Exchange); err != nil {
			if errors.Is(err, domain.ErrValidation) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Symbol is required"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add stock"})
			return
		}

		_ = utils.DeleteCache(context.Background(), rdb, watchlistCacheKey(userID))
		respondWithWatchlist(c, watchlist, userID)
	}
}

// RemoveFromWatchlistHandler removes a symbol and returns the updated
// list. Removing an absent symbol succeeds.
func RemoveFromWatchlistHandler(watchlist *service.WatchlistService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		symbol := c.Param("symbol")
		if symbol == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Symbol is required"})
			return
		}

		if err := watchlist.Remove(userID, symbol); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove stock"})
			return
		}

		_ = utils.DeleteCache(context.Background(), rdb, watchlistCacheKey(userID))
		respondWithWatchlist(c, watchlist, userID)
	}
}
