package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Darekar-Ishita/Trading-website/internal/domain"
	"github.com/Darekar-Ishita/Trading-website/internal/service"
	"github.com/Darekar-Ishita/Trading-website/internal/utils"
)

type BuyRequest struct {
	StockSymbol string  `json:"stockSymbol" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Quantity    int     `json:"quantity" binding:"required,min=1"`
}

type SellRequest struct {
	OrderID  uint    `json:"orderId" binding:"required"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Quantity int     `json:"quantity" binding:"required,min=1"`
}

// invalidateTradeCaches drops the wallet and order listings a
// settlement just made stale.
func invalidateTradeCaches(rdb *redis.Client, userID uint) {
	ctx := context.Background()
	_ = utils.DeleteCache(ctx, rdb, walletCacheKey(userID))
	_ = utils.DeleteCache(ctx, rdb, ordersCacheKey(userID))
}

// BuyHandler executes a simulated buy against the caller's wallet.
func BuyHandler(trades *service.TradeService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req BuyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
			return
		}

		order, balance, err := trades.Buy(userID, req.StockSymbol, req.Price, req.Quantity)
		switch {
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
			return
		case errors.Is(err, domain.ErrInsufficientFunds):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient funds"})
			return
		case err != nil:
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Buy failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		invalidateTradeCaches(rdb, userID)
		c.JSON(http.StatusOK, gin.H{"order": order, "walletBalance": balance})
	}
}

// SellHandler sells out of one of the caller's positions. The order is
// nil in the response once the position is fully closed.
func SellHandler(trades *service.TradeService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req SellRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
			return
		}

		order, balance, err := trades.Sell(userID, req.OrderID, req.Price, req.Quantity)
		switch {
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
			return
		case errors.Is(err, domain.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		case errors.Is(err, domain.ErrQuantityExceedsOwned):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity exceeds owned"})
			return
		case err != nil:
			logrus.WithFields(logrus.Fields{
				"user_id":  userID,
				"order_id": req.OrderID,
				"error":    err.Error(),
			}).Error("Sell failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		invalidateTradeCaches(rdb, userID)
		c.JSON(http.StatusOK, gin.H{"order": order, "walletBalance": balance})
	}
}

// GetOrdersHandler lists the caller's open positions, newest first.
func GetOrdersHandler(trades *service.TradeService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		ctx := context.Background()
		cacheKey := ordersCacheKey(userID)
		var cached []domain.Order
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}

		orders, err := trades.Orders(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		_ = utils.SetCache(ctx, rdb, cacheKey, orders, responseCacheTTL*time.Second)
		c.JSON(http.StatusOK, orders)
	}
}
