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

type AddFundsRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// GetWalletHandler returns the caller's balance, cached briefly.
func GetWalletHandler(wallets *service.WalletService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		ctx := context.Background()
		cacheKey := walletCacheKey(userID)
		var cached struct {
			Balance float64 `json:"balance"`
		}
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"balance": cached.Balance})
			return
		}

		balance, err := wallets.Balance(userID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Fetching wallet failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		_ = utils.SetCache(ctx, rdb, cacheKey, gin.H{"balance": balance}, responseCacheTTL*time.Second)
		c.JSON(http.StatusOK, gin.H{"balance": balance})
	}
}

// AddFundsHandler deposits simulated cash into the caller's wallet.
func AddFundsHandler(wallets *service.WalletService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req AddFundsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}

		balance, err := wallets.Credit(userID, req.Amount)
		if err != nil {
			if errors.Is(err, domain.ErrValidation) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		_ = utils.DeleteCache(context.Background(), rdb, walletCacheKey(userID))
		c.JSON(http.StatusOK, gin.H{"balance": balance})
	}
}
