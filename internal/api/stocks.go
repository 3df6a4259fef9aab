package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Darekar-Ishita/Trading-website/internal/market"
)

// Market data endpoints are public: the gateway absorbs upstream
// failures, so these never return provider errors.

// SearchStocksHandler returns symbol matches for ?q=.
func SearchStocksHandler(gateway *market.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
			return
		}
		c.JSON(http.StatusOK, gateway.Search(query))
	}
}

// LiveStockHandler returns the live quote for a symbol or index alias.
func LiveStockHandler(gateway *market.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		symbol := c.Param("symbol")
		if symbol == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Symbol is required"})
			return
		}
		c.JSON(http.StatusOK, gateway.Live(symbol))
	}
}

// HistoricalStockHandler returns the one-month daily closing series.
func HistoricalStockHandler(gateway *market.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		symbol := c.Param("symbol")
		if symbol == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Symbol is required"})
			return
		}
		c.JSON(http.StatusOK, gateway.Historical(symbol))
	}
}
