package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const gnewsBase = "https://gnews.io/api/v4/search"

var newsClient = &http.Client{Timeout: 6 * time.Second}

type gnewsResponse struct {
	Articles []json.RawMessage `json:"articles"`
}

// NewsHandler proxies market news from GNews. Unlike market data this
// surface has no cached fallback; upstream failure is a 500.
func NewsHandler(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := url.Values{}
		params.Set("q", "stock market OR trading OR finance")
		params.Set("lang", "en")
		params.Set("max", "10")
		params.Set("token", apiKey)

		resp, err := newsClient.Get(gnewsBase + "?" + params.Encode())
		if err != nil {
			logrus.WithField("error", err.Error()).Error("News upstream failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "News service unreachable"})
			return
		}
		defer resp.Body.Close()

		var body gnewsResponse
		if resp.StatusCode != http.StatusOK || json.NewDecoder(resp.Body).Decode(&body) != nil {
			logrus.WithField("status", resp.StatusCode).Error("News upstream failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "News service unreachable"})
			return
		}

		if body.Articles == nil {
			body.Articles = []json.RawMessage{}
		}
		c.JSON(http.StatusOK, body.Articles)
	}
}
