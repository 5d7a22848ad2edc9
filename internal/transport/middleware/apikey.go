package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	DefaultAPIKeyHeader = "x-api-key"
	InvalidAPIKeyMsg    = "Clé API invalide ou manquante"
)

// APIKey lets the request through only when the header equals key.
// An absent or empty header never matches.
func APIKey(header, key string) gin.HandlerFunc {
	if header == "" {
		header = DefaultAPIKeyHeader
	}
	expected := []byte(key)

	return func(c *gin.Context) {
		provided := c.GetHeader(header)
		if provided != "" && len(expected) > 0 && subtle.ConstantTimeCompare([]byte(provided), expected) == 1 {
			c.Next()
			return
		}

		logrus.WithFields(logrus.Fields{
			"path":       c.Request.URL.Path,
			"client_ip":  c.ClientIP(),
			"has_header": provided != "",
			"request_id": c.GetString(RequestIDKey),
		}).Warn("Rejected request with invalid api key")

		c.String(http.StatusForbidden, InvalidAPIKeyMsg)
		c.Abort()
	}
}
