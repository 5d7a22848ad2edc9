package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS only sets the headers. Preflight answers come from Preflight, mounted
// on the paths that exist, so OPTIONS on an unknown path is still a 404.
func CORS(apiKeyHeader string) gin.HandlerFunc {
	allowHeaders := "Content-Type, " + RequestIDHeader
	if apiKeyHeader != "" {
		allowHeaders += ", " + apiKeyHeader
	}

	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", allowHeaders)
		c.Next()
	}
}

func Preflight(c *gin.Context) {
	c.AbortWithStatus(http.StatusNoContent)
}
