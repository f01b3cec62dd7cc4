// README: Resolves the opaque caller id used to bucket quota, rate limits and trips.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ClientIDHeader = "X-Client-ID"
	clientIDKey    = "client_id"
	maxClientIDLen = 64
)

// ClientID stores the caller id in the gin context: the X-Client-ID header
// when it is usable, the remote IP otherwise. It is not authentication.
func ClientID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(ClientIDHeader))
		if id == "" || len(id) > maxClientIDLen || strings.ContainsAny(id, " \t\r\n") {
			id = "ip:" + c.ClientIP()
		}
		c.Set(clientIDKey, id)
		c.Next()
	}
}

// ClientIDFrom returns the id set by ClientID, or "" when the middleware did
// not run.
func ClientIDFrom(c *gin.Context) string {
	return c.GetString(clientIDKey)
}
