package session

import (
	"net/url"
	"strings"

	"judgebox/pkg/utils/response"

	"github.com/gin-gonic/gin"
)

const cookieName = "connect.sid"

// Gate is the front-door authorization middleware. It reads the
// connect.sid cookie, decodes it, strips the `s:` prefix and the
// trailing `.`-delimited signature, and looks the remainder up in the
// configured Store. 401 is returned when the cookie is missing or
// invalid or the session is not found; 500 when the Store lookup
// itself fails.
func Gate(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(cookieName)
		if err != nil || raw == "" {
			response.Unauthorized(c, "missing session cookie")
			c.Abort()
			return
		}

		sessionID := decodeSessionID(raw)
		if sessionID == "" {
			response.Unauthorized(c, "invalid session cookie")
			c.Abort()
			return
		}

		ok, err := store.Exists(c.Request.Context(), sessionID)
		if err != nil {
			response.InternalServerError(c, err)
			c.Abort()
			return
		}
		if !ok {
			response.Unauthorized(c, "session not recognized")
			c.Abort()
			return
		}

		c.Next()
	}
}

// decodeSessionID implements the cookie contract: URL-decode, strip a
// leading "s:" signed-cookie marker, then drop everything from the
// last "." onward (the HMAC signature express-session appends).
func decodeSessionID(raw string) string {
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		decoded = raw
	}

	decoded = strings.TrimPrefix(decoded, "s:")

	if idx := strings.LastIndex(decoded, "."); idx >= 0 {
		decoded = decoded[:idx]
	}

	return decoded
}
