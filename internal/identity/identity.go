package identity

import (
	"math/rand"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// CookieName carries the visitor identity.
	CookieName = "userID"

	// UnauthorizedPath is where requests without an identity are sent.
	UnauthorizedPath = "/sem-autorizacao.html"

	// idLength matches the original 9 character base36 identifier.
	idLength = 9

	contextKey = "visitorID"
)

const idCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// NewID generates a visitor identity. The identity is self-asserted and
// carries no privilege, so a non-cryptographic source is enough; token
// codes use crypto/rand instead.
func NewID() string {
	buf := make([]byte, idLength)
	for i := range buf {
		buf[i] = idCharset[rand.Intn(len(idCharset))]
	}
	return string(buf)
}

// EnsureVisitor returns the visitor identity from the request cookie,
// assigning and setting a fresh one when absent. An existing cookie is
// never overwritten.
func EnsureVisitor(c *gin.Context) string {
	if id, err := c.Cookie(CookieName); err == nil && id != "" {
		return id
	}

	id := NewID()
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieName, id, 0, "/", "", false, false)
	return id
}

// RequireVisitor rejects requests without an identity cookie by redirecting
// to the unauthorized page, and exposes the identity to handlers otherwise.
func RequireVisitor() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(CookieName)
		if err != nil || id == "" {
			c.Redirect(http.StatusFound, UnauthorizedPath)
			c.Abort()
			return
		}

		c.Set(contextKey, id)
		c.Next()
	}
}

// VisitorID returns the identity stashed by RequireVisitor.
func VisitorID(c *gin.Context) string {
	return c.GetString(contextKey)
}
