package ginserver

import (
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"staybook/internal/app/session"
)

const sessionContextKey = "staybook.session"

// SessionMiddleware lifts the caller's bearer token into an explicit
// session. The token is the remote store's credential; we never verify it
// here, only read the subject name so collections can be keyed per customer.
// The store rejects bad tokens on submit.
type SessionMiddleware struct{}

func (SessionMiddleware) Handle(c *gin.Context) {
	token := extractBearerToken(c.GetHeader("Authorization"))
	if token == "" {
		c.Next()
		return
	}
	c.Set(sessionContextKey, session.Session{
		Token:    token,
		UserName: subjectName(token),
	})
	c.Next()
}

func subjectName(token string) string {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return ""
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	if name, ok := claims["name"].(string); ok {
		return name
	}
	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	return ""
}

func currentSession(c *gin.Context) session.Session {
	val, exists := c.Get(sessionContextKey)
	if !exists {
		return session.Session{}
	}
	s, _ := val.(session.Session)
	return s
}

func requireSession(c *gin.Context) (session.Session, bool) {
	s := currentSession(c)
	if !s.Authenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "auth required"})
		return session.Session{}, false
	}
	return s, true
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
