package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "token"
	// sessionMaxAge is one day in seconds.
	sessionMaxAge = 60 * 60 * 24
)

// SetSessionCookie issues the HttpOnly, SameSite=Strict session cookie.
func SetSessionCookie(c *gin.Context, token string, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookie, token, sessionMaxAge, "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
}
