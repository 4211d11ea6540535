package jwtmw

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SetTokenCookie writes the token as an httpOnly, SameSite=Strict cookie.
func SetTokenCookie(c *gin.Context, token string, maxAge time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieName, token, int(maxAge.Seconds()), "/", "", secure, true)
}

// ClearTokenCookie expires the token cookie.
func ClearTokenCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieName, "", -1, "/", "", secure, true)
}
