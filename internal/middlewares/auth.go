package middlewares

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/btmxh/dersflix/internal/auth"
	"github.com/btmxh/dersflix/internal/errs"
	"github.com/gin-gonic/gin"
)

const AUTH_COOKIE_NAME = "Authorization"

var unauthorizedError = errors.New("You must be logged in to do this.")

func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenStr, err := ctx.Cookie(AUTH_COOKIE_NAME)
		if err == nil {
			username, err := auth.Verify(tokenStr)
			if err == nil {
				auth.SetUsername(ctx, username)
			} else {
				slog.Warn("Failed to validate token", "error", err)
			}
		} else if err != http.ErrNoCookie {
			slog.Warn("Failed to get auth cookie", "error", err)
		}

		ctx.Next()
	}
}

func SetAuthCookie(c *gin.Context, signedToken string, timeout time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AUTH_COOKIE_NAME, signedToken, int(timeout.Seconds()), "/", "", true, true)
}

func Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AUTH_COOKIE_NAME, "", -1, "/", "", false, true)
}

func MustAuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !auth.IsLoggedIn(ctx) {
			handler := errs.NewGinErrorHandler(ctx, "Error")
			handler.PublicError(http.StatusUnauthorized, unauthorizedError)
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}
