package middlewares

import (
	"errors"
	"net/http"

	"github.com/btmxh/dersflix/internal/auth"
	"github.com/btmxh/dersflix/internal/db"
	"github.com/btmxh/dersflix/internal/errs"
	"github.com/btmxh/dersflix/internal/services"
	"github.com/btmxh/dersflix/internal/stores"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var InvalidVideoIdError = errors.New("Invalid video ID.")

// VideoIdMiddleware must run after MustAuthMiddleware. Videos owned by
// someone else are reported as missing.
func VideoIdMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		handler := errs.NewGinErrorHandler(ctx, "Error")
		id, err := uuid.Parse(ctx.Param("id"))
		if err != nil {
			handler.PrivateError(err)
			handler.PublicError(http.StatusNotFound, InvalidVideoIdError)
			ctx.Abort()
			return
		}

		tx := db.BeginTx(handler)
		if tx == nil {
			ctx.Abort()
			return
		}
		defer tx.Rollback()

		isOwner, hasErr := services.IsVideoOwner(tx, auth.GetUsername(ctx), id)
		if hasErr {
			ctx.Abort()
			return
		}

		if !isOwner {
			handler.PublicError(http.StatusNotFound, services.ErrVideoNotFound)
			ctx.Abort()
			return
		}

		if tx.Commit() {
			ctx.Abort()
			return
		}

		stores.SetVideoId(ctx, id)
		ctx.Next()
	}
}
