package middlewares

import (
	"errors"
	"net/http"

	"github.com/btmxh/dersflix/internal/db"
	"github.com/btmxh/dersflix/internal/errs"
	"github.com/btmxh/dersflix/internal/services"
	"github.com/btmxh/dersflix/internal/stores"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var InvalidNoteIdError = errors.New("Invalid note ID.")

// NoteIdMiddleware must run after VideoIdMiddleware.
func NoteIdMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		handler := errs.NewGinErrorHandler(ctx, "Error")
		id, err := uuid.Parse(ctx.Param("note"))
		if err != nil {
			handler.PrivateError(err)
			handler.PublicError(http.StatusNotFound, InvalidNoteIdError)
			ctx.Abort()
			return
		}

		tx := db.BeginTx(handler)
		if tx == nil {
			ctx.Abort()
			return
		}
		defer tx.Rollback()

		exists, hasErr := services.NoteExists(tx, stores.GetVideoId(ctx), id)
		if hasErr {
			ctx.Abort()
			return
		}

		if !exists {
			handler.PublicError(http.StatusNotFound, services.ErrNoteNotFound)
			ctx.Abort()
			return
		}

		if tx.Commit() {
			ctx.Abort()
			return
		}

		stores.SetNoteId(ctx, id)
		ctx.Next()
	}
}
