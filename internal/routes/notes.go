package routes

import (
	"github.com/btmxh/dersflix/internal/auth"
	"github.com/btmxh/dersflix/internal/db"
	"github.com/btmxh/dersflix/internal/errs"
	"github.com/btmxh/dersflix/internal/html"
	"github.com/btmxh/dersflix/internal/middlewares"
	"github.com/btmxh/dersflix/internal/services"
	"github.com/btmxh/dersflix/internal/stores"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NotesRouter is mounted on a group already guarded by
// VideoIdMiddleware.
func NotesRouter(idGroup *gin.RouterGroup) {
	idGroup.GET("notes", func(c *gin.Context) {
		noteAction(c, "Unable to load notes", nil)
	})
	idGroup.POST("notes", func(c *gin.Context) {
		noteAction(c, "Unable to add note", func(tx *db.Tx, video uuid.UUID) bool {
			_, hasErr := services.AddNote(tx, video, c.PostForm("text"))
			return hasErr
		})
	})

	noteGroup := idGroup.Group("notes/:note/")
	noteGroup.Use(middlewares.NoteIdMiddleware())
	noteGroup.PATCH("toggle", func(c *gin.Context) {
		noteAction(c, "Unable to update note", func(tx *db.Tx, video uuid.UUID) bool {
			return services.ToggleNote(tx, video, stores.GetNoteId(c))
		})
	})
	noteGroup.DELETE("", func(c *gin.Context) {
		noteAction(c, "Unable to delete note", func(tx *db.Tx, video uuid.UUID) bool {
			return services.DeleteNote(tx, video, stores.GetNoteId(c))
		})
	})
}

// noteAction runs action and re-renders the checklist of the video.
// A nil action only renders.
func noteAction(c *gin.Context, title string, action func(tx *db.Tx, video uuid.UUID) (hasErr bool)) {
	handler := errs.NewGinErrorHandler(c, html.StringAsHTML(title))
	video := stores.GetVideoId(c)

	tx := db.BeginTx(handler)
	if tx == nil {
		return
	}
	defer tx.Rollback()

	if action != nil && action(tx, video) {
		return
	}

	notes, hasErr := services.ListNotes(tx, video)
	if hasErr || tx.Commit() {
		return
	}

	if action != nil {
		services.WebSocketNotesEvent(auth.GetUsername(c), video, socketId(c))
	}

	html.Render(watchVideoTmpl, c, "notes", gin.H{"Video": services.Video{Id: video, Notes: notes}})
}
