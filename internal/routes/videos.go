package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

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

const metadataTimeout = 15 * time.Second

var errMetadataUnavailable = errors.New("Unable to fetch metadata for this video. Please try again later.")

var newVideoTmpl = getTemplate("new", "templates/videos/new.tmpl")
var watchVideoTmpl = getTemplate("watch", "templates/videos/watch.tmpl")

func VideoRouter(g *gin.RouterGroup) {
	g.Use(middlewares.MustAuthMiddleware())
	g.GET("/grid", videoGrid)
	g.GET("/new", html.RenderFunc(newVideoTmpl, "layout", gin.H{}))
	g.POST("/new", addVideo)
	g.POST("/preview", previewVideo)

	idGroup := g.Group("/:id/")
	idGroup.Use(middlewares.VideoIdMiddleware())
	idGroup.GET("", watchVideo)
	idGroup.DELETE("", deleteVideo)
	idGroup.PATCH("watched", func(c *gin.Context) {
		toggleVideoFlag(c, "Unable to update video", services.ToggleVideoWatched)
	})
	idGroup.PATCH("favorite", func(c *gin.Context) {
		toggleVideoFlag(c, "Unable to update video", services.ToggleVideoFavorite)
	})
	idGroup.POST("refresh", refreshVideoMetadata)

	NotesRouter(idGroup)
}

func socketId(c *gin.Context) string {
	return c.GetHeader(services.SocketIdHeader)
}

func addVideo(c *gin.Context) {
	handler := errs.NewGinErrorHandler(c, "Unable to add video")
	input, ref, err := services.ValidateNewVideo(services.NewVideo{
		Title:    c.PostForm("title"),
		VideoUrl: c.PostForm("url"),
		Class:    c.PostForm("class"),
		Subject:  c.PostForm("subject"),
	})
	if err != nil {
		handler.PublicError(http.StatusUnprocessableEntity, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), metadataTimeout)
	defer cancel()
	metadata := services.ResolveVideoMetadata(ctx, ref, false)

	tx := db.BeginTx(handler)
	if tx == nil {
		return
	}
	defer tx.Rollback()

	username := auth.GetUsername(c)
	id, hasErr := services.AddVideo(tx, username, input, ref, metadata)
	if hasErr || tx.Commit() {
		return
	}

	services.WebSocketVideosEvent(username, socketId(c))
	Redirect(c, fmt.Sprintf("/videos/%s/", id))
}

func previewVideo(c *gin.Context) {
	ref, ok := services.ClassifyVideoLink(c.PostForm("url"))
	html.Render(newVideoTmpl, c, "preview", gin.H{
		"Ok":        ok,
		"Reference": ref,
		"Thumbnail": ref.Thumbnail(),
	})
}

func watchVideo(c *gin.Context) {
	handler := errs.NewGinErrorHandler(c, "Unable to load video")
	tx := db.BeginTx(handler)
	if tx == nil {
		return
	}
	defer tx.Rollback()

	video, hasErr := services.GetVideo(tx, stores.GetVideoId(c))
	if hasErr || tx.Commit() {
		return
	}

	html.Render(watchVideoTmpl, c, "layout", gin.H{"Video": video})
}

func deleteVideo(c *gin.Context) {
	handler := errs.NewGinErrorHandler(c, "Unable to delete video")
	tx := db.BeginTx(handler)
	if tx == nil {
		return
	}
	defer tx.Rollback()

	if services.DeleteVideo(tx, stores.GetVideoId(c)) || tx.Commit() {
		return
	}

	services.WebSocketVideosEvent(auth.GetUsername(c), socketId(c))
	Redirect(c, "/")
}

func toggleVideoFlag(c *gin.Context, title string, toggle func(tx *db.Tx, id uuid.UUID) (bool, bool)) {
	handler := errs.NewGinErrorHandler(c, html.StringAsHTML(title))
	id := stores.GetVideoId(c)
	tx := db.BeginTx(handler)
	if tx == nil {
		return
	}
	defer tx.Rollback()

	if _, hasErr := toggle(tx, id); hasErr {
		return
	}

	video, hasErr := services.GetVideo(tx, id)
	if hasErr || tx.Commit() {
		return
	}

	services.WebSocketVideosEvent(auth.GetUsername(c), socketId(c))
	html.Render(watchVideoTmpl, c, "actions", gin.H{"Video": video})
}

func refreshVideoMetadata(c *gin.Context) {
	handler := errs.NewGinErrorHandler(c, "Unable to refresh metadata")
	id := stores.GetVideoId(c)

	tx := db.BeginTx(handler)
	if tx == nil {
		return
	}
	video, hasErr := services.GetVideo(tx, id)
	tx.Rollback()
	if hasErr {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), metadataTimeout)
	defer cancel()
	metadata := services.ResolveVideoMetadata(ctx, video.Reference(), true)
	if metadata == nil {
		handler.PublicError(http.StatusUnprocessableEntity, errMetadataUnavailable)
		return
	}

	tx = db.BeginTx(handler)
	if tx == nil {
		return
	}
	defer tx.Rollback()

	if services.UpdateVideoMetadata(tx, id, metadata) || tx.Commit() {
		return
	}

	services.WebSocketVideosEvent(auth.GetUsername(c), socketId(c))
	HxRefresh(c)
	html.Toast(c, html.ToastInfo, "Metadata refreshed", html.StringAsHTML(fmt.Sprintf("Metadata of '%s' updated.", video.Title)))
}
