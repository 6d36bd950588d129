package routes

import (
	"net/http"

	"github.com/btmxh/dersflix/internal/auth"
	"github.com/btmxh/dersflix/internal/db"
	"github.com/btmxh/dersflix/internal/errs"
	"github.com/btmxh/dersflix/internal/html"
	"github.com/btmxh/dersflix/internal/services"
	"github.com/gin-gonic/gin"
)

var homeTemplate = getTemplate("home", "templates/home.tmpl", "templates/videos/grid.tmpl")

func HomeRouter(c *gin.Context) {
	if !auth.IsLoggedIn(c) {
		html.Render(homeTemplate, c, "layout", gin.H{})
		return
	}

	args, ok := queryVideos(c, "Unable to load videos")
	if !ok {
		return
	}

	html.Render(homeTemplate, c, "layout", args)
}

func videoGrid(c *gin.Context) {
	args, ok := queryVideos(c, "Unable to load videos")
	if !ok {
		return
	}

	html.Render(homeTemplate, c, "grid", args)
}

func parseVideoFilter(c *gin.Context) (filter services.VideoFilter, offset int, err error) {
	filter.Query = c.Query("query")
	filter.Class = c.Query("class")
	filter.Subject = c.Query("subject")
	filter.OnlyFavorites = c.Query("favorite") == "on"
	if filter.Watched, err = services.ParseWatchedFilter(c.Query("watched")); err != nil {
		return filter, 0, err
	}

	offset, err = services.ParsePageOffset(c.Query("offset"))
	return filter, offset, err
}

func queryVideos(c *gin.Context, title string) (args gin.H, ok bool) {
	handler := errs.NewGinErrorHandler(c, html.StringAsHTML(title))
	filter, offset, err := parseVideoFilter(c)
	if err != nil {
		handler.PublicError(http.StatusBadRequest, err)
		return nil, false
	}

	tx := db.BeginTx(handler)
	if tx == nil {
		return nil, false
	}
	defer tx.Rollback()

	username := auth.GetUsername(c)
	videos, hasErr := services.ListVideos(tx, username, filter, offset)
	if hasErr {
		return nil, false
	}

	classes, hasErr := services.ListClasses(tx, username)
	if hasErr {
		return nil, false
	}

	subjects, hasErr := services.ListSubjects(tx, username)
	if hasErr {
		return nil, false
	}

	if tx.Commit() {
		return nil, false
	}

	return gin.H{
		"Videos":   videos,
		"Filter":   filter,
		"Classes":  classes,
		"Subjects": subjects,
	}, true
}
