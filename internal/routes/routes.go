package routes

import (
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/btmxh/dersflix/internal/errs"
	"github.com/btmxh/dersflix/internal/html"
	"github.com/btmxh/dersflix/internal/middlewares"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func getTemplate(name string, paths ...string) *template.Template {
	return html.GetTemplate(name, paths...)
}

func CreateMainRouter() http.Handler {
	router := gin.Default()

	gzipMode := gzip.NoCompression
	if gzipModeStr, ok := os.LookupEnv("GZIP_MODE"); ok {
		mode, err := strconv.Atoi(gzipModeStr)
		if err != nil {
			slog.Warn("Invalid value for GZIP_MODE environment variable", "err", err)
		} else {
			gzipMode = mode
		}
	}

	router.Use(gzip.Gzip(gzipMode))
	router.Use(middlewares.AuthMiddleware())
	router.Use(ToastErrorMiddleware())

	router.GET("/", HomeRouter)
	AuthRouter(router.Group("/auth"))
	ToastRouter(router.Group("/toast"))
	VideoRouter(router.Group("/videos"))
	SettingsRouter(router.Group("/settings"))
	WebSocketRouter(router.Group("/ws"))
	// only enabled when using memorymail
	MailRouter(router.Group("/mail"))

	router.Static("/scripts", "./dist/scripts")
	router.Static("/styles", "./dist/styles")
	router.Static("/assets", "./dist/assets")

	return router
}

func HxRedirect(c *gin.Context, route string) {
	c.Header("Hx-Redirect", route)
}

func HxPushURL(c *gin.Context, route string) {
	c.Header("Hx-Push-Url", route)
}

func HxRefresh(c *gin.Context) {
	c.Header("Hx-Refresh", "true")
}

func HxPrompt(c *gin.Context) (string, error) {
	return url.PathUnescape(c.GetHeader("Hx-Prompt"))
}

func HxNoswap(c *gin.Context) {
	c.Header("Hx-Reswap", "none")
}

// Redirect works for both HTMX and plain form submissions.
func Redirect(c *gin.Context, route string) {
	if errs.IsHtmx(c) {
		HxRedirect(c, route)
		c.Status(http.StatusOK)
	} else {
		c.Redirect(http.StatusSeeOther, route)
	}
}

func UpdateTitle(c *gin.Context, title string) {
	title = template.HTMLEscapeString(title)
	c.Writer.WriteString("<title>")
	c.Writer.WriteString(title)
	c.Writer.WriteString("</title>")
}
