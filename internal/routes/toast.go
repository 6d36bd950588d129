package routes

import (
	"html/template"

	"github.com/btmxh/dersflix/internal/errs"
	"github.com/btmxh/dersflix/internal/html"
	"github.com/btmxh/dersflix/internal/middlewares"
	"github.com/gin-gonic/gin"
)

// ToastErrorMiddleware shows request errors as a toast for HTMX requests
// and as a full error page otherwise.
func ToastErrorMiddleware() gin.HandlerFunc {
	return middlewares.ErrorMiddleware(func(c *gin.Context, title, desc template.HTML) {
		if errs.IsHtmx(c) {
			html.Toast(c, html.ToastError, title, desc)
		} else {
			html.RenderError(c, title, desc)
		}
	})
}

func ToastRouter(g *gin.RouterGroup) {
	g.GET("/error", func(c *gin.Context) {
		html.Toast(c, html.ToastError, "Test error message", "Hello, World!")
	})
	g.GET("/info", func(c *gin.Context) {
		html.Toast(c, html.ToastInfo, "Test info message", "Hello, World!")
	})
	g.GET("/error/long", func(c *gin.Context) {
		html.Toast(c, html.ToastError, "Test error message", "Hello, World!Hello, World!Hello, World!Hello, World!Hello, World!Hello, World!")
	})
	g.GET("/info/long", func(c *gin.Context) {
		html.Toast(c, html.ToastInfo, "Test info message", "Hello, World!Hello, World!Hello, World!Hello, World!Hello, World!Hello, World!")
	})
}
