package middlewares

import (
	"html/template"
	"log/slog"
	"strings"

	"github.com/btmxh/dersflix/internal/html"
	"github.com/btmxh/dersflix/internal/stores"
	"github.com/gin-gonic/gin"
)

// ErrorDescription joins the public errors of c, escaped, one per line.
func ErrorDescription(c *gin.Context) template.HTML {
	var descriptions []string
	for _, err := range c.Errors {
		if err.Type == gin.ErrorTypePublic {
			descriptions = append(descriptions, string(html.StringAsHTML(err.Error())))
		}
	}

	if len(descriptions) == 0 {
		return template.HTML("Internal server error")
	}
	return template.HTML(strings.Join(descriptions, "<br>"))
}

func ErrorMiddleware(callback func(c *gin.Context, title, desc template.HTML)) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			title := stores.GetErrorTitle(c)
			slog.Warn("Error handling request", "title", title, "errors", c.Errors.String())
			callback(c, title, ErrorDescription(c))
		}
	}
}
