package html

import (
	"html/template"

	"github.com/gin-gonic/gin"
)

var errorTemplate = LazyTemplate(func() *template.Template {
	return GetTemplate("error", "templates/error.tmpl")
})

func RenderError(c *gin.Context, title, description template.HTML) {
	Render(errorTemplate(), c, "layout", gin.H{
		"Title": title, "Description": description,
	})
}
