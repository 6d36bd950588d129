package stores

import (
	"html/template"

	"github.com/gin-gonic/gin"
)

const ErrorTitleKey = "error-title"

func SetErrorTitle(c *gin.Context, title template.HTML) {
	c.Set(ErrorTitleKey, title)
}

func GetErrorTitle(c *gin.Context) template.HTML {
	if value, ok := c.Get(ErrorTitleKey); ok && value != nil {
		title, ok := value.(template.HTML)
		if ok {
			return title
		}
	}

	return "Error"
}
