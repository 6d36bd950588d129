package errs

import (
	"html/template"
	"net/http"

	"github.com/btmxh/dersflix/internal/stores"
	"github.com/gin-gonic/gin"
)

type GinErrorHandler struct {
	htmx    bool
	context *gin.Context
}

func IsHtmx(c *gin.Context) bool {
	return c.Request.Header.Get("HX-Request") == "true"
}

// NewGinErrorHandler reports errors into c.Errors, where ErrorMiddleware
// picks them up. HTMX requests always get 200 so that the toast is
// swapped in.
func NewGinErrorHandler(c *gin.Context, title template.HTML) *GinErrorHandler {
	stores.SetErrorTitle(c, title)
	return &GinErrorHandler{htmx: IsHtmx(c), context: c}
}

func (e *GinErrorHandler) RenderError(err error) {
	e.context.Error(err).SetType(gin.ErrorTypeRender)
}

func (e *GinErrorHandler) PublicError(statusCode int, err error) {
	if e.htmx {
		statusCode = http.StatusOK
	}
	e.context.Status(statusCode)
	e.context.Error(err).SetType(gin.ErrorTypePublic)
}

func (e *GinErrorHandler) PrivateError(err error) {
	e.context.Error(err).SetType(gin.ErrorTypePrivate)
}
