package errs

import "github.com/gin-gonic/gin"

// CaptureErrorHandler records errors instead of reporting them.
type CaptureErrorHandler struct {
	Errors     []gin.Error
	StatusCode int
}

func NewCapturingErrorHandler() *CaptureErrorHandler {
	return &CaptureErrorHandler{}
}

func (e *CaptureErrorHandler) RenderError(err error) {
	e.Errors = append(e.Errors, gin.Error{Err: err, Type: gin.ErrorTypeRender})
}

func (e *CaptureErrorHandler) PublicError(statusCode int, err error) {
	e.StatusCode = statusCode
	e.Errors = append(e.Errors, gin.Error{Err: err, Type: gin.ErrorTypePublic})
}

func (e *CaptureErrorHandler) PrivateError(err error) {
	e.Errors = append(e.Errors, gin.Error{Err: err, Type: gin.ErrorTypePrivate})
}

func (e *CaptureErrorHandler) PublicErrors() (errs []error) {
	for _, err := range e.Errors {
		if err.Type == gin.ErrorTypePublic {
			errs = append(errs, err.Err)
		}
	}
	return errs
}

func (e *CaptureErrorHandler) HasErrors() bool {
	return len(e.Errors) > 0
}
