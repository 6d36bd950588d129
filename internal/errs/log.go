package errs

import "log/slog"

// LogErrorHandler is used outside of a request, e.g. in background
// goroutines and WebSocket handlers. publicErrorHandler forwards public
// errors to wherever the user can still see them.
type LogErrorHandler struct {
	title              string
	publicErrorHandler func(err error) error
}

func NewLogErrorHandler(title string, publicErrorHandler func(err error) error) *LogErrorHandler {
	return &LogErrorHandler{title: title, publicErrorHandler: publicErrorHandler}
}

func (e *LogErrorHandler) RenderError(err error) {
	slog.Warn("Render error", "title", e.title, "err", err)
}

func (e *LogErrorHandler) PublicError(_ int, err error) {
	slog.Warn("Public error", "title", e.title, "err", err)
	if e.publicErrorHandler == nil {
		return
	}
	if handleErr := e.publicErrorHandler(err); handleErr != nil {
		slog.Warn("Error handling public error while "+e.title, "err", err, "handleErr", handleErr)
	}
}

func (e *LogErrorHandler) PrivateError(err error) {
	slog.Warn("Private error", "title", e.title, "err", err)
}
