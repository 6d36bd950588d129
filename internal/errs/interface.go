package errs

// ErrorHandler receives the failures of a unit of work. Public errors are
// shown to the user, private errors are only logged.
type ErrorHandler interface {
	RenderError(err error)
	PublicError(statusCode int, err error)
	PrivateError(err error)
}
