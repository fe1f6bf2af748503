package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error represents an application error with the HTTP status it maps to.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFound builds a 404 error carrying the underlying cause.
func NotFound(message string, err error) *Error {
	return New(http.StatusNotFound, message, err)
}

// BadRequest builds a 400 error.
func BadRequest(message string, err error) *Error {
	return New(http.StatusBadRequest, message, err)
}

// Unavailable builds a 503 error for a failing upstream dependency.
func Unavailable(message string, err error) *Error {
	return New(http.StatusServiceUnavailable, message, err)
}

// Internal builds a 500 error.
func Internal(err error) *Error {
	return New(http.StatusInternalServerError, "Internal server error", err)
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Respond writes err as a JSON `{"error": message}` body. Errors that are not
// application errors are logged and reported as 500.
func Respond(c *gin.Context, err error) {
	appErr, ok := As(err)
	if !ok {
		appErr = Internal(err)
	}
	if appErr.Code >= http.StatusInternalServerError {
		zap.L().Error("Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", appErr.Code),
			zap.Error(err),
		)
	}
	c.JSON(appErr.Code, gin.H{"error": appErr.Message})
}

// ErrorMiddleware renders the last error attached with c.Error when the
// handler did not write a response itself.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		Respond(c, c.Errors.Last().Err)
		c.Abort()
	}
}
