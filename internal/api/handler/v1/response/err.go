package response

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	StatusCode int    `json:"-"`
	Msg        string `json:"error"`

	wrapped error
}

func (e *Err) Error() string {
	return e.Msg
}

func NewErr(statusCode int, err error) *Err {
	return &Err{
		StatusCode: statusCode,
		Msg:        err.Error(),
		wrapped:    err,
	}
}

func ErrBadRequest(err error) *Err {
	return NewErr(http.StatusBadRequest, err)
}

func ErrWrongCredentials(err error) *Err {
	return NewErr(http.StatusUnauthorized, err)
}

func ErrPermissionDenied(err error) *Err {
	return NewErr(http.StatusForbidden, err)
}

func ErrNotFound(err error) *Err {
	return NewErr(http.StatusNotFound, err)
}

func ErrConflict(err error) *Err {
	return NewErr(http.StatusConflict, err)
}

// ErrInternalServerError hides the underlying error from the client; RenderErr
// still logs it together with the request id.
func ErrInternalServerError(err error) *Err {
	e := NewErr(http.StatusInternalServerError, err)
	e.Msg = "internal server error"

	return e
}

func RenderErr(ctx *gin.Context, err *Err) {
	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("requestID", requestid.Get(ctx)),
			zap.String("path", ctx.FullPath()),
			zap.Int("status", err.StatusCode),
			zap.Error(err.wrapped))
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}
