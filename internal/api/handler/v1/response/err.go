package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"
)

// Err is the JSON error body. Fields holds per-field validation messages.
type Err struct {
	HTTPStatusCode int    `json:"-"`
	Message        string `json:"message"`
	Fields         error  `json:"error,omitempty"`
	Err            error  `json:"-"`
}

func (e *Err) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return e.Message
}

func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error(e.Message,
			zap.String("path", ctx.FullPath()),
			zap.Error(e.Err),
		)
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

// ErrValidation reports input that failed the request rules. ozzo-validation
// field errors are kept so the body lists them per field.
func ErrValidation(err error) *Err {
	return newFieldErr(http.StatusUnauthorized, err)
}

// ErrBadRequest is used where the order routes reject malformed input.
func ErrBadRequest(err error) *Err {
	return newFieldErr(http.StatusBadRequest, err)
}

func newFieldErr(status int, err error) *Err {
	e := &Err{
		HTTPStatusCode: status,
		Message:        "Validation Failed",
		Err:            err,
	}

	var fields validation.Errors
	if errors.As(err, &fields) {
		e.Fields = fields
	} else if err != nil {
		e.Message = err.Error()
	}

	return e
}

func ErrUnauthenticated(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusUnauthorized,
		Message:        "Invalid Authorization Token",
		Err:            err,
	}
}

func ErrNotVerified(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusUnauthorized,
		Message:        "Not a Verified User",
		Err:            err,
	}
}

func ErrWrongPassword(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusPaymentRequired,
		Message:        "Wrong Password",
		Err:            err,
	}
}

func ErrNotFound(message string, err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusNotFound,
		Message:        message,
		Err:            err,
	}
}

func ErrConflict(message string, err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusConflict,
		Message:        message,
		Err:            err,
	}
}

func ErrInvalidCount(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusNotAcceptable,
		Message:        "Count Must Be Greater Than 0",
		Err:            err,
	}
}

// ErrNotApplied is the soft outcome of a write the store refused.
func ErrNotApplied(message string, err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusAccepted,
		Message:        message,
		Err:            err,
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusInternalServerError,
		Message:        "Internal Server Error",
		Err:            err,
	}
}
