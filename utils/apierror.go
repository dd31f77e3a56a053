package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Error kinds raised by the service layer. Services wrap these with
// fmt.Errorf("%w: ...") so the boundary can map kind -> status while
// the message stays human readable.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
)

// RespondError maps a service error onto the HTTP status taxonomy.
func RespondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		status = http.StatusConflict
	}
	c.JSON(status, APIResponse{Success: false, Error: err.Error()})
}

// RespondBindError reports a malformed request body or query.
func RespondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, APIResponse{Success: false, Error: err.Error()})
}
