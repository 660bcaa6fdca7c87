package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/logging"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind"`
	Details any    `json:"details,omitempty"`
}

// Error sends a JSON error response.
// It checks if the error is an AppError to determine the status code and kind.
// Errors implementing apperror.Detailer contribute a details object.
// If it's not an AppError, it defaults to 500 Internal Server Error.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		resp := ErrorResponse{Error: appErr.Message, Kind: string(appErr.Kind)}
		var d apperror.Detailer
		if errors.As(err, &d) {
			resp.Details = d.Details()
		}
		if appErr.Kind == apperror.KindStorage {
			logging.FromContext(c.Request.Context()).Error("storage failure", "error", err)
		}
		c.JSON(appErr.Code, resp)
		return
	}

	logging.FromContext(c.Request.Context()).Error("unhandled error", "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: "internal server error",
		Kind:  string(apperror.KindInternal),
	})
}

// BadRequest sends a 400 response for malformed payloads or query strings.
func BadRequest(c *gin.Context, message string, err error) {
	resp := ErrorResponse{Error: message, Kind: string(apperror.KindInvalidInput)}
	if err != nil {
		resp.Details = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}
