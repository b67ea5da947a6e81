package response

import (
	"net/http"

	"royalstay/internal/shared/validation"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError renders field errors as 400 with a field map and everything
// else with the status statusFor picks.
func RespondError(c *gin.Context, message string, err error, statusFor func(error) int) {
	if inputErr, ok := validation.AsInputError(err); ok {
		RespondJSON(c, "error", http.StatusBadRequest, message, nil, inputErr.Fields)
		return
	}

	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		// storage details stay in the logs
		RespondJSON(c, "error", code, message, nil, "internal server error")
		return
	}
	RespondJSON(c, "error", code, message, nil, err.Error())
}
