package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is the JSON error payload returned by every failing endpoint.
type Error struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func NewBadRequestError(message string) Error {
	return Error{Status: http.StatusBadRequest, Message: message}
}

func NewUnauthorizedError() Error {
	return Error{Status: http.StatusUnauthorized, Message: "unauthenticated"}
}

func NewForbiddenError() Error {
	return Error{Status: http.StatusForbidden, Message: "forbidden"}
}

func NewInternalError() Error {
	return Error{Status: http.StatusInternalServerError, Message: "internal error"}
}

// HandleError writes the payload and aborts the request.
func HandleError(err Error, c *gin.Context) {
	c.AbortWithStatusJSON(err.Status, err)
}
