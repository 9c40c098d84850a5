package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the uniform envelope used for every API reply.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// Respond writes a success envelope with the given status and payload.
func Respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

// RespondError writes a failure envelope with the given status.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: false, Message: message})
}

// AbortError writes a failure envelope and stops the middleware chain.
func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Response{Success: false, Message: message})
}

// RespondValidationErrors reports every violated field constraint at once.
func RespondValidationErrors(c *gin.Context, errs []FieldError) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}
