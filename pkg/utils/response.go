package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope every endpoint speaks. Error responses carry
// Message; Detail is populated only in development mode.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func SendMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
	})
}

func SendError(c *gin.Context, statusCode int, message, detail string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Error:   detail,
	})
}

func SendValidationError(c *gin.Context, message, detail string) {
	SendError(c, http.StatusBadRequest, message, detail)
}

func SendNotFound(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, message, "")
}

func SendInternalError(c *gin.Context, message, detail string) {
	SendError(c, http.StatusInternalServerError, message, detail)
}
