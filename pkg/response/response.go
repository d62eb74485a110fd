package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint returns
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorData  `json:"error,omitempty"`
}

// ErrorData describes a failed request
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

// PNG writes raw image bytes
func PNG(c *gin.Context, data []byte) {
	c.Data(http.StatusOK, "image/png", data)
}

func Error(c *gin.Context, status int, code, message string, details string) {
	c.AbortWithStatusJSON(status, Response{
		Success: false,
		Error: &ErrorData{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// InternalError hides err from the client; callers log it
func InternalError(c *gin.Context, err error) {
	_ = c.Error(err)
	Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal Server Error", "")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, "BAD_REQUEST", message, "")
}

func ValidationError(c *gin.Context, err error) {
	Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, "NOT_FOUND", message, "")
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, "UNAUTHORIZED", message, "")
}

func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, "FORBIDDEN", message, "")
}

func Conflict(c *gin.Context, code, message string) {
	Error(c, http.StatusConflict, code, message, "")
}

func TooManyRequests(c *gin.Context) {
	Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests", "")
}
