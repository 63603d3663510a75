package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Responses are flat JSON objects: an "error" flag and a "message", plus
// payload keys merged at the top level (user, accessToken, story, stories,
// imageUrl, ...). Existing clients depend on this shape.

// Success writes a success body merging payload keys into the envelope.
func Success(c *gin.Context, status int, message string, payload gin.H) {
	if status == 0 {
		status = http.StatusOK
	}
	body := gin.H{"error": false, "message": message}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// Error writes a failure body. details is optional and carries per-field
// validation messages when present.
func Error(c *gin.Context, status int, message string, details any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	body := gin.H{"error": true, "message": message}
	if details != nil {
		body["details"] = details
	}
	c.JSON(status, body)
}

// AbortError writes a failure body and aborts the handler chain.
func AbortError(c *gin.Context, status int, message string, details any) {
	Error(c, status, message, details)
	c.Abort()
}
