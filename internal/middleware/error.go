package middleware

import (
	"github.com/gin-gonic/gin"

	"posapi/internal/respond"
)

// ErrorHandler returns a Gin middleware that converts errors set on the Gin
// context into consistent JSON error responses. Nothing is written when a
// handler already produced a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		// Process the last error (most relevant in a middleware chain)
		respond.Error(c, c.Errors.Last().Err)
	}
}
