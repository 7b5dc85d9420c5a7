package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cricket-pulse/pkg/utils"
)

// Recovery converts panics into the standard JSON error envelope. The panic
// value is only echoed back in development mode.
func Recovery(logger *logrus.Logger, development bool) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered interface{}) {
		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"request_id": RequestIDFromContext(c),
		}).Errorf("Panic recovered: %v", recovered)

		detail := ""
		if development {
			detail = fmt.Sprintf("%v", recovered)
		}
		utils.SendError(c, http.StatusInternalServerError, "Internal server error", detail)
		c.Abort()
	})
}
