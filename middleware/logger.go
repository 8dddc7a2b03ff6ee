package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger is gin's logger with a compact single-line format.
func RequestLogger() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(p gin.LogFormatterParams) string {
		line := fmt.Sprintf("%s | %3d | %10v | %-7s %s",
			p.TimeStamp.Format(time.RFC3339),
			p.StatusCode,
			p.Latency.Round(time.Microsecond),
			p.Method,
			p.Path,
		)
		if p.ErrorMessage != "" {
			line += " | " + p.ErrorMessage
		}
		return line + "\n"
	})
}
