package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CORSMiddleware answers preflight requests and sets the allowed origins.
// Credentials stay enabled so the session cookie crosses origins; the
// wildcard origin is echoed back per-request for the same reason.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	allowAll := false
	allowed := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			allowAll = true
		}
		if origin != "" {
			allowed[origin] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := allowed[origin]; ok || allowAll {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
				c.Writer.Header().Set("Vary", "Origin")
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

const logLineLimit = 120

// RequestLogger logs one line per request: method, path, status, duration and
// a truncated echo of the JSON response body.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		writer := &capturingWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		line := fmt.Sprintf("%s %s %d in %s",
			c.Request.Method,
			c.Request.URL.Path,
			writer.Status(),
			time.Since(start).Truncate(time.Millisecond),
		)
		if body := strings.TrimSpace(writer.body.String()); body != "" {
			line += " :: " + body
		}
		logger.Info(truncateLine(line, logLineLimit))
	}
}

// truncateLine caps a log line at limit bytes without splitting a rune;
// echoed bodies carry accented French text.
func truncateLine(line string, limit int) string {
	if len(line) <= limit {
		return line
	}
	cut := limit - 1
	for cut > 0 && !utf8.RuneStart(line[cut]) {
		cut--
	}
	return line[:cut] + "…"
}

type capturingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	if w.body.Len() < logLineLimit {
		w.body.Write(b)
	}
	return w.ResponseWriter.Write(b)
}
