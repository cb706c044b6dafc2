package middleware

import (
	"time"

	"github.com/centavo/centavo-backend/internal/metrics"
	"github.com/labstack/echo/v4"
)

// Metrics returns a middleware that records request counts and durations.
// The route path (not the raw URL) is used as the label to bound cardinality.
func Metrics(recorder metrics.Recorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			recorder.RecordHTTPRequest(c.Request().Method, path, c.Response().Status, time.Since(start))

			return nil
		}
	}
}
