package middleware

import (
	"errors"
	"log"
	"time"

	"farm-market-session/metrics"

	"github.com/gofiber/fiber/v2"
)

// TimerMetrics logs every request's duration and feeds the latency histogram
func TimerMetrics(collector *metrics.Collector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		startTime := time.Now()

		err := c.Next()

		duration := time.Since(startTime)
		method := c.Method()
		path := c.Path()
		statusCode := c.Response().StatusCode()
		if err != nil {
			// the error handler has not written the status yet
			var fe *fiber.Error
			if errors.As(err, &fe) {
				statusCode = fe.Code
			} else {
				statusCode = fiber.StatusInternalServerError
			}
		}

		// Label by route pattern, not raw path, to keep cardinality bounded
		route := c.Route().Path
		if route == "" || route == "/" {
			route = path
		}
		collector.RecordRequest(method, route, statusCode, duration)

		log.Printf("[METRICS] %s %s - Status: %d - Duration: %dms (%.3fs)",
			method, path, statusCode, duration.Milliseconds(), duration.Seconds())

		return err
	}
}
