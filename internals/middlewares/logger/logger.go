package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// LoggerMiddleware mencatat access log satu baris per request, lengkap dengan
// request-id supaya bisa dicocokkan dengan log relay & audit.
func LoggerMiddleware() fiber.Handler {
	return logger.New(logger.Config{
		// health check dipanggil tiap beberapa detik oleh platform
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Format:     "[${time}] ${ip} ${locals:reqid} - ${method} ${path} - ${status} - ${latency}\n",
	})
}
