package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
)

// Recover returns recovery middleware. Panics surface as the service's
// `{"error": ...}` wire shape, never as an empty response.
func Recover() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("%v", r)
					}
					log.Printf("PANIC: %v\n%s", err, debug.Stack())
					_ = c.JSON(http.StatusInternalServerError, map[string]interface{}{
						"error": "internal server error",
					})
				}
			}()
			return next(c)
		}
	}
}
