package middleware

// context.go holds helpers shared across middleware files.

import (
    "context"
    "time"

    "github.com/labstack/echo/v4"
)

// timeoutCtx derives a context with the given timeout from the request
// context, so database calls made inside middleware cannot outlive the
// request by much.
func timeoutCtx(c echo.Context, d time.Duration) (context.Context, context.CancelFunc) {
    return context.WithTimeout(c.Request().Context(), d)
}
