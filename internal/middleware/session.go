package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "time"     // timeout for the session lookup

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/lukaswerth/business-number-service/internal/repository"
    "github.com/lukaswerth/business-number-service/internal/utils"
)

// CookieName is the name of the session cookie set on login.
const CookieName = "bns_session"

// Session returns an Echo middleware that authenticates a request from its
// session cookie.  The cookie value is a signed token carrying the session
// id; the signature is checked first, then the id is hashed and looked up in
// the sessions table.  Expired, revoked, tampered or absent sessions all
// produce the same 401 response.  On success the middleware injects
// "username" and "user_id" into the request context, so handlers can read
// them via c.Get().
func Session(secret string, sessions *repository.SessionRepo) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            cookie, err := c.Cookie(CookieName)
            if err != nil || cookie.Value == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not authenticated"})
            }
            sid, err := utils.ParseSessionToken(secret, cookie.Value)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not authenticated"})
            }

            ctx, cancel := timeoutCtx(c, 5*time.Second)
            defer cancel()

            s, err := sessions.Validate(ctx, utils.HashSessionID(sid))
            if err == repository.ErrNotFound {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not authenticated"})
            }
            if err != nil {
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session check failed"})
            }

            c.Set("username", s.Username)
            c.Set("user_id", s.UserID)
            c.Set("sid_hash", s.SIDHash)
            return next(c)
        }
    }
}
