package handler

import (
    "context"
    "net/http"
    "path/filepath"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/lukaswerth/business-number-service/internal/config"
    "github.com/lukaswerth/business-number-service/internal/middleware"
    "github.com/lukaswerth/business-number-service/internal/repository"
    "github.com/lukaswerth/business-number-service/internal/utils"
)

// PageHandler serves the static HTML pages.  The dashboard behind "/" is
// only shown to logged-in users; anonymous visitors are sent to the login
// page instead of getting a 401, since these routes are navigated by a
// browser, not an API client.
type PageHandler struct {
    Cfg      config.Config
    Sessions *repository.SessionRepo
    Dir      string // directory holding the HTML files, usually "public"
}

func NewPageHandler(cfg config.Config, s *repository.SessionRepo, dir string) *PageHandler {
    if dir == "" {
        dir = "public"
    }
    return &PageHandler{Cfg: cfg, Sessions: s, Dir: dir}
}

// Index serves the dashboard when a valid session cookie is present and
// redirects to the login page otherwise.
func (h *PageHandler) Index(c echo.Context) error {
    if !h.loggedIn(c) {
        return c.Redirect(http.StatusFound, "/auth/login")
    }
    return c.File(filepath.Join(h.Dir, "index.html"))
}

// LoginPage serves the login form.
func (h *PageHandler) LoginPage(c echo.Context) error {
    return c.File(filepath.Join(h.Dir, "login.html"))
}

// RegisterPage serves the registration form.
func (h *PageHandler) RegisterPage(c echo.Context) error {
    return c.File(filepath.Join(h.Dir, "register.html"))
}

// loggedIn checks the session cookie without writing any response.
func (h *PageHandler) loggedIn(c echo.Context) bool {
    cookie, err := c.Cookie(middleware.CookieName)
    if err != nil || cookie.Value == "" {
        return false
    }
    sid, err := utils.ParseSessionToken(h.Cfg.SessionSecret, cookie.Value)
    if err != nil {
        return false
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()
    _, err = h.Sessions.Validate(ctx, utils.HashSessionID(sid))
    return err == nil
}
