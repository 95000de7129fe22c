package handler

import (
    "context"  // provides context with cancellation for DB calls
    "net/http" // HTTP status codes and primitives
    "strings"  // string trimming for input normalization
    "time"     // timeouts for DB calls and cookie expiry

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/lukaswerth/business-number-service/internal/config"
    "github.com/lukaswerth/business-number-service/internal/middleware"
    "github.com/lukaswerth/business-number-service/internal/repository"
    "github.com/lukaswerth/business-number-service/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
    Cfg      config.Config
    Users    *repository.UserRepo
    Sessions *repository.SessionRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, s *repository.SessionRepo) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Users: u, Sessions: s}
}

// ----- DTOs -----

type credentialsReq struct {
    Username string `json:"username" form:"username"`
    Password string `json:"password" form:"password"`
}

// Register creates a user.  A taken username is the only error detail the
// client gets to see; everything else is a generic 500.
func (h *AuthHandler) Register(c echo.Context) error {
    var req credentialsReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Username = strings.TrimSpace(req.Username)
    if req.Username == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    uid, err := h.Users.Create(ctx, req.Username, req.Password, h.Cfg.BcryptCost)
    if err != nil {
        if err == repository.ErrUsernameExists {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "Username already exists"})
        }
        c.Logger().Errorf("register: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Registration failed"})
    }

    return c.JSON(http.StatusCreated, echo.Map{"message": "Registration successful", "userId": uid})
}

// Login verifies credentials, stores a session row and hands the signed
// session token back as a cookie.  Unknown username and wrong password are
// deliberately indistinguishable in the response.
func (h *AuthHandler) Login(c echo.Context) error {
    var req credentialsReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Username = strings.TrimSpace(req.Username)
    if req.Username == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    ok, u, err := h.Users.VerifyPassword(ctx, req.Username, req.Password)
    if err != nil {
        c.Logger().Errorf("login: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Login failed"})
    }
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid username or password"})
    }

    tok, err := utils.NewSessionToken(h.Cfg.SessionSecret, h.Cfg.SessionTTLHrs)
    if err != nil {
        c.Logger().Errorf("login: issue session: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Login failed"})
    }
    if err := h.Sessions.Create(ctx, u.ID, u.Username, utils.HashSessionID(tok.SID), tok.Exp); err != nil {
        c.Logger().Errorf("login: save session: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Login failed"})
    }

    c.SetCookie(h.sessionCookie(tok.Raw, tok.Exp))
    return c.JSON(http.StatusOK, echo.Map{"message": "Login successful", "redirect": "/"})
}

// Logout revokes the current session (when a valid cookie is present),
// clears the cookie and sends the browser back to the login page.
func (h *AuthHandler) Logout(c echo.Context) error {
    if cookie, err := c.Cookie(middleware.CookieName); err == nil && cookie.Value != "" {
        if sid, err := utils.ParseSessionToken(h.Cfg.SessionSecret, cookie.Value); err == nil {
            ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
            defer cancel()
            if err := h.Sessions.Revoke(ctx, utils.HashSessionID(sid)); err != nil {
                c.Logger().Errorf("logout: revoke: %v", err)
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Could not log out"})
            }
        }
    }
    c.SetCookie(h.sessionCookie("", time.Unix(0, 0)))
    return c.Redirect(http.StatusFound, "/auth/login")
}

// CurrentUser reports the username behind the session.  Runs behind the
// session middleware, so the context value is always present.
func (h *AuthHandler) CurrentUser(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"username": c.Get("username")})
}

// sessionCookie builds the session cookie.  An empty value with an epoch
// expiry clears it.
func (h *AuthHandler) sessionCookie(value string, exp time.Time) *http.Cookie {
    return &http.Cookie{
        Name:     middleware.CookieName,
        Value:    value,
        Path:     "/",
        Expires:  exp,
        HttpOnly: true,
        Secure:   h.Cfg.CookieSecure(),
        SameSite: http.SameSiteLaxMode,
    }
}
