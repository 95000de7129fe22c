package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/lukaswerth/business-number-service/internal/config"
	"github.com/lukaswerth/business-number-service/internal/handler"
	"github.com/lukaswerth/business-number-service/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance: the health check and the Prometheus metrics
// endpoint.  The metrics middleware itself is applied globally here so every
// route is counted.
func RegisterRoutes(e *echo.Echo) {
	e.Use(middleware.Metrics())
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers the authentication routes and the protected
// current-user endpoint.  Register, login and the HTML pages are open;
// GET /user runs behind the session middleware so an anonymous request is
// answered with 401 before any handler logic runs.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, p *handler.PageHandler, sess echo.MiddlewareFunc) {
	g := e.Group("/auth")
	g.GET("/login", p.LoginPage)
	g.GET("/register", p.RegisterPage)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Logout is reachable without a valid session so a browser holding a
	// stale cookie can always clear it.
	g.GET("/logout", a.Logout)

	e.GET("/", p.Index)
	e.GET("/user", a.CurrentUser, sess)
}

// RegisterGenerate registers the protected issuance and lookup endpoints.
// Both groups run behind the session middleware; an anonymous call is
// rejected before any counter is touched.  Lookups additionally sit behind
// the Redis response cache when a client is available.
func RegisterGenerate(e *echo.Echo, g *handler.GenerateHandler, l *handler.LookupHandler,
	sess echo.MiddlewareFunc, cacheCfg config.CacheConfig, rdb *redis.Client) {

	gen := e.Group("/generate")
	gen.Use(sess)
	gen.POST("/customer", g.Customer)
	gen.POST("/order", g.Order)

	look := e.Group("")
	look.Use(sess)
	look.Use(middleware.NewRedisCache(cacheCfg, rdb))
	look.GET("/customers/:number", l.Customer)
	look.GET("/orders/:number", l.Order)
}
