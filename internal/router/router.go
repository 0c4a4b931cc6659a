package router // package router defines how HTTP routes are registered

import (
	"fmt"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/hostel-complaint-portal/internal/handler"
	"github.com/iliyamo/hostel-complaint-portal/internal/logger"
	"github.com/iliyamo/hostel-complaint-portal/internal/middleware"
)

// UseGlobal installs the middleware every request passes through.  The
// session is loaded ahead of the body limit: the 413 redirect picks the
// dashboard from the caller's identity.
func UseGlobal(e *echo.Echo, sessions *middleware.Sessions, maxBodyBytes int64, log *zap.Logger) {
	e.Use(echomw.Recover())
	e.Use(logger.RequestLogger(log))
	e.Use(sessions.Load())
	e.Use(echomw.BodyLimit(fmt.Sprintf("%dB", maxBodyBytes)))
}

// RegisterRoutes registers routes that do not require a session: the
// health check.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterAuth registers the login page and the account endpoints.  The
// limiter guards the two form posts that check or create credentials.
// Logout is unguarded and always clears the session.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limiter echo.MiddlewareFunc) {
	e.GET("/", a.Index)
	e.POST("/register", a.Register, limiter)
	e.POST("/login", a.Login, limiter)
	e.GET("/logout", a.Logout)
	// One-time bootstrap of the administrator account.
	e.GET("/create_admin", a.CreateAdmin)
}
