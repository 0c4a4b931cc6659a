package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hostel-complaint-portal/internal/flash"
	"github.com/iliyamo/hostel-complaint-portal/internal/model"
	"github.com/iliyamo/hostel-complaint-portal/internal/service"
)

// Landing pages the guards redirect to.
const (
	PathIndex            = "/"
	PathStudentDashboard = "/student_dashboard"
	PathAdminDashboard   = "/admin_dashboard"
)

// RequireSession admits any logged-in user.  Anonymous requests are sent to
// the login page.
func RequireSession() echo.MiddlewareFunc {
	return requireRole("", PathIndex)
}

// RequireAdmin admits administrators.  Students are sent back to their own
// dashboard.
func RequireAdmin() echo.MiddlewareFunc {
	return requireRole(model.RoleAdmin, PathStudentDashboard)
}

// RequireStudent admits students.  Administrators are redirected to the
// admin dashboard without a message.
func RequireStudent() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch err := service.Authorize(CurrentIdentity(c), model.RoleStudent); {
			case err == nil:
				return next(c)
			case errors.Is(err, service.ErrForbidden):
				return c.Redirect(http.StatusFound, PathAdminDashboard)
			default:
				flash.Set(c, flash.Error, "Please log in to access this page.")
				return c.Redirect(http.StatusFound, PathIndex)
			}
		}
	}
}

func requireRole(role, forbiddenTarget string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch err := service.Authorize(CurrentIdentity(c), role); {
			case err == nil:
				return next(c)
			case errors.Is(err, service.ErrForbidden):
				flash.Set(c, flash.Error, "Admin access required.")
				return c.Redirect(http.StatusFound, forbiddenTarget)
			default:
				flash.Set(c, flash.Error, "Please log in to access this page.")
				return c.Redirect(http.StatusFound, PathIndex)
			}
		}
	}
}
