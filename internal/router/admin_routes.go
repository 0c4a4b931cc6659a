package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hostel-complaint-portal/internal/handler"
	"github.com/iliyamo/hostel-complaint-portal/internal/middleware"
)

// RegisterAdmin registers admin-only endpoints.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler) {
	e.GET("/admin_dashboard", h.Dashboard, middleware.RequireAdmin())
	e.POST("/update_status", h.UpdateStatus, middleware.RequireAdmin())
}
