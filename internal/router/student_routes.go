package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hostel-complaint-portal/internal/handler"
	"github.com/iliyamo/hostel-complaint-portal/internal/middleware"
)

// RegisterStudent registers the student dashboard and complaint submission.
// Both require a student session; admins are sent to their own dashboard.
// Stored photos are visible to any logged-in user.
func RegisterStudent(e *echo.Echo, h *handler.StudentHandler) {
	e.GET("/student_dashboard", h.Dashboard, middleware.RequireStudent())
	e.POST("/submit_complaint", h.SubmitComplaint, middleware.RequireStudent())

	e.GET("/uploads/:name", h.Image, middleware.RequireSession())
}
