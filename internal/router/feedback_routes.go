package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hostel-complaint-portal/internal/handler"
	"github.com/iliyamo/hostel-complaint-portal/internal/middleware"
)

// RegisterFeedback registers the feedback form and its submission.  Any
// logged-in user may reach them; ownership and the Resolved status are
// checked per request.
func RegisterFeedback(e *echo.Echo, h *handler.FeedbackHandler) {
	e.GET("/feedback/:complaint_id", h.Form, middleware.RequireSession())
	e.POST("/submit_feedback", h.Submit, middleware.RequireSession())
}
