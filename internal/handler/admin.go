package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/hostel-complaint-portal/internal/flash"
	"github.com/iliyamo/hostel-complaint-portal/internal/middleware"
	"github.com/iliyamo/hostel-complaint-portal/internal/model"
	"github.com/iliyamo/hostel-complaint-portal/internal/service"
	"github.com/iliyamo/hostel-complaint-portal/internal/view"
)

// AdminHandler serves the admin dashboard and status updates.
type AdminHandler struct {
	Complaints *service.ComplaintService
	Log        *zap.Logger
}

func NewAdminHandler(complaints *service.ComplaintService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{Complaints: complaints, Log: log}
}

// Dashboard lists every complaint, narrowed by the status, hostel and
// category query parameters.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	listing, err := h.Complaints.ListForAdmin(ctx, model.ComplaintFilter{
		Status:   c.QueryParam("status"),
		Hostel:   c.QueryParam("hostel"),
		Category: c.QueryParam("category"),
	})
	if err != nil {
		h.Log.Error("list complaints", zap.Error(err))
		return renderError(c, view.PageAdminDashboard, "All complaints", view.AdminDashboard{
			AdminListing: &service.AdminListing{},
			Statuses:     model.Statuses,
		}, "Could not load complaints. Please try again.")
	}
	return render(c, view.PageAdminDashboard, "All complaints", view.AdminDashboard{
		AdminListing: listing,
		Statuses:     model.Statuses,
	})
}

// UpdateStatus sets the status of one complaint.
func (h *AdminHandler) UpdateStatus(c echo.Context) error {
	rawID := strings.TrimSpace(c.FormValue("complaint_id"))
	status := strings.TrimSpace(c.FormValue("status"))
	var id uint64
	if rawID != "" {
		n, err := strconv.ParseUint(rawID, 10, 64)
		if err != nil {
			return redirectFlash(c, flash.Error, "Complaint not found.", middleware.PathAdminDashboard)
		}
		id = n
	}

	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	err := h.Complaints.UpdateStatus(ctx, id, status)
	switch {
	case err == nil:
		return redirectFlash(c, flash.Success, fmt.Sprintf("Status updated to %s.", status), middleware.PathAdminDashboard)
	case errors.Is(err, service.ErrValidation):
		return redirectFlash(c, flash.Error, "Invalid request.", middleware.PathAdminDashboard)
	case errors.Is(err, service.ErrNotFound):
		return redirectFlash(c, flash.Error, "Complaint not found.", middleware.PathAdminDashboard)
	default:
		h.Log.Error("update status", zap.Uint64("complaint_id", id), zap.Error(err))
		return redirectFlash(c, flash.Error, "Failed to update status.", middleware.PathAdminDashboard)
	}
}
