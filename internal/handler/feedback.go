package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/hostel-complaint-portal/internal/flash"
	"github.com/iliyamo/hostel-complaint-portal/internal/middleware"
	"github.com/iliyamo/hostel-complaint-portal/internal/service"
	"github.com/iliyamo/hostel-complaint-portal/internal/view"
)

var ratings = []int{1, 2, 3, 4, 5}

// FeedbackHandler serves the feedback form for resolved complaints.
type FeedbackHandler struct {
	Feedback *service.FeedbackService
	Log      *zap.Logger
}

func NewFeedbackHandler(feedback *service.FeedbackService, log *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{Feedback: feedback, Log: log}
}

// Form shows the rating form, pre-filled when feedback already exists.
func (h *FeedbackHandler) Form(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("complaint_id"), 10, 64)
	if err != nil {
		return echo.ErrNotFound
	}

	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	form, err := h.Feedback.OpenForm(ctx, middleware.CurrentIdentity(c), id)
	switch {
	case errors.Is(err, service.ErrNotFound):
		return redirectFlash(c, flash.Error, "Complaint not found.", middleware.PathStudentDashboard)
	case errors.Is(err, service.ErrForbidden):
		return redirectFlash(c, flash.Error, "You can only provide feedback for your own complaints.", middleware.PathStudentDashboard)
	case errors.Is(err, service.ErrNotResolved):
		return redirectFlash(c, flash.Error, "You can only provide feedback for resolved complaints.", middleware.PathStudentDashboard)
	case err != nil:
		h.Log.Error("open feedback form", zap.Uint64("complaint_id", id), zap.Error(err))
		return redirectFlash(c, flash.Error, "Could not load the complaint. Please try again.", middleware.PathStudentDashboard)
	}
	return render(c, view.PageFeedback, "Feedback", view.FeedbackPage{FeedbackForm: form, Ratings: ratings})
}

// Submit records or replaces the rating for a complaint.
func (h *FeedbackHandler) Submit(c echo.Context) error {
	in := service.SubmitFeedbackInput{
		ComplaintID: strings.TrimSpace(c.FormValue("complaint_id")),
		Rating:      c.FormValue("rating"),
		Comment:     c.FormValue("comment"),
	}

	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	_, err := h.Feedback.Submit(ctx, middleware.CurrentIdentity(c), in)
	switch {
	case err == nil:
		return redirectFlash(c, flash.Success, "Feedback submitted successfully!", middleware.PathStudentDashboard)
	case errors.Is(err, service.ErrValidation):
		if _, perr := strconv.ParseUint(in.ComplaintID, 10, 64); perr == nil {
			return redirectFlash(c, flash.Error, "Rating is required.", "/feedback/"+in.ComplaintID)
		}
		return redirectFlash(c, flash.Error, "Invalid complaint.", middleware.PathStudentDashboard)
	case errors.Is(err, service.ErrInvalidReference):
		return redirectFlash(c, flash.Error, "Invalid complaint.", middleware.PathStudentDashboard)
	case errors.Is(err, service.ErrNotResolved):
		return redirectFlash(c, flash.Error, "You can only provide feedback for resolved complaints.", middleware.PathStudentDashboard)
	default:
		h.Log.Error("submit feedback", zap.String("complaint_id", in.ComplaintID), zap.Error(err))
		return redirectFlash(c, flash.Error, "Failed to submit feedback.", middleware.PathStudentDashboard)
	}
}
