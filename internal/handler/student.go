package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/hostel-complaint-portal/internal/flash"
	"github.com/iliyamo/hostel-complaint-portal/internal/middleware"
	"github.com/iliyamo/hostel-complaint-portal/internal/model"
	"github.com/iliyamo/hostel-complaint-portal/internal/service"
	"github.com/iliyamo/hostel-complaint-portal/internal/storage"
	"github.com/iliyamo/hostel-complaint-portal/internal/view"
)

// multipartMemory is how much of a multipart form is kept in memory before
// spilling file parts to disk.
const multipartMemory = 8 << 20

// StudentHandler serves the student dashboard, complaint submission and
// stored complaint photos.
type StudentHandler struct {
	Complaints *service.ComplaintService
	Images     storage.Store
	Log        *zap.Logger
}

func NewStudentHandler(complaints *service.ComplaintService, images storage.Store, log *zap.Logger) *StudentHandler {
	return &StudentHandler{Complaints: complaints, Images: images, Log: log}
}

// Dashboard lists the student's complaints next to the submission form.
func (h *StudentHandler) Dashboard(c echo.Context) error {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	complaints, err := h.Complaints.ListForUser(ctx, middleware.CurrentIdentity(c))
	data := view.StudentDashboard{Complaints: complaints, Categories: model.Categories}
	if err != nil {
		h.Log.Error("list own complaints", zap.Error(err))
		return renderError(c, view.PageStudentDashboard, "My complaints", data, "Could not load your complaints. Please try again.")
	}
	return render(c, view.PageStudentDashboard, "My complaints", data)
}

// SubmitComplaint files a complaint from the multipart form.  The optional
// photo is read from the "image" field.
func (h *StudentHandler) SubmitComplaint(c echo.Context) error {
	req := c.Request()
	if err := req.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.Log.Info("unreadable complaint form", zap.Error(err))
		return redirectFlash(c, flash.Error, "Could not read the form. Photos must be smaller than the upload limit.", middleware.PathStudentDashboard)
	}
	if req.MultipartForm != nil {
		defer req.MultipartForm.RemoveAll()
	}

	in := service.SubmitComplaintInput{
		Category:    c.FormValue("category"),
		Description: c.FormValue("description"),
	}
	if fh, err := c.FormFile("image"); err == nil && fh.Filename != "" {
		f, err := fh.Open()
		if err != nil {
			h.Log.Error("open uploaded image", zap.Error(err))
			return redirectFlash(c, flash.Error, "Failed to submit complaint. Please try again.", middleware.PathStudentDashboard)
		}
		defer f.Close()
		in.Image = &service.ImageUpload{Filename: fh.Filename, Content: f}
	}

	ctx, cancel := withTimeout(c, uploadTimeout)
	defer cancel()

	_, err := h.Complaints.Submit(ctx, middleware.CurrentIdentity(c), in)
	switch {
	case err == nil:
		return redirectFlash(c, flash.Success, "Complaint submitted successfully!", middleware.PathStudentDashboard)
	case errors.Is(err, service.ErrValidation):
		return redirectFlash(c, flash.Error, "Category and description are required.", middleware.PathStudentDashboard)
	default:
		h.Log.Error("submit complaint", zap.Error(err))
		return redirectFlash(c, flash.Error, "Failed to submit complaint. Please try again.", middleware.PathStudentDashboard)
	}
}

// Image streams a stored complaint photo.
func (h *StudentHandler) Image(c echo.Context) error {
	name := c.Param("name")
	rc, err := h.Images.Open(c.Request().Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return echo.ErrNotFound
		}
		h.Log.Error("open image", zap.String("image", name), zap.Error(err))
		return echo.ErrInternalServerError
	}
	defer rc.Close()

	c.Response().Header().Set("Cache-Control", "private, max-age=86400")
	c.Response().Header().Set("X-Content-Type-Options", "nosniff")
	return c.Stream(http.StatusOK, storage.ContentType(name), rc)
}
