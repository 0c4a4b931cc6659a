package handler

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/hostel-complaint-portal/internal/flash"
	"github.com/iliyamo/hostel-complaint-portal/internal/middleware"
	"github.com/iliyamo/hostel-complaint-portal/internal/service"
	"github.com/iliyamo/hostel-complaint-portal/internal/view"
)

// AuthHandler serves the login page and the account endpoints.
type AuthHandler struct {
	Auth     *service.AuthService
	Sessions *middleware.Sessions
	Log      *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, sessions *middleware.Sessions, log *zap.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Sessions: sessions, Log: log}
}

// Index shows the login and registration forms, or sends a logged-in user
// to their dashboard.
func (h *AuthHandler) Index(c echo.Context) error {
	if id := middleware.CurrentIdentity(c); id != nil {
		return redirect(c, dashboardFor(id.IsAdmin()))
	}
	return render(c, view.PageLogin, "Welcome", nil)
}

// Register: create a student account, then send the user back to log in.
func (h *AuthHandler) Register(c echo.Context) error {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	_, err := h.Auth.Register(ctx, service.RegisterInput{
		Name:     c.FormValue("name"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
		Hostel:   c.FormValue("hostel"),
		RoomNo:   c.FormValue("room_no"),
	})
	switch {
	case err == nil:
		return redirectFlash(c, flash.Success, "Registration successful! Please log in.", middleware.PathIndex)
	case errors.Is(err, service.ErrValidation):
		return redirectFlash(c, flash.Error, "All fields are required.", middleware.PathIndex)
	case errors.Is(err, service.ErrDuplicateEmail):
		return redirectFlash(c, flash.Error, "Email already registered.", middleware.PathIndex)
	default:
		h.Log.Error("register failed", zap.Error(err))
		return redirectFlash(c, flash.Error, "Registration failed. Please try again.", middleware.PathIndex)
	}
}

// Login: verify credentials and start a session.
func (h *AuthHandler) Login(c echo.Context) error {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	id, err := h.Auth.Login(ctx, c.FormValue("email"), c.FormValue("password"))
	switch {
	case errors.Is(err, service.ErrValidation):
		return redirectFlash(c, flash.Error, "Email and password are required.", middleware.PathIndex)
	case errors.Is(err, service.ErrInvalidCredentials):
		return redirectFlash(c, flash.Error, "Invalid email or password.", middleware.PathIndex)
	case err != nil:
		h.Log.Error("login failed", zap.Error(err))
		return redirectFlash(c, flash.Error, "Login failed. Please try again.", middleware.PathIndex)
	}

	if err := h.Sessions.Start(c, id); err != nil {
		h.Log.Error("start session", zap.Uint64("user_id", id.UserID), zap.Error(err))
		return redirectFlash(c, flash.Error, "Login failed. Please try again.", middleware.PathIndex)
	}
	return redirect(c, dashboardFor(id.IsAdmin()))
}

// Logout clears the session whether or not one exists.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.Sessions.End(c)
	return redirectFlash(c, flash.Info, "You have been logged out.", middleware.PathIndex)
}

// CreateAdmin bootstraps the administrator account once.
func (h *AuthHandler) CreateAdmin(c echo.Context) error {
	ctx, cancel := withTimeout(c, requestTimeout)
	defer cancel()

	u, err := h.Auth.BootstrapAdmin(ctx)
	switch {
	case errors.Is(err, service.ErrAlreadyExists):
		return redirectFlash(c, flash.Info, "Admin user already exists.", middleware.PathIndex)
	case err != nil:
		h.Log.Error("create admin failed", zap.Error(err))
		return redirectFlash(c, flash.Error, "Failed to create admin user.", middleware.PathIndex)
	}

	_, password := h.Auth.AdminCredentials()
	h.Log.Info("admin user created", zap.Uint64("user_id", u.ID), zap.String("email", u.Email))
	return redirectFlash(c, flash.Success,
		fmt.Sprintf("Admin user created! Email: %s, Password: %s", u.Email, password), middleware.PathIndex)
}

func dashboardFor(admin bool) string {
	if admin {
		return middleware.PathAdminDashboard
	}
	return middleware.PathStudentDashboard
}
