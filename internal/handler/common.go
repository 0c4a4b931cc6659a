package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hostel-complaint-portal/internal/flash"
	"github.com/iliyamo/hostel-complaint-portal/internal/middleware"
	"github.com/iliyamo/hostel-complaint-portal/internal/view"
)

const (
	// requestTimeout bounds the database work of a single request.
	requestTimeout = 5 * time.Second
	// uploadTimeout also covers storing an image.
	uploadTimeout = 30 * time.Second
)

func withTimeout(c echo.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), d)
}

// redirect sends the browser to path after a form post or a guard check.
func redirect(c echo.Context, path string) error {
	return c.Redirect(http.StatusFound, path)
}

// redirectFlash sets a flash message and redirects.
func redirectFlash(c echo.Context, category, message, path string) error {
	flash.Set(c, category, message)
	return redirect(c, path)
}

// render shows a full page, consuming any pending flash message.
func render(c echo.Context, name, title string, data any) error {
	return c.Render(http.StatusOK, name, view.Page{
		Title:    title,
		Flash:    flash.Pop(c),
		Identity: middleware.CurrentIdentity(c),
		Data:     data,
	})
}

// renderError shows a page with an error message in place of any pending
// flash.
func renderError(c echo.Context, name, title string, data any, message string) error {
	flash.Pop(c)
	return c.Render(http.StatusOK, name, view.Page{
		Title:    title,
		Flash:    &flash.Message{Category: flash.Error, Message: message},
		Identity: middleware.CurrentIdentity(c),
		Data:     data,
	})
}
