package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/hostel-complaint-portal/internal/flash"
	"github.com/iliyamo/hostel-complaint-portal/internal/middleware"
)

// ErrorHandler turns an oversized request into a redirect with a flash
// message and logs server errors.  Everything else falls through to Echo's
// default handler.
func ErrorHandler(e *echo.Echo, maxUploadBytes int64, log *zap.Logger) echo.HTTPErrorHandler {
	tooLarge := fmt.Sprintf("The upload is too large. Photos must be %d MB or smaller.", maxUploadBytes>>20)
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusRequestEntityTooLarge {
			target := middleware.PathIndex
			if id := middleware.CurrentIdentity(c); id != nil {
				target = dashboardFor(id.IsAdmin())
			}
			flash.Set(c, flash.Error, tooLarge)
			if rerr := c.Redirect(http.StatusFound, target); rerr != nil {
				log.Warn("redirect after oversized request", zap.Error(rerr))
			}
			return
		}
		if he == nil || he.Code >= http.StatusInternalServerError {
			log.Error("request failed", zap.String("path", c.Request().URL.Path), zap.Error(err))
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
