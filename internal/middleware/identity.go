package middleware

// identity.go holds the request-scoped identity helpers shared by the
// session, guard and rate limit middleware.

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hostel-complaint-portal/internal/model"
)

const identityKey = "identity"

// CurrentIdentity returns the authenticated user for this request, or nil
// when the request carries no valid session.
func CurrentIdentity(c echo.Context) *model.Identity {
	id, _ := c.Get(identityKey).(*model.Identity)
	return id
}

func setIdentity(c echo.Context, id *model.Identity) {
	c.Set(identityKey, id)
}

// userID returns the current user id as a string, or "guest" when no user
// is authenticated.
func userID(c echo.Context) string {
	if id := CurrentIdentity(c); id != nil {
		return strconv.FormatUint(id.UserID, 10)
	}
	return "guest"
}
