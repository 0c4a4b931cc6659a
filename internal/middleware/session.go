package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/hostel-complaint-portal/internal/model"
	"github.com/iliyamo/hostel-complaint-portal/internal/utils"
)

// SessionCookie is the name of the cookie that carries the session token.
const SessionCookie = "session"

// Sessions issues, reads and ends cookie sessions.  The cookie holds a
// signed token; nothing is stored server side except revoked token ids.
type Sessions struct {
	secret   string
	ttl      time.Duration
	secure   bool
	denylist Denylist
	log      *zap.Logger
}

// NewSessions returns a session manager.  denylist may be nil, in which
// case logout only clears the cookie.
func NewSessions(secret string, ttl time.Duration, secure bool, denylist Denylist, log *zap.Logger) *Sessions {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sessions{secret: secret, ttl: ttl, secure: secure, denylist: denylist, log: log}
}

// Load parses the session cookie on every request and attaches the
// identity it names.  Invalid, expired or revoked cookies are cleared and
// the request continues anonymously.
func (s *Sessions) Load() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(SessionCookie)
			if err != nil || ck.Value == "" {
				return next(c)
			}
			claims, err := utils.ParseSessionToken(s.secret, ck.Value)
			if err != nil {
				s.clear(c)
				return next(c)
			}
			if s.denylist != nil {
				revoked, err := s.denylist.IsRevoked(c.Request().Context(), claims.ID)
				if err != nil {
					s.log.Warn("session denylist unavailable", zap.Error(err))
				}
				if revoked {
					s.clear(c)
					return next(c)
				}
			}
			uid, _ := claims.UserID()
			setIdentity(c, &model.Identity{UserID: uid, Name: claims.Name, Role: claims.Role})
			return next(c)
		}
	}
}

// Start issues a session cookie for id.
func (s *Sessions) Start(c echo.Context, id *model.Identity) error {
	tok, err := utils.NewSessionToken(s.secret, id.UserID, id.Name, id.Role, s.ttl)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    tok.Token,
		Path:     "/",
		Expires:  tok.Exp,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	setIdentity(c, id)
	return nil
}

// End clears the session cookie and, when a denylist is configured,
// revokes the token for the rest of its lifetime.  It never fails.
func (s *Sessions) End(c echo.Context) {
	defer s.clear(c)
	if s.denylist == nil {
		return
	}
	ck, err := c.Cookie(SessionCookie)
	if err != nil || ck.Value == "" {
		return
	}
	claims, err := utils.ParseSessionToken(s.secret, ck.Value)
	if err != nil {
		return
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.denylist.Revoke(c.Request().Context(), claims.ID, ttl); err != nil {
		s.log.Warn("revoke session", zap.String("jti", claims.ID), zap.Error(err))
	}
}

func (s *Sessions) clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	setIdentity(c, nil)
}
