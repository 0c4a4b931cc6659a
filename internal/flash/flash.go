// Package flash carries a single one-shot message from a redirecting handler
// to the next rendered page, in a short-lived cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
)

const cookieName = "flash"

// Message categories understood by the layout template.
const (
	Success = "success"
	Error   = "error"
	Info    = "info"
)

// Message is a flash message and its category.
type Message struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Set stores a message for the next request.  A later Set in the same
// response replaces an earlier one.
func Set(c echo.Context, category, message string) {
	raw, err := json.Marshal(Message{Category: category, Message: message})
	if err != nil {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the pending message, if any, and clears it.  Malformed
// cookies are cleared and ignored.
func Pop(c echo.Context) *Message {
	ck, err := c.Cookie(cookieName)
	if err != nil || ck.Value == "" {
		return nil
	}
	c.SetCookie(&http.Cookie{Name: cookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})

	raw, err := base64.RawURLEncoding.DecodeString(ck.Value)
	if err != nil {
		return nil
	}
	var m Message
	if err := json.Unmarshal(raw, &m); err != nil || m.Message == "" {
		return nil
	}
	return &m
}
