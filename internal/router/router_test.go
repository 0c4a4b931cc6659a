package router

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/hostel-complaint-portal/internal/flash"
	"github.com/iliyamo/hostel-complaint-portal/internal/handler"
	"github.com/iliyamo/hostel-complaint-portal/internal/middleware"
	"github.com/iliyamo/hostel-complaint-portal/internal/mocks"
	"github.com/iliyamo/hostel-complaint-portal/internal/model"
	"github.com/iliyamo/hostel-complaint-portal/internal/service"
	"github.com/iliyamo/hostel-complaint-portal/internal/storage"
	"github.com/iliyamo/hostel-complaint-portal/internal/utils"
	"github.com/iliyamo/hostel-complaint-portal/internal/view"
)

const (
	secret       = "router-test-secret"
	maxBodyBytes = 1 << 20
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	log := zap.NewNop()
	users := new(mocks.UserStore)
	complaints := new(mocks.ComplaintStore)
	feedback := new(mocks.FeedbackStore)
	images, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	sessions := middleware.NewSessions(secret, time.Hour, false, nil, log)
	complaintSvc := service.NewComplaintService(complaints, users, images, log)

	renderer, err := view.NewRenderer()
	require.NoError(t, err)
	e := echo.New()
	e.Renderer = renderer
	e.HTTPErrorHandler = handler.ErrorHandler(e, maxBodyBytes, log)
	UseGlobal(e, sessions, maxBodyBytes, log)

	RegisterRoutes(e, okPinger{})
	RegisterAuth(e, handler.NewAuthHandler(service.NewAuthService(users, 4, service.DefaultAdminAccount("a@b.c", "x")), sessions, log),
		func(next echo.HandlerFunc) echo.HandlerFunc { return next })
	RegisterStudent(e, handler.NewStudentHandler(complaintSvc, images, log))
	RegisterAdmin(e, handler.NewAdminHandler(complaintSvc, log))
	RegisterFeedback(e, handler.NewFeedbackHandler(service.NewFeedbackService(complaints, feedback), log))
	return e
}

func get(t *testing.T, e *echo.Echo, method, path string, who *model.Identity) *httptest.ResponseRecorder {
	t.Helper()
	return send(t, e, httptest.NewRequest(method, path, nil), who)
}

func send(t *testing.T, e *echo.Echo, req *http.Request, who *model.Identity) *httptest.ResponseRecorder {
	t.Helper()
	if who != nil {
		tok, err := utils.NewSessionToken(secret, who.UserID, who.Name, who.Role, time.Hour)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: tok.Token})
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_Guards(t *testing.T) {
	e := newServer(t)
	student := &model.Identity{UserID: 7, Name: "Asha", Role: model.RoleStudent}
	admin := &model.Identity{UserID: 1, Name: "Admin", Role: model.RoleAdmin}

	cases := []struct {
		method, path string
		who          *model.Identity
		location     string
	}{
		{http.MethodGet, "/admin_dashboard", student, "/student_dashboard"},
		{http.MethodPost, "/update_status", student, "/student_dashboard"},
		{http.MethodGet, "/admin_dashboard", nil, "/"},
		{http.MethodGet, "/student_dashboard", nil, "/"},
		{http.MethodGet, "/student_dashboard", admin, "/admin_dashboard"},
		{http.MethodPost, "/submit_complaint", admin, "/admin_dashboard"},
		{http.MethodGet, "/feedback/1", nil, "/"},
		{http.MethodPost, "/submit_feedback", nil, "/"},
		{http.MethodGet, "/uploads/a.png", nil, "/"},
	}
	for _, tc := range cases {
		rec := get(t, e, tc.method, tc.path, tc.who)
		assert.Equal(t, http.StatusFound, rec.Code, "%s %s", tc.method, tc.path)
		assert.Equal(t, tc.location, rec.Header().Get(echo.HeaderLocation), "%s %s", tc.method, tc.path)
	}
}

func TestRoutes_Public(t *testing.T) {
	e := newServer(t)

	rec := get(t, e, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, e, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, e, http.MethodGet, "/logout", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
}

func TestUseGlobal_OversizedUploadReturnsToDashboard(t *testing.T) {
	e := newServer(t)
	student := &model.Identity{UserID: 7, Name: "Asha", Role: model.RoleStudent}
	admin := &model.Identity{UserID: 1, Name: "Admin", Role: model.RoleAdmin}

	cases := []struct {
		path     string
		who      *model.Identity
		location string
	}{
		{"/submit_complaint", student, "/student_dashboard"},
		{"/update_status", admin, "/admin_dashboard"},
		{"/login", nil, "/"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, tc.path, bytes.NewReader(make([]byte, maxBodyBytes+1)))
		req.Header.Set(echo.HeaderContentType, echo.MIMEOctetStream)

		rec := send(t, e, req, tc.who)
		assert.Equal(t, http.StatusFound, rec.Code, tc.path)
		assert.Equal(t, tc.location, rec.Header().Get(echo.HeaderLocation), tc.path)

		next := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, ck := range rec.Result().Cookies() {
			next.AddCookie(ck)
		}
		msg := flash.Pop(echo.New().NewContext(next, httptest.NewRecorder()))
		require.NotNil(t, msg, tc.path)
		assert.Equal(t, flash.Error, msg.Category)
		assert.Equal(t, "The upload is too large. Photos must be 1 MB or smaller.", msg.Message)
	}
}
