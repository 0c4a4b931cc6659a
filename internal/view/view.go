// Package view renders the portal's server-side HTML pages.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hostel-complaint-portal/internal/flash"
	"github.com/iliyamo/hostel-complaint-portal/internal/model"
	"github.com/iliyamo/hostel-complaint-portal/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names accepted by Renderer.Render.
const (
	PageLogin            = "login"
	PageStudentDashboard = "student_dashboard"
	PageAdminDashboard   = "admin_dashboard"
	PageFeedback         = "feedback"
)

var pages = []string{PageLogin, PageStudentDashboard, PageAdminDashboard, PageFeedback}

// Page is the value every template executes against.
type Page struct {
	Title    string
	Flash    *flash.Message
	Identity *model.Identity
	Data     any
}

// StudentDashboard is the Data of the student dashboard.
type StudentDashboard struct {
	Complaints []model.ComplaintView
	Categories []string
}

// AdminDashboard is the Data of the admin dashboard.
type AdminDashboard struct {
	*service.AdminListing
	Statuses []string
}

// FeedbackPage is the Data of the feedback form.
type FeedbackPage struct {
	*service.FeedbackForm
	Ratings []int
}

var funcs = template.FuncMap{
	"formatTime": func(t time.Time) string { return t.Local().Format("02 Jan 2006 15:04") },
	"statusClass": func(status string) string {
		return "status-" + strings.ReplaceAll(strings.ToLower(status), " ", "-")
	},
	"deref": func(p *int) int {
		if p == nil {
			return 0
		}
		return *p
	},
}

// Renderer implements echo.Renderer over the embedded templates.  Each page
// is parsed together with the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
