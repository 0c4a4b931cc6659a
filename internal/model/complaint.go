package model

import "time"

// Canonical complaint statuses.  The status column accepts any string; these
// are the values the dashboards offer.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
)

// MaxStatusLen is the width, in characters, of the status column.
const MaxStatusLen = 255

// Statuses lists the canonical statuses in workflow order.
var Statuses = []string{StatusPending, StatusInProgress, StatusResolved}

// Categories are the complaint categories offered on the submission form.
// Stored complaints may carry any category string.
var Categories = []string{"Electrical", "Plumbing", "Furniture", "Cleanliness", "Internet", "Mess", "Security", "Other"}

// Complaint mirrors a row of the `complaints` table.
type Complaint struct {
	ID          uint64    // complaints.id
	UserID      uint64    // complaints.user_id (references users.id)
	Category    string    // complaints.category
	Description string    // complaints.description
	ImagePath   *string   // complaints.image_path (stored name, nullable)
	Status      string    // complaints.status
	CreatedAt   time.Time // complaints.created_at
}

// IsResolved reports whether feedback may be given for the complaint.
func (c Complaint) IsResolved() bool { return c.Status == StatusResolved }

// ComplaintView is a complaint joined with its owner and, when present, the
// rating of its feedback.  Both dashboards render lists of these.
type ComplaintView struct {
	Complaint
	OwnerName   string
	OwnerEmail  string
	OwnerHostel string
	OwnerRoomNo string
	Rating      *int
}

// HasFeedback reports whether a feedback row exists for the complaint.
func (v ComplaintView) HasFeedback() bool { return v.Rating != nil }

// ComplaintFilter narrows the admin listing.  Empty fields do not filter.
type ComplaintFilter struct {
	Status   string
	Hostel   string
	Category string
}
