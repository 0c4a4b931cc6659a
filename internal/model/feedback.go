package model

import "time"

// Feedback is the satisfaction rating attached to a resolved complaint.  At
// most one row exists per complaint.
type Feedback struct {
	ID          uint64    // feedback.id
	ComplaintID uint64    // feedback.complaint_id (unique, references complaints.id)
	Rating      int       // feedback.rating (1–5 offered by the form)
	Comment     *string   // feedback.comment (nullable)
	SubmittedAt time.Time // feedback.submitted_at
}
