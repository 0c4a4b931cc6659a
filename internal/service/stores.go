package service

import (
	"context"

	"github.com/iliyamo/hostel-complaint-portal/internal/model"
)

// UserStore is the subset of repository.UserRepo used by the services.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsWithRole(ctx context.Context, role string) (bool, error)
	DistinctHostels(ctx context.Context) ([]string, error)
}

// ComplaintStore is the subset of repository.ComplaintRepo used by the
// services.
type ComplaintStore interface {
	Create(ctx context.Context, c *model.Complaint) error
	GetByID(ctx context.Context, id uint64) (*model.Complaint, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.ComplaintView, error)
	List(ctx context.Context, f model.ComplaintFilter) ([]model.ComplaintView, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	UpdateStatus(ctx context.Context, id uint64, status string) error
}

// FeedbackStore is the subset of repository.FeedbackRepo used by the
// services.
type FeedbackStore interface {
	GetByComplaint(ctx context.Context, complaintID uint64) (*model.Feedback, error)
	Upsert(ctx context.Context, f *model.Feedback) error
}
