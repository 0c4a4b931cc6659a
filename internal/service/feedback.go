package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/hostel-complaint-portal/internal/model"
	"github.com/iliyamo/hostel-complaint-portal/internal/repository"
)

// FeedbackForm is the data needed to render the feedback page.  Existing is
// nil when no feedback has been given yet.
type FeedbackForm struct {
	Complaint *model.Complaint
	Existing  *model.Feedback
}

// SubmitFeedbackInput carries the raw feedback form fields.
type SubmitFeedbackInput struct {
	ComplaintID string `validate:"required"`
	Rating      string `validate:"required"`
	Comment     string
}

// FeedbackService gates and records feedback on resolved complaints.
type FeedbackService struct {
	complaints ComplaintStore
	feedback   FeedbackStore
	validate   *validator.Validate

	// Now is the clock used for submitted_at stamps.
	Now func() time.Time
}

func NewFeedbackService(complaints ComplaintStore, feedback FeedbackStore) *FeedbackService {
	return &FeedbackService{
		complaints: complaints,
		feedback:   feedback,
		validate:   validator.New(),
		Now:        func() time.Time { return time.Now().UTC() },
	}
}

// OpenForm checks that who owns the Resolved complaint complaintID and
// returns it together with any existing feedback.
func (s *FeedbackService) OpenForm(ctx context.Context, who *model.Identity, complaintID uint64) (*FeedbackForm, error) {
	if err := Authorize(who, ""); err != nil {
		return nil, err
	}
	c, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: load complaint: %v", ErrPersistence, err)
	}
	if c.UserID != who.UserID {
		return nil, ErrForbidden
	}
	if !c.IsResolved() {
		return nil, ErrNotResolved
	}

	existing, err := s.feedback.GetByComplaint(ctx, complaintID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: load feedback: %v", ErrPersistence, err)
	}
	return &FeedbackForm{Complaint: c, Existing: existing}, nil
}

// Submit records who's rating for a Resolved complaint they own.  A second
// submission for the same complaint overwrites the first.  The rating is
// stored as given; the form limits it to 1–5.
func (s *FeedbackService) Submit(ctx context.Context, who *model.Identity, in SubmitFeedbackInput) (*model.Feedback, error) {
	if err := Authorize(who, ""); err != nil {
		return nil, err
	}
	in.ComplaintID = strings.TrimSpace(in.ComplaintID)
	in.Rating = strings.TrimSpace(in.Rating)
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: rating is required", ErrValidation)
	}
	complaintID, err := strconv.ParseUint(in.ComplaintID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid complaint id", ErrValidation)
	}
	rating, err := strconv.Atoi(in.Rating)
	if err != nil {
		return nil, fmt.Errorf("%w: rating must be a whole number", ErrValidation)
	}

	c, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidReference
		}
		return nil, fmt.Errorf("%w: load complaint: %v", ErrPersistence, err)
	}
	if c.UserID != who.UserID {
		return nil, ErrInvalidReference
	}
	if !c.IsResolved() {
		return nil, ErrNotResolved
	}

	f := &model.Feedback{ComplaintID: complaintID, Rating: rating, SubmittedAt: s.Now()}
	if comment := strings.TrimSpace(in.Comment); comment != "" {
		f.Comment = &comment
	}
	if err := s.feedback.Upsert(ctx, f); err != nil {
		return nil, fmt.Errorf("%w: save feedback: %v", ErrPersistence, err)
	}
	return f, nil
}
