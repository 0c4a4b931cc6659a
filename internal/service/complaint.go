package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/hostel-complaint-portal/internal/model"
	"github.com/iliyamo/hostel-complaint-portal/internal/repository"
	"github.com/iliyamo/hostel-complaint-portal/internal/storage"
	"github.com/iliyamo/hostel-complaint-portal/internal/utils"
)

// ImageUpload is an optional photo attached to a complaint.  Content should
// also implement io.Seeker so that a name collision can be retried.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// SubmitComplaintInput carries the complaint form.
type SubmitComplaintInput struct {
	Category    string `validate:"required"`
	Description string `validate:"required"`
	Image       *ImageUpload
}

// AdminListing is everything the admin dashboard shows: the filtered
// complaints plus the values available for each filter control.
type AdminListing struct {
	Complaints []model.ComplaintView
	Hostels    []string
	Categories []string
	Filter     model.ComplaintFilter
}

// ComplaintService implements submission, listing and status updates.
type ComplaintService struct {
	complaints ComplaintStore
	users      UserStore
	images     storage.Store
	log        *zap.Logger
	validate   *validator.Validate

	// Now is the clock used for created_at stamps and image names.
	Now func() time.Time
	// Fragment returns the random token inserted into an image name that
	// collided with an existing one.
	Fragment func() string
}

func NewComplaintService(complaints ComplaintStore, users UserStore, images storage.Store, log *zap.Logger) *ComplaintService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ComplaintService{
		complaints: complaints,
		users:      users,
		images:     images,
		log:        log,
		validate:   validator.New(),
		Now:        func() time.Time { return time.Now().UTC() },
		Fragment:   func() string { return uuid.NewString()[:8] },
	}
}

// Submit files a Pending complaint owned by who.  An image whose extension
// is not png, jpg, jpeg or gif is dropped without error.  If the row cannot
// be written, the stored image is deleted again.
func (s *ComplaintService) Submit(ctx context.Context, who *model.Identity, in SubmitComplaintInput) (*model.Complaint, error) {
	if err := Authorize(who, ""); err != nil {
		return nil, err
	}
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: category and description are required", ErrValidation)
	}

	now := s.Now()
	var imageName *string
	if in.Image != nil {
		name, err := s.storeImage(ctx, now, in.Image)
		if err != nil {
			return nil, err
		}
		if name != "" {
			imageName = &name
		}
	}

	c := &model.Complaint{
		UserID:      who.UserID,
		Category:    in.Category,
		Description: in.Description,
		ImagePath:   imageName,
		Status:      model.StatusPending,
		CreatedAt:   now,
	}
	if err := s.complaints.Create(ctx, c); err != nil {
		if imageName != nil {
			if derr := s.images.Delete(context.WithoutCancel(ctx), *imageName); derr != nil {
				s.log.Warn("orphaned complaint image", zap.String("image", *imageName), zap.Error(derr))
			}
		}
		return nil, fmt.Errorf("%w: create complaint: %v", ErrPersistence, err)
	}
	return c, nil
}

// storeImage saves img under a timestamp-prefixed name and returns that
// name, or "" when the file is not an allowed image.
func (s *ComplaintService) storeImage(ctx context.Context, now time.Time, img *ImageUpload) (string, error) {
	base := utils.ImageBaseName(img.Filename, s.Fragment())
	if base == "" {
		return "", nil
	}

	name := utils.TimestampedName(now, base)
	err := s.images.Save(ctx, name, img.Content)
	if errors.Is(err, storage.ErrExists) {
		if sk, ok := img.Content.(io.Seeker); ok {
			if _, serr := sk.Seek(0, io.SeekStart); serr != nil {
				return "", fmt.Errorf("%w: rewind image: %v", ErrPersistence, serr)
			}
		}
		name = utils.TimestampedName(now, s.Fragment()+"_"+base)
		err = s.images.Save(ctx, name, img.Content)
	}
	if err != nil {
		return "", fmt.Errorf("%w: save image: %v", ErrPersistence, err)
	}
	return name, nil
}

// ListForUser returns who's complaints, newest first.
func (s *ComplaintService) ListForUser(ctx context.Context, who *model.Identity) ([]model.ComplaintView, error) {
	if err := Authorize(who, ""); err != nil {
		return nil, err
	}
	views, err := s.complaints.ListByUser(ctx, who.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: list complaints: %v", ErrPersistence, err)
	}
	return views, nil
}

// ListForAdmin returns all complaints matching f, newest first, together
// with every hostel and category known to the system.
func (s *ComplaintService) ListForAdmin(ctx context.Context, f model.ComplaintFilter) (*AdminListing, error) {
	f.Status = strings.TrimSpace(f.Status)
	f.Hostel = strings.TrimSpace(f.Hostel)
	f.Category = strings.TrimSpace(f.Category)

	views, err := s.complaints.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%w: list complaints: %v", ErrPersistence, err)
	}
	hostels, err := s.users.DistinctHostels(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list hostels: %v", ErrPersistence, err)
	}
	categories, err := s.complaints.DistinctCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list categories: %v", ErrPersistence, err)
	}
	return &AdminListing{Complaints: views, Hostels: hostels, Categories: categories, Filter: f}, nil
}

// UpdateStatus overwrites the status of complaint id.  Any non-empty status
// of up to model.MaxStatusLen characters is accepted and any transition is
// allowed, including reopening a Resolved complaint.
func (s *ComplaintService) UpdateStatus(ctx context.Context, id uint64, status string) error {
	if id == 0 || status == "" {
		return fmt.Errorf("%w: complaint id and status are required", ErrValidation)
	}
	if utf8.RuneCountInString(status) > model.MaxStatusLen {
		return fmt.Errorf("%w: status longer than %d characters", ErrValidation, model.MaxStatusLen)
	}
	if _, err := s.complaints.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: load complaint: %v", ErrPersistence, err)
	}
	if err := s.complaints.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("%w: update status: %v", ErrPersistence, err)
	}
	return nil
}
