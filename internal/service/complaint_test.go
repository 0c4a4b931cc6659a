package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hostel-complaint-portal/internal/mocks"
	"github.com/iliyamo/hostel-complaint-portal/internal/model"
	"github.com/iliyamo/hostel-complaint-portal/internal/repository"
	"github.com/iliyamo/hostel-complaint-portal/internal/storage"
)

var (
	fixedNow = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	student  = &model.Identity{UserID: 7, Name: "Asha", Role: model.RoleStudent}
)

func newComplaints(complaints ComplaintStore, users UserStore, images storage.Store) *ComplaintService {
	s := NewComplaintService(complaints, users, images, nil)
	s.Now = func() time.Time { return fixedNow }
	s.Fragment = func() string { return "a1b2c3d4" }
	return s
}

func TestSubmit_NoImage(t *testing.T) {
	ctx := context.Background()
	complaints := new(mocks.ComplaintStore)
	complaints.On("Create", ctx, mock.MatchedBy(func(c *model.Complaint) bool {
		return c.UserID == 7 && c.Category == "Electrical" && c.Status == model.StatusPending &&
			c.ImagePath == nil && c.CreatedAt.Equal(fixedNow)
	})).Return(nil)

	c, err := newComplaints(complaints, nil, new(mocks.ImageStore)).Submit(ctx, student, SubmitComplaintInput{
		Category: "Electrical", Description: "Fan broken",
	})
	require.NoError(t, err)
	assert.Equal(t, "Fan broken", c.Description)
	complaints.AssertExpectations(t)
}

func TestSubmit_EmptyDescriptionCreatesNothing(t *testing.T) {
	complaints := new(mocks.ComplaintStore)
	images := new(mocks.ImageStore)

	_, err := newComplaints(complaints, nil, images).Submit(context.Background(), student, SubmitComplaintInput{
		Category: "Electrical", Description: "  ",
		Image: &ImageUpload{Filename: "photo.jpg", Content: bytes.NewReader([]byte("x"))},
	})
	assert.ErrorIs(t, err, ErrValidation)
	complaints.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	images.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSubmit_RequiresIdentity(t *testing.T) {
	_, err := newComplaints(new(mocks.ComplaintStore), nil, nil).Submit(context.Background(), nil, SubmitComplaintInput{
		Category: "Electrical", Description: "Fan broken",
	})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestSubmit_DisallowedImageIsDropped(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	images, err := storage.NewLocalStore(dir)
	require.NoError(t, err)
	complaints := new(mocks.ComplaintStore)
	complaints.On("Create", ctx, mock.MatchedBy(func(c *model.Complaint) bool { return c.ImagePath == nil })).Return(nil)

	_, err = newComplaints(complaints, nil, images).Submit(ctx, student, SubmitComplaintInput{
		Category: "Plumbing", Description: "Leak",
		Image: &ImageUpload{Filename: "x.exe", Content: bytes.NewReader([]byte("MZ"))},
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	complaints.AssertExpectations(t)
}

func TestSubmit_ImageNamesNeverCollide(t *testing.T) {
	ctx := context.Background()
	images, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	var names []string
	complaints := new(mocks.ComplaintStore)
	complaints.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		names = append(names, *args.Get(1).(*model.Complaint).ImagePath)
	}).Return(nil)
	svc := newComplaints(complaints, nil, images)

	for _, body := range []string{"first", "second"} {
		_, err := svc.Submit(ctx, student, SubmitComplaintInput{
			Category: "Electrical", Description: "Fan broken",
			Image: &ImageUpload{Filename: "photo.jpg", Content: bytes.NewReader([]byte(body))},
		})
		require.NoError(t, err)
	}

	require.Len(t, names, 2)
	assert.Equal(t, "20240309_140507_photo.jpg", names[0])
	assert.Equal(t, "20240309_140507_a1b2c3d4_photo.jpg", names[1])

	for i, want := range []string{"first", "second"} {
		rc, err := images.Open(ctx, names[i])
		require.NoError(t, err)
		var buf bytes.Buffer
		_, err = buf.ReadFrom(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, want, buf.String())
	}
}

func TestSubmit_SanitizesImageName(t *testing.T) {
	ctx := context.Background()
	images := new(mocks.ImageStore)
	images.On("Save", ctx, "20240309_140507_my_room.PNG").Return(nil)
	complaints := new(mocks.ComplaintStore)
	complaints.On("Create", ctx, mock.Anything).Return(nil)

	c, err := newComplaints(complaints, nil, images).Submit(ctx, student, SubmitComplaintInput{
		Category: "Electrical", Description: "Fan broken",
		Image: &ImageUpload{Filename: "../../etc/my room.PNG", Content: bytes.NewReader([]byte("png"))},
	})
	require.NoError(t, err)
	require.NotNil(t, c.ImagePath)
	assert.Equal(t, "20240309_140507_my_room.PNG", *c.ImagePath)
	images.AssertExpectations(t)
}

func TestSubmit_NonASCIIImageNames(t *testing.T) {
	ctx := context.Background()
	images, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	cases := map[string]string{
		"фото.jpg": "20240309_140507_a1b2c3d4.jpg",
		"写真.png":   "20240309_140507_a1b2c3d4.png",
		"café.jpg": "20240309_140507_cafe.jpg",
	}
	for filename, want := range cases {
		complaints := new(mocks.ComplaintStore)
		complaints.On("Create", ctx, mock.Anything).Return(nil)

		c, err := newComplaints(complaints, nil, images).Submit(ctx, student, SubmitComplaintInput{
			Category: "Electrical", Description: "Fan broken",
			Image: &ImageUpload{Filename: filename, Content: bytes.NewReader([]byte(filename))},
		})
		require.NoError(t, err, filename)
		require.NotNil(t, c.ImagePath, filename)
		assert.Equal(t, want, *c.ImagePath, filename)

		rc, err := images.Open(ctx, want)
		require.NoError(t, err, filename)
		require.NoError(t, rc.Close())
	}
}

func TestSubmit_DeletesImageWhenCreateFails(t *testing.T) {
	ctx := context.Background()
	images := new(mocks.ImageStore)
	images.On("Save", ctx, "20240309_140507_photo.jpg").Return(nil)
	images.On("Delete", mock.Anything, "20240309_140507_photo.jpg").Return(nil)
	complaints := new(mocks.ComplaintStore)
	complaints.On("Create", ctx, mock.Anything).Return(errors.New("deadlock"))

	_, err := newComplaints(complaints, nil, images).Submit(ctx, student, SubmitComplaintInput{
		Category: "Electrical", Description: "Fan broken",
		Image: &ImageUpload{Filename: "photo.jpg", Content: bytes.NewReader([]byte("jpg"))},
	})
	assert.ErrorIs(t, err, ErrPersistence)
	images.AssertExpectations(t)
}

func TestSubmit_ImageSaveFailure(t *testing.T) {
	ctx := context.Background()
	images := new(mocks.ImageStore)
	images.On("Save", ctx, mock.Anything).Return(errors.New("disk full"))
	complaints := new(mocks.ComplaintStore)

	_, err := newComplaints(complaints, nil, images).Submit(ctx, student, SubmitComplaintInput{
		Category: "Electrical", Description: "Fan broken",
		Image: &ImageUpload{Filename: "photo.jpg", Content: bytes.NewReader([]byte("jpg"))},
	})
	assert.ErrorIs(t, err, ErrPersistence)
	complaints.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListForUser(t *testing.T) {
	ctx := context.Background()
	views := []model.ComplaintView{{Complaint: model.Complaint{ID: 2, UserID: 7}}, {Complaint: model.Complaint{ID: 1, UserID: 7}}}
	complaints := new(mocks.ComplaintStore)
	complaints.On("ListByUser", ctx, uint64(7)).Return(views, nil)

	got, err := newComplaints(complaints, nil, nil).ListForUser(ctx, student)
	require.NoError(t, err)
	assert.Equal(t, views, got)
}

func TestListForAdmin(t *testing.T) {
	ctx := context.Background()
	f := model.ComplaintFilter{Status: "Pending", Hostel: "H1"}
	complaints := new(mocks.ComplaintStore)
	complaints.On("List", ctx, f).Return([]model.ComplaintView{{Complaint: model.Complaint{ID: 3}}}, nil)
	complaints.On("DistinctCategories", ctx).Return([]string{"Electrical", "Plumbing"}, nil)
	users := new(mocks.UserStore)
	users.On("DistinctHostels", ctx).Return([]string{"Admin Block", "H1"}, nil)

	got, err := newComplaints(complaints, users, nil).ListForAdmin(ctx, model.ComplaintFilter{Status: " Pending ", Hostel: "H1"})
	require.NoError(t, err)
	assert.Len(t, got.Complaints, 1)
	assert.Equal(t, []string{"Admin Block", "H1"}, got.Hostels)
	assert.Equal(t, []string{"Electrical", "Plumbing"}, got.Categories)
	assert.Equal(t, f, got.Filter)
}

func TestUpdateStatus_AnyTransition(t *testing.T) {
	ctx := context.Background()
	complaints := new(mocks.ComplaintStore)
	complaints.On("GetByID", ctx, uint64(5)).Return(&model.Complaint{ID: 5, Status: model.StatusResolved}, nil)
	complaints.On("UpdateStatus", ctx, uint64(5), mock.Anything).Return(nil)
	svc := newComplaints(complaints, nil, nil)

	statuses := []string{
		model.StatusPending, model.StatusResolved, model.StatusInProgress,
		"Escalated to facilities management",
		strings.Repeat("é", model.MaxStatusLen),
	}
	for _, status := range statuses {
		assert.NoError(t, svc.UpdateStatus(ctx, 5, status), status)
	}
	complaints.AssertNumberOfCalls(t, "UpdateStatus", len(statuses))
}

func TestUpdateStatus_Errors(t *testing.T) {
	ctx := context.Background()
	complaints := new(mocks.ComplaintStore)
	complaints.On("GetByID", ctx, uint64(404)).Return(nil, repository.ErrNotFound)
	svc := newComplaints(complaints, nil, nil)

	assert.ErrorIs(t, svc.UpdateStatus(ctx, 5, ""), ErrValidation)
	assert.ErrorIs(t, svc.UpdateStatus(ctx, 0, "Pending"), ErrValidation)
	assert.ErrorIs(t, svc.UpdateStatus(ctx, 5, strings.Repeat("x", model.MaxStatusLen+1)), ErrValidation)
	assert.ErrorIs(t, svc.UpdateStatus(ctx, 404, "Pending"), ErrNotFound)
	complaints.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
