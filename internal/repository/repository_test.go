package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hostel-complaint-portal/internal/model"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

var userCols = []string{"id", "name", "email", "password_hash", "hostel", "room_no", "role", "created_at"}

func TestUserRepo_Create(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("normalizes email and sets id", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepo(db)
		u := &model.User{Name: "Asha", Email: " Asha@Example.com ", PasswordHash: "h", Hostel: "North", RoomNo: "12", Role: model.RoleStudent, CreatedAt: now}

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WithArgs("Asha", "asha@example.com", "h", "North", "12", model.RoleStudent, now).
			WillReturnResult(sqlmock.NewResult(7, 1))

		require.NoError(t, repo.Create(context.Background(), u))
		assert.Equal(t, uint64(7), u.ID)
		assert.Equal(t, "asha@example.com", u.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps duplicate key to ErrEmailExists", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepo(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

		err := repo.Create(context.Background(), &model.User{Email: "a@b.c", CreatedAt: now})
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("passes other errors through", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepo(db)
		boom := errors.New("connection reset")

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).WillReturnError(boom)

		err := repo.Create(context.Background(), &model.User{Email: "a@b.c", CreatedAt: now})
		assert.ErrorIs(t, err, boom)
	})
}

func TestUserRepo_GetByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepo(db)
		now := time.Now().UTC()

		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email=?")).
			WithArgs("asha@example.com").
			WillReturnRows(sqlmock.NewRows(userCols).
				AddRow(3, "Asha", "asha@example.com", "hash", "North", "12", "student", now))

		u, err := repo.GetByEmail(context.Background(), "ASHA@example.com")
		require.NoError(t, err)
		assert.Equal(t, uint64(3), u.ID)
		assert.Equal(t, "student", u.Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepo(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email=?")).
			WillReturnRows(sqlmock.NewRows(userCols))

		_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserRepo_ExistsWithRole(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM users WHERE role=?")).
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM users WHERE role=?")).
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	ok, err := repo.ExistsWithRole(context.Background(), "admin")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.ExistsWithRole(context.Background(), "admin")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

var viewCols = []string{"id", "user_id", "category", "description", "image_path", "status", "created_at",
	"name", "email", "hostel", "room_no", "rating"}

func TestComplaintRepo_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewComplaintRepo(db)
	now := time.Now().UTC()
	img := "20260101_120000_photo.jpg"

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO complaints")).
		WithArgs(uint64(4), "Plumbing", "Leaking tap", img, model.StatusPending, now).
		WillReturnResult(sqlmock.NewResult(11, 1))

	c := &model.Complaint{UserID: 4, Category: "Plumbing", Description: "Leaking tap", ImagePath: &img, Status: model.StatusPending, CreatedAt: now}
	require.NoError(t, repo.Create(context.Background(), c))
	assert.Equal(t, uint64(11), c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplaintRepo_GetByID(t *testing.T) {
	t.Run("found without image", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewComplaintRepo(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM complaints WHERE id = ?")).
			WithArgs(uint64(9)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "category", "description", "image_path", "status", "created_at"}).
				AddRow(9, 4, "WiFi", "No signal", nil, "Resolved", time.Now()))

		c, err := repo.GetByID(context.Background(), 9)
		require.NoError(t, err)
		assert.Nil(t, c.ImagePath)
		assert.True(t, c.IsResolved())
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewComplaintRepo(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM complaints WHERE id = ?")).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), 9)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestComplaintRepo_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewComplaintRepo(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.status = ? AND u.hostel = ? AND c.category = ? ORDER BY c.created_at DESC, c.id DESC")).
		WithArgs("Pending", "North", "WiFi").
		WillReturnRows(sqlmock.NewRows(viewCols).
			AddRow(2, 4, "WiFi", "Slow", nil, "Pending", now, "Asha", "asha@example.com", "North", "12", nil).
			AddRow(1, 5, "WiFi", "Down", "x.png", "Pending", now.Add(-time.Hour), "Ravi", "ravi@example.com", "North", "14", 4))

	views, err := repo.List(context.Background(), model.ComplaintFilter{Status: "Pending", Hostel: "North", Category: "WiFi"})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Asha", views[0].OwnerName)
	assert.False(t, views[0].HasFeedback())
	require.NotNil(t, views[1].Rating)
	assert.Equal(t, 4, *views[1].Rating)
	require.NotNil(t, views[1].ImagePath)
	assert.Equal(t, "x.png", *views[1].ImagePath)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildListQuery(t *testing.T) {
	q, args := buildListQuery(model.ComplaintFilter{})
	assert.NotContains(t, q, "WHERE")
	assert.Empty(t, args)

	q, args = buildListQuery(model.ComplaintFilter{Category: "Electrical"})
	assert.Contains(t, q, "WHERE c.category = ?")
	assert.Equal(t, []any{"Electrical"}, args)
}

func TestComplaintRepo_ListByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewComplaintRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.user_id = ? ORDER BY c.created_at DESC")).
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows(viewCols))

	views, err := repo.ListByUser(context.Background(), 4)
	require.NoError(t, err)
	assert.Empty(t, views)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplaintRepo_DistinctCategories(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewComplaintRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT category FROM complaints")).
		WillReturnRows(sqlmock.NewRows([]string{"category"}).AddRow("Electrical").AddRow("WiFi"))

	cats, err := repo.DistinctCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Electrical", "WiFi"}, cats)
}

func TestComplaintRepo_UpdateStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewComplaintRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE complaints SET status = ? WHERE id = ?")).
		WithArgs("In Progress", uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), 3, "In Progress"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackRepo(t *testing.T) {
	t.Run("upsert overwrites rating comment and timestamp", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewFeedbackRepo(db)
		now := time.Now().UTC()
		comment := "Fixed quickly"

		mock.ExpectExec(regexp.QuoteMeta("ON DUPLICATE KEY UPDATE rating=VALUES(rating), comment=VALUES(comment), submitted_at=VALUES(submitted_at)")).
			WithArgs(uint64(8), 5, comment, now).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Upsert(context.Background(), &model.Feedback{ComplaintID: 8, Rating: 5, Comment: &comment, SubmittedAt: now})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewFeedbackRepo(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM feedback WHERE complaint_id=?")).
			WithArgs(uint64(8)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "complaint_id", "rating", "comment", "submitted_at"}))

		_, err := repo.GetByComplaint(context.Background(), 8)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("get found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewFeedbackRepo(db)

		mock.ExpectQuery(regexp.QuoteMeta("FROM feedback WHERE complaint_id=?")).
			WithArgs(uint64(8)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "complaint_id", "rating", "comment", "submitted_at"}).
				AddRow(1, 8, 3, "ok", time.Now()))

		f, err := repo.GetByComplaint(context.Background(), 8)
		require.NoError(t, err)
		assert.Equal(t, 3, f.Rating)
		require.NotNil(t, f.Comment)
		assert.Equal(t, "ok", *f.Comment)
	})
}
