package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hostel-complaint-portal/internal/model"
)

// FeedbackRepo persists feedback rows.  The unique key on complaint_id makes
// Upsert a single atomic statement.
type FeedbackRepo struct{ DB *sql.DB }

func NewFeedbackRepo(db *sql.DB) *FeedbackRepo { return &FeedbackRepo{DB: db} }

// GetByComplaint returns the feedback for complaintID or ErrNotFound.
func (r *FeedbackRepo) GetByComplaint(ctx context.Context, complaintID uint64) (*model.Feedback, error) {
	var (
		f       model.Feedback
		comment sql.NullString
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, complaint_id, rating, comment, submitted_at FROM feedback WHERE complaint_id=? LIMIT 1",
		complaintID).Scan(&f.ID, &f.ComplaintID, &f.Rating, &comment, &f.SubmittedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	f.Comment = stringPtr(comment)
	return &f, nil
}

// Upsert inserts f or, when feedback already exists for f.ComplaintID,
// overwrites its rating, comment and submission time.
func (r *FeedbackRepo) Upsert(ctx context.Context, f *model.Feedback) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO feedback (complaint_id, rating, comment, submitted_at) VALUES (?,?,?,?)
ON DUPLICATE KEY UPDATE rating=VALUES(rating), comment=VALUES(comment), submitted_at=VALUES(submitted_at)`,
		f.ComplaintID, f.Rating, nullString(f.Comment), f.SubmittedAt)
	return err
}
