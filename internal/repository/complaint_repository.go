// This file holds the Complaint queries.  Listings return ComplaintView rows
// so that dashboards can show the owner and feedback rating without issuing
// one query per complaint.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hostel-complaint-portal/internal/model"
)

// ComplaintRepo encapsulates all database queries related to complaints.
type ComplaintRepo struct {
	db *sql.DB
}

// NewComplaintRepo constructs a ComplaintRepo with the provided DB handle.
func NewComplaintRepo(db *sql.DB) *ComplaintRepo {
	return &ComplaintRepo{db: db}
}

const complaintViewSelect = `SELECT c.id, c.user_id, c.category, c.description, c.image_path, c.status, c.created_at,
       u.name, u.email, u.hostel, u.room_no, f.rating
FROM complaints c
JOIN users u ON u.id = c.user_id
LEFT JOIN feedback f ON f.complaint_id = c.id`

const newestFirst = " ORDER BY c.created_at DESC, c.id DESC"

// Create inserts a new complaint and populates its ID.
func (r *ComplaintRepo) Create(ctx context.Context, c *model.Complaint) error {
	const q = "INSERT INTO complaints (user_id, category, description, image_path, status, created_at) VALUES (?,?,?,?,?,?)"
	res, err := r.db.ExecContext(ctx, q, c.UserID, c.Category, c.Description, nullString(c.ImagePath), c.Status, c.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// GetByID fetches a complaint by id.  It returns ErrNotFound if no row
// matches.
func (r *ComplaintRepo) GetByID(ctx context.Context, id uint64) (*model.Complaint, error) {
	const q = "SELECT id, user_id, category, description, image_path, status, created_at FROM complaints WHERE id = ?"
	var (
		c   model.Complaint
		img sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.UserID, &c.Category, &c.Description, &img, &c.Status, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	c.ImagePath = stringPtr(img)
	return &c, nil
}

// ListByUser returns the complaints owned by userID, newest first.
func (r *ComplaintRepo) ListByUser(ctx context.Context, userID uint64) ([]model.ComplaintView, error) {
	return r.queryViews(ctx, complaintViewSelect+" WHERE c.user_id = ?"+newestFirst, userID)
}

// List returns every complaint matching f, newest first.  Each non-empty
// filter field is an exact match; Hostel matches the owner's hostel.
func (r *ComplaintRepo) List(ctx context.Context, f model.ComplaintFilter) ([]model.ComplaintView, error) {
	q, args := buildListQuery(f)
	return r.queryViews(ctx, q, args...)
}

func buildListQuery(f model.ComplaintFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.Status != "" {
		conds = append(conds, "c.status = ?")
		args = append(args, f.Status)
	}
	if f.Hostel != "" {
		conds = append(conds, "u.hostel = ?")
		args = append(args, f.Hostel)
	}
	if f.Category != "" {
		conds = append(conds, "c.category = ?")
		args = append(args, f.Category)
	}
	q := complaintViewSelect
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	return q + newestFirst, args
}

// DistinctCategories returns every category used by any complaint, sorted.
func (r *ComplaintRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	return queryStrings(ctx, r.db, "SELECT DISTINCT category FROM complaints ORDER BY category")
}

// UpdateStatus overwrites the status of complaint id.  Callers are expected
// to have checked existence first; a missing row is not reported because
// MySQL counts unchanged rows as unaffected.
func (r *ComplaintRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE complaints SET status = ? WHERE id = ?", status, id)
	return err
}

// queryViews runs q and scans every row into a ComplaintView.
func (r *ComplaintRepo) queryViews(ctx context.Context, q string, args ...any) ([]model.ComplaintView, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ComplaintView{}
	for rows.Next() {
		var (
			v      model.ComplaintView
			img    sql.NullString
			rating sql.NullInt64
		)
		if err := rows.Scan(&v.ID, &v.UserID, &v.Category, &v.Description, &img, &v.Status, &v.CreatedAt,
			&v.OwnerName, &v.OwnerEmail, &v.OwnerHostel, &v.OwnerRoomNo, &rating); err != nil {
			return nil, err
		}
		v.ImagePath = stringPtr(img)
		if rating.Valid {
			n := int(rating.Int64)
			v.Rating = &n
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
