package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/hostel-complaint-portal/internal/model"
)

type ComplaintStore struct{ mock.Mock }

func (m *ComplaintStore) Create(ctx context.Context, c *model.Complaint) error {
	return m.Called(ctx, c).Error(0)
}

func (m *ComplaintStore) GetByID(ctx context.Context, id uint64) (*model.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Complaint), args.Error(1)
}

func (m *ComplaintStore) ListByUser(ctx context.Context, userID uint64) ([]model.ComplaintView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ComplaintView), args.Error(1)
}

func (m *ComplaintStore) List(ctx context.Context, f model.ComplaintFilter) ([]model.ComplaintView, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ComplaintView), args.Error(1)
}

func (m *ComplaintStore) DistinctCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *ComplaintStore) UpdateStatus(ctx context.Context, id uint64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}
