package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/hostel-complaint-portal/internal/model"
)

type FeedbackStore struct{ mock.Mock }

func (m *FeedbackStore) GetByComplaint(ctx context.Context, complaintID uint64) (*model.Feedback, error) {
	args := m.Called(ctx, complaintID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Feedback), args.Error(1)
}

func (m *FeedbackStore) Upsert(ctx context.Context, f *model.Feedback) error {
	return m.Called(ctx, f).Error(0)
}
