package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// ImageStore mocks storage.Store.  Save drains the reader so callers see
// the same consumption as with a real backend.
type ImageStore struct{ mock.Mock }

func (m *ImageStore) Save(ctx context.Context, name string, r io.Reader) error {
	_, _ = io.Copy(io.Discard, r)
	return m.Called(ctx, name).Error(0)
}

func (m *ImageStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *ImageStore) Delete(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}
