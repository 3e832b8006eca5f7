package mocks

import (
	"context"

	"ambientefest/internal/model"
	"ambientefest/internal/notify"
	"github.com/stretchr/testify/mock"
)

type MockNotifier struct {
	mock.Mock
}

var _ notify.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) ContactReceived(ctx context.Context, msg model.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
