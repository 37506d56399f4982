package blikifeed

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bliki-feed-api/core/domain"
)

// mockStore is a mock implementation of the WikiStore interface
type mockStore struct {
	mock.Mock
}

func (m *mockStore) RecentChanges(ctx context.Context, q domain.ChangesQuery) ([]domain.Change, error) {
	args := m.Called(ctx, q)
	rows, _ := args.Get(0).([]domain.Change)
	return rows, args.Error(1)
}

func (m *mockStore) PageID(ctx context.Context, t domain.Title) (int64, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) IsMemberOfCategory(ctx context.Context, pageID int64, category string) (bool, error) {
	args := m.Called(ctx, pageID, category)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
