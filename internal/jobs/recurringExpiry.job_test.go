package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"skimmer/internal/models"
	"skimmer/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockRecurringServiceRepository struct {
	mock.Mock
}

func (m *MockRecurringServiceRepository) List(ctx context.Context, filters models.RecurringServiceFilters) ([]*models.RecurringService, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RecurringService), args.Error(1)
}

func (m *MockRecurringServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.RecurringService, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RecurringService), args.Error(1)
}

func (m *MockRecurringServiceRepository) Create(ctx context.Context, recurring *models.RecurringService) error {
	args := m.Called(ctx, recurring)
	return args.Error(0)
}

func (m *MockRecurringServiceRepository) Update(ctx context.Context, id uuid.UUID, patch models.RecurringServicePatch) (*models.RecurringService, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RecurringService), args.Error(1)
}

func (m *MockRecurringServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecurringServiceRepository) DeleteByCustomer(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) error {
	args := m.Called(ctx, tx, customerID)
	return args.Error(0)
}

func (m *MockRecurringServiceRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.RecurringService, error) {
	args := m.Called(ctx, id, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RecurringService), args.Error(1)
}

func (m *MockRecurringServiceRepository) DeactivateExpired(ctx context.Context, asOf time.Time) (int64, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(int64), args.Error(1)
}

func TestRecurringExpiryJob_Execute(t *testing.T) {
	repo := &MockRecurringServiceRepository{}
	repo.On("DeactivateExpired", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(int64(3), nil)

	job := NewRecurringExpiryJob(repo, services.Nightly)

	err := job.Execute(context.Background())

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestRecurringExpiryJob_Execute_Error(t *testing.T) {
	repo := &MockRecurringServiceRepository{}
	repo.On("DeactivateExpired", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(int64(0), errors.New("database unavailable"))

	job := NewRecurringExpiryJob(repo, services.Nightly)

	err := job.Execute(context.Background())

	assert.Error(t, err)
}

func TestRecurringExpiryJob_Metadata(t *testing.T) {
	job := NewRecurringExpiryJob(&MockRecurringServiceRepository{}, services.Nightly)

	assert.Equal(t, "RecurringServiceExpiry", job.Name())
	assert.Equal(t, services.Nightly, job.Schedule())
}
