package serviceController

import (
	"context"
	"errors"
	"testing"
	"time"

	"skimmer/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) List(ctx context.Context, filters models.ServiceFilters) ([]*models.Service, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Service), args.Error(1)
}

func (m *MockServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockServiceRepository) Create(ctx context.Context, service *models.Service) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *MockServiceRepository) Update(ctx context.Context, id uuid.UUID, patch models.ServicePatch) (*models.Service, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockServiceRepository) DeleteByCustomer(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) error {
	args := m.Called(ctx, tx, customerID)
	return args.Error(0)
}

func (m *MockServiceRepository) MarkInProgress(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockServiceRepository) MarkComplete(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockServiceRepository) MarkSkipped(ctx context.Context, id uuid.UUID, reason string) (*models.Service, error) {
	args := m.Called(ctx, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockServiceRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]*models.Service, error) {
	args := m.Called(ctx, customerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Service), args.Error(1)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) List(ctx context.Context, filters models.CustomerFilters) ([]*models.Customer, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, id uuid.UUID, patch models.CustomerPatch) (*models.Customer, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) ClearCache(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestController(
	serviceRepo *MockServiceRepository,
	customerRepo *MockCustomerRepository,
) *ServiceController {
	return &ServiceController{
		serviceRepo:  serviceRepo,
		customerRepo: customerRepo,
	}
}

func TestCreate_Validation(t *testing.T) {
	customerID := uuid.New()

	tests := []struct {
		name     string
		request  ServiceCreateRequest
		errorMsg string
	}{
		{
			name:     "missing everything",
			request:  ServiceCreateRequest{},
			errorMsg: "customer_id, service_type, and scheduled_date are required",
		},
		{
			name: "bad service type",
			request: ServiceCreateRequest{
				CustomerID:    &customerID,
				ServiceType:   "inspection",
				ScheduledDate: "2025-03-10",
			},
			errorMsg: "service_type must be one of: regular, repair, one_off",
		},
		{
			name: "bad status",
			request: ServiceCreateRequest{
				CustomerID:    &customerID,
				ServiceType:   models.ServiceTypeRegular,
				ScheduledDate: "2025-03-10",
				Status:        stringPtr("paused"),
			},
			errorMsg: "status must be one of: scheduled, in_progress, completed, skipped",
		},
		{
			name: "bad date format",
			request: ServiceCreateRequest{
				CustomerID:    &customerID,
				ServiceType:   models.ServiceTypeRegular,
				ScheduledDate: "03/10/2025",
			},
			errorMsg: "scheduled_date must be a date in YYYY-MM-DD format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := newTestController(&MockServiceRepository{}, &MockCustomerRepository{})

			result, err := controller.Create(context.Background(), &tt.request)

			assert.Nil(t, result)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestCreate_Success(t *testing.T) {
	customerID := uuid.New()
	customerRepo := &MockCustomerRepository{}
	customerRepo.On("Exists", mock.Anything, customerID).Return(true, nil)

	serviceRepo := &MockServiceRepository{}
	serviceRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Service")).Return(nil)

	controller := newTestController(serviceRepo, customerRepo)

	result, err := controller.Create(context.Background(), &ServiceCreateRequest{
		CustomerID:    &customerID,
		ServiceType:   models.ServiceTypeRegular,
		ScheduledDate: "2025-03-10",
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, models.StatusScheduled, result.Status)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), result.ScheduledDate)
	serviceRepo.AssertExpectations(t)
}

func TestCreate_HonorsSuppliedStatus(t *testing.T) {
	customerID := uuid.New()
	customerRepo := &MockCustomerRepository{}
	customerRepo.On("Exists", mock.Anything, customerID).Return(true, nil)

	serviceRepo := &MockServiceRepository{}
	serviceRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Service")).Return(nil)

	controller := newTestController(serviceRepo, customerRepo)

	result, err := controller.Create(context.Background(), &ServiceCreateRequest{
		CustomerID:    &customerID,
		ServiceType:   models.ServiceTypeRepair,
		ScheduledDate: "2025-03-10",
		Status:        stringPtr(models.StatusInProgress),
	})

	assert.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, result.Status)
}

func TestCreate_UnknownCustomer(t *testing.T) {
	customerID := uuid.New()
	customerRepo := &MockCustomerRepository{}
	customerRepo.On("Exists", mock.Anything, customerID).Return(false, nil)

	controller := newTestController(&MockServiceRepository{}, customerRepo)

	result, err := controller.Create(context.Background(), &ServiceCreateRequest{
		CustomerID:    &customerID,
		ServiceType:   models.ServiceTypeRegular,
		ScheduledDate: "2025-03-10",
	})

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "Invalid customer_id")
}

func TestTransitions(t *testing.T) {
	id := uuid.New()

	t.Run("start", func(t *testing.T) {
		serviceRepo := &MockServiceRepository{}
		serviceRepo.On("MarkInProgress", mock.Anything, id).
			Return(&models.Service{Status: models.StatusInProgress}, nil)

		controller := newTestController(serviceRepo, &MockCustomerRepository{})

		result, err := controller.Start(context.Background(), id)

		assert.NoError(t, err)
		assert.Equal(t, models.StatusInProgress, result.Status)
	})

	t.Run("complete", func(t *testing.T) {
		now := time.Now()
		serviceRepo := &MockServiceRepository{}
		serviceRepo.On("MarkComplete", mock.Anything, id).
			Return(&models.Service{Status: models.StatusCompleted, CompletedAt: &now}, nil)

		controller := newTestController(serviceRepo, &MockCustomerRepository{})

		result, err := controller.Complete(context.Background(), id)

		assert.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, result.Status)
		assert.NotNil(t, result.CompletedAt)
	})

	t.Run("skip with reason", func(t *testing.T) {
		serviceRepo := &MockServiceRepository{}
		serviceRepo.On("MarkSkipped", mock.Anything, id, "gate locked").
			Return(&models.Service{Status: models.StatusSkipped}, nil)

		controller := newTestController(serviceRepo, &MockCustomerRepository{})

		result, err := controller.Skip(context.Background(), id, "gate locked")

		assert.NoError(t, err)
		assert.Equal(t, models.StatusSkipped, result.Status)
		serviceRepo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		serviceRepo := &MockServiceRepository{}
		serviceRepo.On("MarkComplete", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		controller := newTestController(serviceRepo, &MockCustomerRepository{})

		result, err := controller.Complete(context.Background(), id)

		assert.Nil(t, result)
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.Contains(t, err.Error(), "Service not found")
	})
}

func TestUpdate_Validation(t *testing.T) {
	id := uuid.New()
	controller := newTestController(&MockServiceRepository{}, &MockCustomerRepository{})

	badType := "maintenance"
	result, err := controller.Update(context.Background(), id, &ServiceUpdateRequest{
		ServiceType: &badType,
	})

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrValidation))

	badStatus := "paused"
	result, err = controller.Update(context.Background(), id, &ServiceUpdateRequest{
		Status: &badStatus,
	})

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "status must be one of: scheduled, in_progress, completed, skipped")
}

func TestUpdate_ChangesCustomer(t *testing.T) {
	id := uuid.New()
	newCustomerID := uuid.New()
	notes := "moved accounts"

	var captured models.ServicePatch
	serviceRepo := &MockServiceRepository{}
	serviceRepo.On("Update", mock.Anything, id, mock.AnythingOfType("models.ServicePatch")).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).(models.ServicePatch)
		}).
		Return(&models.Service{CustomerID: newCustomerID}, nil)

	controller := newTestController(serviceRepo, &MockCustomerRepository{})

	result, err := controller.Update(context.Background(), id, &ServiceUpdateRequest{
		CustomerID:   &newCustomerID,
		ServiceNotes: &notes,
	})

	assert.NoError(t, err)
	assert.Equal(t, newCustomerID, result.CustomerID)

	updates := captured.Updates()
	assert.Equal(t, newCustomerID, updates["customer_id"])
	assert.Equal(t, notes, updates["service_notes"])
}

func TestUpdate_InvalidCustomerReference(t *testing.T) {
	id := uuid.New()
	newCustomerID := uuid.New()

	serviceRepo := &MockServiceRepository{}
	serviceRepo.On("Update", mock.Anything, id, mock.AnythingOfType("models.ServicePatch")).
		Return(nil, &pgconn.PgError{Code: "23503"})

	controller := newTestController(serviceRepo, &MockCustomerRepository{})

	result, err := controller.Update(context.Background(), id, &ServiceUpdateRequest{
		CustomerID: &newCustomerID,
	})

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "Invalid customer_id")
}

func TestUpdate_SetsCompletedAt(t *testing.T) {
	id := uuid.New()
	completedAt := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

	var captured models.ServicePatch
	serviceRepo := &MockServiceRepository{}
	serviceRepo.On("Update", mock.Anything, id, mock.AnythingOfType("models.ServicePatch")).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).(models.ServicePatch)
		}).
		Return(&models.Service{CompletedAt: &completedAt}, nil)

	controller := newTestController(serviceRepo, &MockCustomerRepository{})

	_, err := controller.Update(context.Background(), id, &ServiceUpdateRequest{
		CompletedAt: &completedAt,
	})

	assert.NoError(t, err)
	assert.Equal(t, completedAt, captured.Updates()["completed_at"])
}

func stringPtr(s string) *string {
	return &s
}
