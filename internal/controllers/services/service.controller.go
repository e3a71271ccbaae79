package serviceController

import (
	"context"
	"errors"
	"time"

	. "skimmer/internal/models"
	"skimmer/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

type ServiceCreateRequest struct {
	CustomerID    *uuid.UUID `json:"customer_id"`
	RouteID       *uuid.UUID `json:"route_id"`
	TechnicianID  *uuid.UUID `json:"technician_id"`
	ServiceType   string     `json:"service_type"`
	ScheduledDate string     `json:"scheduled_date"` // YYYY-MM-DD
	ScheduledTime *string    `json:"scheduled_time"` // HH:MM
	Status        *string    `json:"status"`
	ServiceNotes  *string    `json:"service_notes"`
}

type ServiceUpdateRequest struct {
	CustomerID    *uuid.UUID `json:"customer_id"`
	RouteID       *uuid.UUID `json:"route_id"`
	TechnicianID  *uuid.UUID `json:"technician_id"`
	ServiceType   *string    `json:"service_type"`
	ScheduledDate *string    `json:"scheduled_date"`
	ScheduledTime *string    `json:"scheduled_time"`
	Status        *string    `json:"status"`
	CompletedAt   *time.Time `json:"completed_at"`
	ServiceNotes  *string    `json:"service_notes"`
}

type SkipRequest struct {
	Reason string `json:"reason"`
}

type ServiceControllerInterface interface {
	List(ctx context.Context, filters ServiceFilters) ([]*Service, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Service, error)
	Create(ctx context.Context, request *ServiceCreateRequest) (*Service, error)
	Update(ctx context.Context, id uuid.UUID, request *ServiceUpdateRequest) (*Service, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Start(ctx context.Context, id uuid.UUID) (*Service, error)
	Complete(ctx context.Context, id uuid.UUID) (*Service, error)
	Skip(ctx context.Context, id uuid.UUID, reason string) (*Service, error)
}

type ServiceController struct {
	serviceRepo  repositories.ServiceRepository
	customerRepo repositories.CustomerRepository
}

func New(repos repositories.Repository) ServiceControllerInterface {
	return &ServiceController{
		serviceRepo:  repos.Service,
		customerRepo: repos.Customer,
	}
}

func (c *ServiceController) List(
	ctx context.Context,
	filters ServiceFilters,
) ([]*Service, error) {
	return c.serviceRepo.List(ctx, filters)
}

func (c *ServiceController) GetByID(ctx context.Context, id uuid.UUID) (*Service, error) {
	log := logger.NewWithContext(ctx, "serviceController").Function("GetByID")

	service, err := c.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "Service not found")
		}
		return nil, log.Err("failed to get service", err, "id", id)
	}

	return service, nil
}

func (c *ServiceController) Create(
	ctx context.Context,
	request *ServiceCreateRequest,
) (*Service, error) {
	log := logger.NewWithContext(ctx, "serviceController").Function("Create")

	if request.CustomerID == nil || request.ServiceType == "" || request.ScheduledDate == "" {
		return nil, log.ErrorWithType(
			ErrValidation,
			"customer_id, service_type, and scheduled_date are required",
		)
	}

	if !IsValidServiceType(request.ServiceType) {
		return nil, log.ErrorWithType(
			ErrValidation,
			"service_type must be one of: regular, repair, one_off",
		)
	}

	if request.Status != nil && !IsValidServiceStatus(*request.Status) {
		return nil, log.ErrorWithType(
			ErrValidation,
			"status must be one of: scheduled, in_progress, completed, skipped",
		)
	}

	scheduledDate, err := time.Parse(dateLayout, request.ScheduledDate)
	if err != nil {
		return nil, log.ErrorWithType(ErrValidation, "scheduled_date must be a date in YYYY-MM-DD format")
	}

	exists, err := c.customerRepo.Exists(ctx, *request.CustomerID)
	if err != nil {
		return nil, log.Err("failed to check customer existence", err, "customerID", request.CustomerID)
	}
	if !exists {
		return nil, log.ErrorWithType(ErrValidation, "Invalid customer_id")
	}

	status := StatusScheduled
	if request.Status != nil {
		status = *request.Status
	}

	service := &Service{
		CustomerID:    *request.CustomerID,
		RouteID:       request.RouteID,
		TechnicianID:  request.TechnicianID,
		ServiceType:   request.ServiceType,
		ScheduledDate: scheduledDate,
		ScheduledTime: request.ScheduledTime,
		Status:        status,
		ServiceNotes:  request.ServiceNotes,
	}

	if err := c.serviceRepo.Create(ctx, service); err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return nil, log.ErrorWithType(ErrValidation, "Invalid customer_id")
		}
		if repositories.IsCheckViolation(err) {
			return nil, log.ErrorWithType(ErrValidation, "Invalid data: constraint violation")
		}
		return nil, log.Err("failed to create service", err)
	}

	log.Info("Service created", "id", service.ID, "customerID", service.CustomerID)
	return service, nil
}

func (c *ServiceController) Update(
	ctx context.Context,
	id uuid.UUID,
	request *ServiceUpdateRequest,
) (*Service, error) {
	log := logger.NewWithContext(ctx, "serviceController").Function("Update")

	if request.ServiceType != nil && !IsValidServiceType(*request.ServiceType) {
		return nil, log.ErrorWithType(
			ErrValidation,
			"service_type must be one of: regular, repair, one_off",
		)
	}

	if request.Status != nil && !IsValidServiceStatus(*request.Status) {
		return nil, log.ErrorWithType(
			ErrValidation,
			"status must be one of: scheduled, in_progress, completed, skipped",
		)
	}

	patch := ServicePatch{
		CustomerID:    request.CustomerID,
		RouteID:       request.RouteID,
		TechnicianID:  request.TechnicianID,
		ServiceType:   request.ServiceType,
		ScheduledTime: request.ScheduledTime,
		Status:        request.Status,
		CompletedAt:   request.CompletedAt,
		ServiceNotes:  request.ServiceNotes,
	}

	if request.ScheduledDate != nil {
		parsed, err := time.Parse(dateLayout, *request.ScheduledDate)
		if err != nil {
			return nil, log.ErrorWithType(ErrValidation, "scheduled_date must be a date in YYYY-MM-DD format")
		}
		patch.ScheduledDate = &parsed
	}

	service, err := c.serviceRepo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "Service not found")
		}
		if repositories.IsForeignKeyViolation(err) {
			return nil, log.ErrorWithType(ErrValidation, "Invalid customer_id")
		}
		if repositories.IsCheckViolation(err) {
			return nil, log.ErrorWithType(ErrValidation, "Invalid data: constraint violation")
		}
		return nil, log.Err("failed to update service", err, "id", id)
	}

	return service, nil
}

func (c *ServiceController) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.NewWithContext(ctx, "serviceController").Function("Delete")

	if err := c.serviceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return log.ErrorWithType(ErrNotFound, "Service not found")
		}
		return log.Err("failed to delete service", err, "id", id)
	}

	log.Info("Service deleted", "id", id)
	return nil
}

// Start, Complete, and Skip apply lifecycle transitions unconditionally: the
// new status always overwrites the current one, whatever it was.

func (c *ServiceController) Start(ctx context.Context, id uuid.UUID) (*Service, error) {
	log := logger.NewWithContext(ctx, "serviceController").Function("Start")

	service, err := c.serviceRepo.MarkInProgress(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "Service not found")
		}
		return nil, log.Err("failed to start service", err, "id", id)
	}

	return service, nil
}

func (c *ServiceController) Complete(ctx context.Context, id uuid.UUID) (*Service, error) {
	log := logger.NewWithContext(ctx, "serviceController").Function("Complete")

	service, err := c.serviceRepo.MarkComplete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "Service not found")
		}
		return nil, log.Err("failed to complete service", err, "id", id)
	}

	log.Info("Service completed", "id", id)
	return service, nil
}

func (c *ServiceController) Skip(
	ctx context.Context,
	id uuid.UUID,
	reason string,
) (*Service, error) {
	log := logger.NewWithContext(ctx, "serviceController").Function("Skip")

	service, err := c.serviceRepo.MarkSkipped(ctx, id, reason)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "Service not found")
		}
		return nil, log.Err("failed to skip service", err, "id", id)
	}

	log.Info("Service skipped", "id", id, "reason", reason)
	return service, nil
}
