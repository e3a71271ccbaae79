package customerController

import (
	"context"
	"errors"

	. "skimmer/internal/models"
	"skimmer/internal/repositories"
	"skimmer/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

type CustomerCreateRequest struct {
	CompanyID      *uuid.UUID       `json:"company_id"`
	Name           string           `json:"name"`
	Email          *string          `json:"email"`
	Phone          *string          `json:"phone"`
	Address        string           `json:"address"`
	City           *string          `json:"city"`
	State          *string          `json:"state"`
	ZipCode        *string          `json:"zip_code"`
	Latitude       *float64         `json:"latitude"`
	Longitude      *float64         `json:"longitude"`
	GateCode       *string          `json:"gate_code"`
	ServiceNotes   *string          `json:"service_notes"`
	BillingModel   *string          `json:"billing_model"`
	MonthlyRate    *decimal.Decimal `json:"monthly_rate"`
	AutopayEnabled *bool            `json:"autopay_enabled"`
}

type CustomerUpdateRequest struct {
	Name           *string          `json:"name"`
	Email          *string          `json:"email"`
	Phone          *string          `json:"phone"`
	Address        *string          `json:"address"`
	City           *string          `json:"city"`
	State          *string          `json:"state"`
	ZipCode        *string          `json:"zip_code"`
	Latitude       *float64         `json:"latitude"`
	Longitude      *float64         `json:"longitude"`
	GateCode       *string          `json:"gate_code"`
	ServiceNotes   *string          `json:"service_notes"`
	BillingModel   *string          `json:"billing_model"`
	MonthlyRate    *decimal.Decimal `json:"monthly_rate"`
	AutopayEnabled *bool            `json:"autopay_enabled"`
}

type CustomerControllerInterface interface {
	List(ctx context.Context, filters CustomerFilters) ([]*Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	Create(ctx context.Context, request *CustomerCreateRequest) (*Customer, error)
	Update(ctx context.Context, id uuid.UUID, request *CustomerUpdateRequest) (*Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	History(ctx context.Context, id uuid.UUID, limit int) ([]*Service, error)
}

type CustomerController struct {
	customerRepo  repositories.CustomerRepository
	serviceRepo   repositories.ServiceRepository
	recurringRepo repositories.RecurringServiceRepository
	transaction   *services.TransactionService
}

func New(
	repos repositories.Repository,
	transaction *services.TransactionService,
) CustomerControllerInterface {
	return &CustomerController{
		customerRepo:  repos.Customer,
		serviceRepo:   repos.Service,
		recurringRepo: repos.RecurringService,
		transaction:   transaction,
	}
}

func (c *CustomerController) List(
	ctx context.Context,
	filters CustomerFilters,
) ([]*Customer, error) {
	return c.customerRepo.List(ctx, filters)
}

func (c *CustomerController) GetByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	log := logger.NewWithContext(ctx, "customerController").Function("GetByID")

	customer, err := c.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "Customer not found")
		}
		return nil, log.Err("failed to get customer", err, "id", id)
	}

	return customer, nil
}

func (c *CustomerController) Create(
	ctx context.Context,
	request *CustomerCreateRequest,
) (*Customer, error) {
	log := logger.NewWithContext(ctx, "customerController").Function("Create")

	if request.Name == "" || request.Address == "" {
		return nil, log.ErrorWithType(ErrValidation, "name and address are required")
	}

	if request.BillingModel != nil && !IsValidBillingModel(*request.BillingModel) {
		return nil, log.ErrorWithType(
			ErrValidation,
			"billing_model must be one of: per_month, plus_chems, per_stop, with_chems",
		)
	}

	customer := &Customer{
		CompanyID:    request.CompanyID,
		Name:         request.Name,
		Email:        request.Email,
		Phone:        request.Phone,
		Address:      request.Address,
		City:         request.City,
		State:        request.State,
		ZipCode:      request.ZipCode,
		Latitude:     request.Latitude,
		Longitude:    request.Longitude,
		GateCode:     request.GateCode,
		ServiceNotes: request.ServiceNotes,
		BillingModel: request.BillingModel,
		MonthlyRate:  request.MonthlyRate,
	}
	if request.AutopayEnabled != nil {
		customer.AutopayEnabled = *request.AutopayEnabled
	}

	if err := c.customerRepo.Create(ctx, customer); err != nil {
		if repositories.IsCheckViolation(err) {
			return nil, log.ErrorWithType(ErrValidation, "Invalid data: constraint violation")
		}
		return nil, log.Err("failed to create customer", err)
	}

	log.Info("Customer created", "id", customer.ID)
	return customer, nil
}

func (c *CustomerController) Update(
	ctx context.Context,
	id uuid.UUID,
	request *CustomerUpdateRequest,
) (*Customer, error) {
	log := logger.NewWithContext(ctx, "customerController").Function("Update")

	if request.BillingModel != nil && !IsValidBillingModel(*request.BillingModel) {
		return nil, log.ErrorWithType(
			ErrValidation,
			"billing_model must be one of: per_month, plus_chems, per_stop, with_chems",
		)
	}

	patch := CustomerPatch{
		Name:           request.Name,
		Email:          request.Email,
		Phone:          request.Phone,
		Address:        request.Address,
		City:           request.City,
		State:          request.State,
		ZipCode:        request.ZipCode,
		Latitude:       request.Latitude,
		Longitude:      request.Longitude,
		GateCode:       request.GateCode,
		ServiceNotes:   request.ServiceNotes,
		BillingModel:   request.BillingModel,
		MonthlyRate:    request.MonthlyRate,
		AutopayEnabled: request.AutopayEnabled,
	}

	customer, err := c.customerRepo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "Customer not found")
		}
		if repositories.IsCheckViolation(err) {
			return nil, log.ErrorWithType(ErrValidation, "Invalid data: constraint violation")
		}
		return nil, log.Err("failed to update customer", err, "id", id)
	}

	return customer, nil
}

// Delete removes the customer and every visit and recurrence rule that points
// at them in one transaction. The explicit child deletes keep the behavior
// identical on databases restored without the cascade constraints.
func (c *CustomerController) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.NewWithContext(ctx, "customerController").Function("Delete")

	exists, err := c.customerRepo.Exists(ctx, id)
	if err != nil {
		return log.Err("failed to check customer existence", err, "id", id)
	}
	if !exists {
		return log.ErrorWithType(ErrNotFound, "Customer not found")
	}

	err = c.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := c.serviceRepo.DeleteByCustomer(ctx, tx, id); err != nil {
			return err
		}
		if err := c.recurringRepo.DeleteByCustomer(ctx, tx, id); err != nil {
			return err
		}
		return c.customerRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return log.ErrorWithType(ErrNotFound, "Customer not found")
		}
		return log.Err("failed to delete customer", err, "id", id)
	}

	log.Info("Customer deleted", "id", id)
	return nil
}

// History lists the customer's visits newest first. A missing customer is a
// not-found error even though an empty list would be indistinguishable.
func (c *CustomerController) History(
	ctx context.Context,
	id uuid.UUID,
	limit int,
) ([]*Service, error) {
	log := logger.NewWithContext(ctx, "customerController").Function("History")

	exists, err := c.customerRepo.Exists(ctx, id)
	if err != nil {
		return nil, log.Err("failed to check customer existence", err, "id", id)
	}
	if !exists {
		return nil, log.ErrorWithType(ErrNotFound, "Customer not found")
	}

	history, err := c.serviceRepo.ListByCustomer(ctx, id, limit)
	if err != nil {
		return nil, log.Err("failed to list customer history", err, "id", id)
	}

	return history, nil
}
