package recurringController

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

type RecurringServiceCreateRequest struct {
	CustomerID    *uuid.UUID `json:"customer_id"`
	ServiceType   string     `json:"service_type"`
	Frequency     string     `json:"frequency"`
	DayOfWeek     *int       `json:"day_of_week"`
	DayOfMonth    *int       `json:"day_of_month"`
	StartDate     string     `json:"start_date"` // YYYY-MM-DD
	EndDate       string     `json:"end_date"`   // YYYY-MM-DD, empty means no end
	TechnicianID  *uuid.UUID `json:"technician_id"`
	ScheduledTime *string    `json:"scheduled_time"` // HH:MM
	ServiceNotes  *string    `json:"service_notes"`
}

type RecurringServiceUpdateRequest struct {
	Frequency     *string    `json:"frequency"`
	DayOfWeek     *int       `json:"day_of_week"`
	DayOfMonth    *int       `json:"day_of_month"`
	StartDate     *string    `json:"start_date"`
	EndDate       *string    `json:"end_date"`
	IsActive      *bool      `json:"is_active"`
	TechnicianID  *uuid.UUID `json:"technician_id"`
	ScheduledTime *string    `json:"scheduled_time"`
	ServiceNotes  *string    `json:"service_notes"`
}

type RecurringServiceControllerInterface interface {
	List(ctx context.Context, filters RecurringServiceFilters) ([]*RecurringService, error)
	GetByID(ctx context.Context, id uuid.UUID) (*RecurringService, error)
	Create(ctx context.Context, request *RecurringServiceCreateRequest) (*RecurringService, error)
	Update(ctx context.Context, id uuid.UUID, request *RecurringServiceUpdateRequest) (*RecurringService, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Activate(ctx context.Context, id uuid.UUID) (*RecurringService, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*RecurringService, error)
}

type RecurringServiceController struct {
	recurringRepo repositories.RecurringServiceRepository
	customerRepo  repositories.CustomerRepository
}

func New(repos repositories.Repository) RecurringServiceControllerInterface {
	return &RecurringServiceController{
		recurringRepo: repos.RecurringService,
		customerRepo:  repos.Customer,
	}
}

func (c *RecurringServiceController) List(
	ctx context.Context,
	filters RecurringServiceFilters,
) ([]*RecurringService, error) {
	return c.recurringRepo.List(ctx, filters)
}

func (c *RecurringServiceController) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*RecurringService, error) {
	log := logger.NewWithContext(ctx, "recurringController").Function("GetByID")

	recurring, err := c.recurringRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "Recurring service not found")
		}
		return nil, log.Err("failed to get recurring service", err, "id", id)
	}

	return recurring, nil
}

// Create validates the proposed rule against the structural constraints in
// order (first failure wins), checks the customer reference last, and
// normalizes the day field irrelevant to the chosen frequency before the rule
// is persisted.
func (c *RecurringServiceController) Create(
	ctx context.Context,
	request *RecurringServiceCreateRequest,
) (*RecurringService, error) {
	log := logger.NewWithContext(ctx, "recurringController").Function("Create")

	if request.CustomerID == nil || request.ServiceType == "" ||
		request.Frequency == "" || request.StartDate == "" {
		return nil, log.ErrorWithType(
			ErrValidation,
			"customer_id, service_type, frequency, and start_date are required",
		)
	}

	if !IsValidServiceType(request.ServiceType) {
		return nil, log.ErrorWithType(
			ErrValidation,
			"service_type must be one of: regular, repair, one_off",
		)
	}

	if !IsValidFrequency(request.Frequency) {
		return nil, log.ErrorWithType(
			ErrValidation,
			"frequency must be one of: weekly, biweekly, monthly",
		)
	}

	weekBased := request.Frequency == FrequencyWeekly || request.Frequency == FrequencyBiweekly

	if weekBased && request.DayOfWeek == nil {
		return nil, log.ErrorWithType(
			ErrValidation,
			"day_of_week is required for weekly and biweekly frequencies",
		)
	}

	if request.DayOfWeek != nil && (*request.DayOfWeek < 0 || *request.DayOfWeek > 6) {
		return nil, log.ErrorWithType(ErrValidation, "day_of_week must be between 0 and 6")
	}

	if request.Frequency == FrequencyMonthly && request.DayOfMonth == nil {
		return nil, log.ErrorWithType(
			ErrValidation,
			"day_of_month is required for monthly frequency",
		)
	}

	if request.DayOfMonth != nil && (*request.DayOfMonth < 1 || *request.DayOfMonth > 31) {
		return nil, log.ErrorWithType(ErrValidation, "day_of_month must be between 1 and 31")
	}

	startDate, err := time.Parse(dateLayout, request.StartDate)
	if err != nil {
		return nil, log.ErrorWithType(ErrValidation, "start_date must be a date in YYYY-MM-DD format")
	}

	var endDate *time.Time
	if request.EndDate != "" {
		parsed, err := time.Parse(dateLayout, request.EndDate)
		if err != nil {
			return nil, log.ErrorWithType(ErrValidation, "end_date must be a date in YYYY-MM-DD format")
		}
		if parsed.Before(startDate) {
			return nil, log.ErrorWithType(ErrValidation, "end_date must be after start_date")
		}
		endDate = &parsed
	}

	// Referential check runs last, after all structural validation
	exists, err := c.customerRepo.Exists(ctx, *request.CustomerID)
	if err != nil {
		return nil, log.Err("failed to check customer existence", err, "customerID", request.CustomerID)
	}
	if !exists {
		return nil, log.ErrorWithType(ErrValidation, "Invalid customer_id")
	}

	recurring := &RecurringService{
		CustomerID:    *request.CustomerID,
		ServiceType:   request.ServiceType,
		Frequency:     request.Frequency,
		DayOfWeek:     request.DayOfWeek,
		DayOfMonth:    request.DayOfMonth,
		StartDate:     startDate,
		EndDate:       endDate,
		IsActive:      true,
		TechnicianID:  request.TechnicianID,
		ScheduledTime: request.ScheduledTime,
		ServiceNotes:  request.ServiceNotes,
	}

	// Normalization: only the day field matching the frequency survives
	if weekBased {
		recurring.DayOfMonth = nil
	} else {
		recurring.DayOfWeek = nil
	}

	if err := c.recurringRepo.Create(ctx, recurring); err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return nil, log.ErrorWithType(ErrValidation, "Invalid customer_id")
		}
		if repositories.IsCheckViolation(err) {
			return nil, log.ErrorWithType(ErrValidation, "Invalid data: constraint violation")
		}
		return nil, log.Err("failed to create recurring service", err)
	}

	log.Info("Recurring service created", "id", recurring.ID, "customerID", recurring.CustomerID)
	return recurring, nil
}

// Update re-validates only fields present in the request. The date-order check
// runs only when both start_date and end_date are supplied together; a patch
// that changes only one of them is accepted without cross-validation against
// the stored record.
func (c *RecurringServiceController) Update(
	ctx context.Context,
	id uuid.UUID,
	request *RecurringServiceUpdateRequest,
) (*RecurringService, error) {
	log := logger.NewWithContext(ctx, "recurringController").Function("Update")

	if request.Frequency != nil && !IsValidFrequency(*request.Frequency) {
		return nil, log.ErrorWithType(
			ErrValidation,
			"frequency must be one of: weekly, biweekly, monthly",
		)
	}

	if request.DayOfWeek != nil && (*request.DayOfWeek < 0 || *request.DayOfWeek > 6) {
		return nil, log.ErrorWithType(ErrValidation, "day_of_week must be between 0 and 6")
	}

	if request.DayOfMonth != nil && (*request.DayOfMonth < 1 || *request.DayOfMonth > 31) {
		return nil, log.ErrorWithType(ErrValidation, "day_of_month must be between 1 and 31")
	}

	patch := RecurringServicePatch{
		Frequency:     request.Frequency,
		DayOfWeek:     request.DayOfWeek,
		DayOfMonth:    request.DayOfMonth,
		IsActive:      request.IsActive,
		TechnicianID:  request.TechnicianID,
		ScheduledTime: request.ScheduledTime,
		ServiceNotes:  request.ServiceNotes,
	}

	if request.StartDate != nil {
		parsed, err := time.Parse(dateLayout, *request.StartDate)
		if err != nil {
			return nil, log.ErrorWithType(ErrValidation, "start_date must be a date in YYYY-MM-DD format")
		}
		patch.StartDate = &parsed
	}

	if request.EndDate != nil {
		parsed, err := time.Parse(dateLayout, *request.EndDate)
		if err != nil {
			return nil, log.ErrorWithType(ErrValidation, "end_date must be a date in YYYY-MM-DD format")
		}
		patch.EndDate = &parsed
	}

	if patch.StartDate != nil && patch.EndDate != nil && patch.EndDate.Before(*patch.StartDate) {
		return nil, log.ErrorWithType(ErrValidation, "end_date must be after start_date")
	}

	recurring, err := c.recurringRepo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "Recurring service not found")
		}
		if repositories.IsCheckViolation(err) {
			return nil, log.ErrorWithType(ErrValidation, "Invalid data: constraint violation")
		}
		return nil, log.Err("failed to update recurring service", err, "id", id)
	}

	return recurring, nil
}

func (c *RecurringServiceController) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.NewWithContext(ctx, "recurringController").Function("Delete")

	if err := c.recurringRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return log.ErrorWithType(ErrNotFound, "Recurring service not found")
		}
		return log.Err("failed to delete recurring service", err, "id", id)
	}

	log.Info("Recurring service deleted", "id", id)
	return nil
}

func (c *RecurringServiceController) Activate(
	ctx context.Context,
	id uuid.UUID,
) (*RecurringService, error) {
	return c.setActive(ctx, id, true)
}

func (c *RecurringServiceController) Deactivate(
	ctx context.Context,
	id uuid.UUID,
) (*RecurringService, error) {
	return c.setActive(ctx, id, false)
}

// setActive flips is_active and bumps updated_at, nothing else. Re-applying
// the current state is not an error.
func (c *RecurringServiceController) setActive(
	ctx context.Context,
	id uuid.UUID,
	active bool,
) (*RecurringService, error) {
	log := logger.NewWithContext(ctx, "recurringController").Function("setActive")

	recurring, err := c.recurringRepo.SetActive(ctx, id, active)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "Recurring service not found")
		}
		return nil, log.Err("failed to set recurring service active state", err, "id", id)
	}

	return recurring, nil
}
