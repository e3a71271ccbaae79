package repositories

import (
	"context"
	"time"

	"skimmer/internal/database"
	. "skimmer/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecurringServiceRepository interface {
	List(ctx context.Context, filters RecurringServiceFilters) ([]*RecurringService, error)
	GetByID(ctx context.Context, id uuid.UUID) (*RecurringService, error)
	Create(ctx context.Context, recurring *RecurringService) error
	Update(ctx context.Context, id uuid.UUID, patch RecurringServicePatch) (*RecurringService, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByCustomer(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*RecurringService, error)
	DeactivateExpired(ctx context.Context, asOf time.Time) (int64, error)
}

type recurringServiceRepository struct {
	db  database.DB
	log logger.Logger
}

func NewRecurringServiceRepository(db database.DB) RecurringServiceRepository {
	return &recurringServiceRepository{
		db:  db,
		log: logger.New("recurringServiceRepository"),
	}
}

func (r *recurringServiceRepository) List(
	ctx context.Context,
	filters RecurringServiceFilters,
) ([]*RecurringService, error) {
	log := r.log.Function("List")

	recurring := make([]*RecurringService, 0)
	query := r.db.SQLWithContext(ctx)

	if filters.CustomerID != nil {
		query = query.Where("customer_id = ?", *filters.CustomerID)
	}
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}
	if filters.Frequency != "" {
		query = query.Where("frequency = ?", filters.Frequency)
	}

	if err := query.Order("created_at DESC").Find(&recurring).Error; err != nil {
		return nil, log.Err("failed to list recurring services", err)
	}

	return recurring, nil
}

func (r *recurringServiceRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*RecurringService, error) {
	var recurring RecurringService
	if err := r.db.SQLWithContext(ctx).First(&recurring, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &recurring, nil
}

func (r *recurringServiceRepository) Create(
	ctx context.Context,
	recurring *RecurringService,
) error {
	return r.db.SQLWithContext(ctx).Create(recurring).Error
}

// Update reads the existing row first, then writes the patch. The read and the
// write are not a single atomic unit; concurrent writers race and the last one
// wins, matching the store's row-level isolation.
func (r *recurringServiceRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	patch RecurringServicePatch,
) (*RecurringService, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := patch.Updates()
	if len(updates) == 0 {
		return existing, nil
	}

	result := r.db.SQLWithContext(ctx).
		Model(&RecurringService{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}

	return r.GetByID(ctx, id)
}

func (r *recurringServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.SQLWithContext(ctx).Delete(&RecurringService{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *recurringServiceRepository) DeleteByCustomer(
	ctx context.Context,
	tx *gorm.DB,
	customerID uuid.UUID,
) error {
	return tx.WithContext(ctx).Delete(&RecurringService{}, "customer_id = ?", customerID).Error
}

func (r *recurringServiceRepository) SetActive(
	ctx context.Context,
	id uuid.UUID,
	active bool,
) (*RecurringService, error) {
	result := r.db.SQLWithContext(ctx).
		Model(&RecurringService{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_active": active})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *recurringServiceRepository) DeactivateExpired(
	ctx context.Context,
	asOf time.Time,
) (int64, error) {
	log := r.log.Function("DeactivateExpired")

	result := r.db.SQLWithContext(ctx).
		Model(&RecurringService{}).
		Where("is_active = ? AND end_date IS NOT NULL AND end_date < ?", true, asOf).
		Updates(map[string]any{"is_active": false})
	if result.Error != nil {
		return 0, log.Err("failed to deactivate expired recurring services", result.Error)
	}

	return result.RowsAffected, nil
}
