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

type ServiceRepository interface {
	List(ctx context.Context, filters ServiceFilters) ([]*Service, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Service, error)
	Create(ctx context.Context, service *Service) error
	Update(ctx context.Context, id uuid.UUID, patch ServicePatch) (*Service, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByCustomer(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) error
	MarkInProgress(ctx context.Context, id uuid.UUID) (*Service, error)
	MarkComplete(ctx context.Context, id uuid.UUID) (*Service, error)
	MarkSkipped(ctx context.Context, id uuid.UUID, reason string) (*Service, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]*Service, error)
}

type serviceRepository struct {
	db  database.DB
	log logger.Logger
}

func NewServiceRepository(db database.DB) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: logger.New("serviceRepository"),
	}
}

func (r *serviceRepository) List(ctx context.Context, filters ServiceFilters) ([]*Service, error) {
	log := r.log.Function("List")

	services := make([]*Service, 0)
	query := r.db.SQLWithContext(ctx)

	if filters.CustomerID != nil {
		query = query.Where("customer_id = ?", *filters.CustomerID)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.StartDate != nil {
		query = query.Where("scheduled_date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("scheduled_date <= ?", *filters.EndDate)
	}

	query = query.Order("scheduled_date DESC, scheduled_time")

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&services).Error; err != nil {
		return nil, log.Err("failed to list services", err)
	}

	return services, nil
}

func (r *serviceRepository) GetByID(ctx context.Context, id uuid.UUID) (*Service, error) {
	var service Service
	if err := r.db.SQLWithContext(ctx).First(&service, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &service, nil
}

func (r *serviceRepository) Create(ctx context.Context, service *Service) error {
	return r.db.SQLWithContext(ctx).Create(service).Error
}

func (r *serviceRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	patch ServicePatch,
) (*Service, error) {
	updates := patch.Updates()
	if len(updates) == 0 {
		// Empty patch is a no-op, return the record without bumping updated_at
		return r.GetByID(ctx, id)
	}

	result := r.db.SQLWithContext(ctx).
		Model(&Service{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.SQLWithContext(ctx).Delete(&Service{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *serviceRepository) DeleteByCustomer(
	ctx context.Context,
	tx *gorm.DB,
	customerID uuid.UUID,
) error {
	return tx.WithContext(ctx).Delete(&Service{}, "customer_id = ?", customerID).Error
}

func (r *serviceRepository) MarkInProgress(ctx context.Context, id uuid.UUID) (*Service, error) {
	return r.applyTransition(ctx, id, map[string]any{
		"status": StatusInProgress,
	})
}

func (r *serviceRepository) MarkComplete(ctx context.Context, id uuid.UUID) (*Service, error) {
	// Re-stamps completed_at on repeat calls, there is no double-completion guard
	return r.applyTransition(ctx, id, map[string]any{
		"status":       StatusCompleted,
		"completed_at": time.Now(),
	})
}

func (r *serviceRepository) MarkSkipped(
	ctx context.Context,
	id uuid.UUID,
	reason string,
) (*Service, error) {
	updates := map[string]any{
		"status": StatusSkipped,
	}

	if reason != "" {
		updates["service_notes"] = gorm.Expr(
			"COALESCE(service_notes || E'\\n', '') || ?",
			"Skipped: "+reason,
		)
	}

	return r.applyTransition(ctx, id, updates)
}

func (r *serviceRepository) applyTransition(
	ctx context.Context,
	id uuid.UUID,
	updates map[string]any,
) (*Service, error) {
	result := r.db.SQLWithContext(ctx).
		Model(&Service{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *serviceRepository) ListByCustomer(
	ctx context.Context,
	customerID uuid.UUID,
	limit int,
) ([]*Service, error) {
	log := r.log.Function("ListByCustomer")

	services := make([]*Service, 0)
	query := r.db.SQLWithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("scheduled_date DESC, created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&services).Error; err != nil {
		return nil, log.Err("failed to list customer services", err, "customerID", customerID)
	}

	return services, nil
}
