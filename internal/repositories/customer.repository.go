package repositories

import (
	"context"

	"skimmer/internal/constants"
	"skimmer/internal/database"
	. "skimmer/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	List(ctx context.Context, filters CustomerFilters) ([]*Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, customer *Customer) error
	Update(ctx context.Context, id uuid.UUID, patch CustomerPatch) (*Customer, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ClearCache(ctx context.Context, id uuid.UUID) error
}

type customerRepository struct {
	db  database.DB
	log logger.Logger
}

func NewCustomerRepository(db database.DB) CustomerRepository {
	return &customerRepository{
		db:  db,
		log: logger.New("customerRepository"),
	}
}

func (r *customerRepository) List(
	ctx context.Context,
	filters CustomerFilters,
) ([]*Customer, error) {
	log := r.log.Function("List")

	customers := make([]*Customer, 0)
	query := r.db.SQLWithContext(ctx)

	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where(
			"name ILIKE ? OR address ILIKE ? OR phone ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	if filters.BillingModel != "" {
		query = query.Where("billing_model = ?", filters.BillingModel)
	}

	query = query.Order("name")

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&customers).Error; err != nil {
		return nil, log.Err("failed to list customers", err)
	}

	return customers, nil
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	log := r.log.Function("GetByID")

	var customer Customer
	if found := r.getCacheByID(ctx, id, &customer); found {
		return &customer, nil
	}

	if err := r.db.SQLWithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}

	if err := r.addToCache(ctx, &customer); err != nil {
		log.Warn("failed to add customer to cache", "customerID", id, "error", err)
	}

	return &customer, nil
}

func (r *customerRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.SQLWithContext(ctx).
		Model(&Customer{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, r.log.Function("Exists").Err("failed to check customer existence", err)
	}

	return count > 0, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *Customer) error {
	if err := r.db.SQLWithContext(ctx).Create(customer).Error; err != nil {
		return err
	}

	return nil
}

func (r *customerRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	patch CustomerPatch,
) (*Customer, error) {
	log := r.log.Function("Update")

	updates := patch.Updates()
	if len(updates) == 0 {
		// Empty patch is a no-op, return the record without bumping updated_at
		return r.GetByID(ctx, id)
	}

	result := r.db.SQLWithContext(ctx).
		Model(&Customer{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	if err := r.ClearCache(ctx, id); err != nil {
		log.Warn("failed to clear customer cache after update", "customerID", id, "error", err)
	}

	var customer Customer
	if err := r.db.SQLWithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &customer, nil
}

func (r *customerRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	log := r.log.Function("Delete")

	result := tx.WithContext(ctx).Delete(&Customer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.ClearCache(ctx, id); err != nil {
		log.Warn("failed to clear customer cache after delete", "customerID", id, "error", err)
	}

	return nil
}

func (r *customerRepository) ClearCache(ctx context.Context, id uuid.UUID) error {
	cacheKey := constants.CustomerCachePrefix + id.String()
	return database.NewCacheBuilder(r.db.Cache.Customer, cacheKey).WithContext(ctx).Delete()
}

func (r *customerRepository) getCacheByID(
	ctx context.Context,
	id uuid.UUID,
	customer *Customer,
) bool {
	cacheKey := constants.CustomerCachePrefix + id.String()
	found, err := database.NewCacheBuilder(r.db.Cache.Customer, cacheKey).
		WithContext(ctx).
		Get(customer)
	if err != nil {
		r.log.Function("getCacheByID").
			Warn("failed to get customer from cache", "customerID", id, "error", err)
		return false
	}

	return found
}

func (r *customerRepository) addToCache(ctx context.Context, customer *Customer) error {
	cacheKey := constants.CustomerCachePrefix + customer.ID.String()
	return database.NewCacheBuilder(r.db.Cache.Customer, cacheKey).
		WithStruct(customer).
		WithTTL(constants.CustomerCacheExpiry).
		WithContext(ctx).
		Set()
}
