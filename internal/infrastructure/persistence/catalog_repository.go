package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormResourceRepository implements catalog.ResourceRepository using GORM
type GormResourceRepository struct {
	db *gorm.DB
}

// NewGormResourceRepository creates a new GormResourceRepository
func NewGormResourceRepository(db *gorm.DB) *GormResourceRepository {
	return &GormResourceRepository{db: db}
}

// FindByID finds a resource by its ID
func (r *GormResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Resource, error) {
	var model models.ResourceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "find resource")
	}
	return model.ToDomain(), nil
}

// FindAll returns all resources ordered by name
func (r *GormResourceRepository) FindAll(ctx context.Context) ([]catalog.Resource, error) {
	return r.find(r.db.WithContext(ctx))
}

// FindActive returns resources that are not archived
func (r *GormResourceRepository) FindActive(ctx context.Context) ([]catalog.Resource, error) {
	return r.find(r.db.WithContext(ctx).Where("state = ?", shared.EntityStateActive))
}

func (r *GormResourceRepository) find(query *gorm.DB) ([]catalog.Resource, error) {
	var rows []models.ResourceModel
	if err := query.Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	out := make([]catalog.Resource, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// ExistsByID checks whether a resource exists
func (r *GormResourceRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.ResourceModel{}, "id = ?", id)
}

// ExistsByName checks whether another resource already uses the name
func (r *GormResourceRepository) ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	return exists(query, &models.ResourceModel{}, "name = ?", name)
}

// Save creates or updates a resource
func (r *GormResourceRepository) Save(ctx context.Context, resource *catalog.Resource) error {
	if err := r.db.WithContext(ctx).Save(models.ResourceModelFromDomain(resource)).Error; err != nil {
		return duplicate(err, "save resource", shared.NewDomainError(shared.CodeAlreadyExists,
			fmt.Sprintf("Resource with name '%s' already exists", resource.Name)))
	}
	return nil
}

// Delete removes a resource
func (r *GormResourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ResourceModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete resource: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormUnitRepository implements catalog.UnitRepository using GORM
type GormUnitRepository struct {
	db *gorm.DB
}

// NewGormUnitRepository creates a new GormUnitRepository
func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{db: db}
}

// FindByID finds a unit by its ID
func (r *GormUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Unit, error) {
	var model models.UnitModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "find unit")
	}
	return model.ToDomain(), nil
}

// FindAll returns all units ordered by name
func (r *GormUnitRepository) FindAll(ctx context.Context) ([]catalog.Unit, error) {
	return r.find(r.db.WithContext(ctx))
}

// FindActive returns units that are not archived
func (r *GormUnitRepository) FindActive(ctx context.Context) ([]catalog.Unit, error) {
	return r.find(r.db.WithContext(ctx).Where("state = ?", shared.EntityStateActive))
}

func (r *GormUnitRepository) find(query *gorm.DB) ([]catalog.Unit, error) {
	var rows []models.UnitModel
	if err := query.Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	out := make([]catalog.Unit, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// ExistsByID checks whether a unit exists
func (r *GormUnitRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.UnitModel{}, "id = ?", id)
}

// ExistsByName checks whether another unit already uses the name
func (r *GormUnitRepository) ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	return exists(query, &models.UnitModel{}, "name = ?", name)
}

// Save creates or updates a unit
func (r *GormUnitRepository) Save(ctx context.Context, unit *catalog.Unit) error {
	if err := r.db.WithContext(ctx).Save(models.UnitModelFromDomain(unit)).Error; err != nil {
		return duplicate(err, "save unit", shared.NewDomainError(shared.CodeAlreadyExists,
			fmt.Sprintf("Unit with name '%s' already exists", unit.Name)))
	}
	return nil
}

// Delete removes a unit
func (r *GormUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.UnitModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete unit: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var (
	_ catalog.ResourceRepository = (*GormResourceRepository)(nil)
	_ catalog.UnitRepository     = (*GormUnitRepository)(nil)
)
