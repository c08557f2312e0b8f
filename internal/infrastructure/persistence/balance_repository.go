package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/inventory"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBalanceRepository implements inventory.BalanceRepository using GORM.
// Mutations are expected to run on a transaction handle from GormTransactionScope.
type GormBalanceRepository struct {
	db *gorm.DB
}

// NewGormBalanceRepository creates a new GormBalanceRepository
func NewGormBalanceRepository(db *gorm.DB) *GormBalanceRepository {
	return &GormBalanceRepository{db: db}
}

// FindForUpdate loads a balance row with SELECT ... FOR UPDATE
func (r *GormBalanceRepository) FindForUpdate(ctx context.Context, resourceID, unitID uuid.UUID) (*inventory.Balance, error) {
	var model models.BalanceModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("resource_id = ? AND unit_id = ?", resourceID, unitID).
		First(&model).Error
	if err != nil {
		return nil, notFound(err, "lock balance")
	}
	return model.ToDomain(), nil
}

// Insert creates a new balance row. When a concurrent transaction has created
// the pair in the meantime, the quantity is added to that row instead.
func (r *GormBalanceRepository) Insert(ctx context.Context, balance *inventory.Balance) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "resource_id"}, {Name: "unit_id"}},
			DoUpdates: clause.Set{
				{Column: clause.Column{Name: "quantity"}, Value: gorm.Expr("balances.quantity + excluded.quantity")},
				{Column: clause.Column{Name: "updated_at"}, Value: gorm.Expr("excluded.updated_at")},
			},
		}).
		Create(models.BalanceModelFromDomain(balance)).Error
	if err != nil {
		return reference(err, "insert balance")
	}
	return nil
}

// Update persists the quantity of an existing row
func (r *GormBalanceRepository) Update(ctx context.Context, balance *inventory.Balance) error {
	result := r.db.WithContext(ctx).
		Model(&models.BalanceModel{}).
		Where("resource_id = ? AND unit_id = ?", balance.ResourceID, balance.UnitID).
		Updates(map[string]any{
			"quantity":   balance.Quantity,
			"updated_at": balance.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("update balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a row
func (r *GormBalanceRepository) Delete(ctx context.Context, resourceID, unitID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("resource_id = ? AND unit_id = ?", resourceID, unitID).
		Delete(&models.BalanceModel{})
	if result.Error != nil {
		return fmt.Errorf("delete balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Find returns balance rows matching the filter
func (r *GormBalanceRepository) Find(ctx context.Context, filter inventory.BalanceFilter) ([]inventory.Balance, error) {
	query := r.db.WithContext(ctx).Model(&models.BalanceModel{})
	if len(filter.ResourceIDs) > 0 {
		query = query.Where("resource_id IN ?", filter.ResourceIDs)
	}
	if len(filter.UnitIDs) > 0 {
		query = query.Where("unit_id IN ?", filter.UnitIDs)
	}

	var rows []models.BalanceModel
	if err := query.Order("resource_id").Order("unit_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	out := make([]inventory.Balance, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// ExistsByResource checks whether any row references the resource
func (r *GormBalanceRepository) ExistsByResource(ctx context.Context, resourceID uuid.UUID) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.BalanceModel{}, "resource_id = ?", resourceID)
}

// ExistsByUnit checks whether any row references the unit
func (r *GormBalanceRepository) ExistsByUnit(ctx context.Context, unitID uuid.UUID) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.BalanceModel{}, "unit_id = ?", unitID)
}

var _ inventory.BalanceRepository = (*GormBalanceRepository)(nil)
