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

// GormReceiptRepository implements inventory.ReceiptRepository using GORM
type GormReceiptRepository struct {
	db *gorm.DB
}

// NewGormReceiptRepository creates a new GormReceiptRepository
func NewGormReceiptRepository(db *gorm.DB) *GormReceiptRepository {
	return &GormReceiptRepository{db: db}
}

// FindByID loads a receipt with its lines
func (r *GormReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.ReceiptDocument, error) {
	return r.load(ctx, r.db.WithContext(ctx), id)
}

// FindByIDForUpdate loads a receipt with its lines and locks the header row
func (r *GormReceiptRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.ReceiptDocument, error) {
	return r.load(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormReceiptRepository) load(ctx context.Context, query *gorm.DB, id uuid.UUID) (*inventory.ReceiptDocument, error) {
	var model models.ReceiptDocumentModel
	if err := query.First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "find receipt")
	}
	if err := r.db.WithContext(ctx).
		Where("document_id = ?", id).
		Order("position").
		Find(&model.Lines).Error; err != nil {
		return nil, fmt.Errorf("load receipt lines: %w", err)
	}
	return model.ToDomain(), nil
}

// Find returns receipts matching the filter, newest date first
func (r *GormReceiptRepository) Find(ctx context.Context, filter inventory.DocumentFilter) ([]inventory.ReceiptDocument, error) {
	query := applyDocumentFilter(r.db.WithContext(ctx).Model(&models.ReceiptDocumentModel{}), filter, models.ReceiptLineModel{}.TableName())

	var rows []models.ReceiptDocumentModel
	if err := query.Preload("Lines", orderLines).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	out := make([]inventory.ReceiptDocument, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// ExistsByNumber checks whether another receipt holds the number
func (r *GormReceiptRepository) ExistsByNumber(ctx context.Context, number string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	return exists(query, &models.ReceiptDocumentModel{}, "number = ?", number)
}

// Create inserts the header and its lines
func (r *GormReceiptRepository) Create(ctx context.Context, doc *inventory.ReceiptDocument) error {
	model := models.ReceiptDocumentModelFromDomain(doc)
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(model).Error; err != nil {
		return duplicate(err, "create receipt", inventory.DuplicateNumberError(doc.Number))
	}
	return r.insertLines(db, model.Lines)
}

// Update persists header changes guarded by the version and replaces the lines
func (r *GormReceiptRepository) Update(ctx context.Context, doc *inventory.ReceiptDocument) error {
	db := r.db.WithContext(ctx)
	result := db.Model(&models.ReceiptDocumentModel{}).
		Where("id = ? AND version = ?", doc.ID, doc.Version-1).
		Updates(map[string]any{
			"number":     doc.Number,
			"date":       doc.Date,
			"version":    doc.Version,
			"updated_at": doc.UpdatedAt,
		})
	if result.Error != nil {
		return duplicate(result.Error, "update receipt", inventory.DuplicateNumberError(doc.Number))
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}

	if err := db.Where("document_id = ?", doc.ID).Delete(&models.ReceiptLineModel{}).Error; err != nil {
		return fmt.Errorf("delete receipt lines: %w", err)
	}
	return r.insertLines(db, models.ReceiptLineModelsFromDomain(doc.Lines))
}

func (r *GormReceiptRepository) insertLines(db *gorm.DB, lines []models.ReceiptLineModel) error {
	if len(lines) == 0 {
		return nil
	}
	if err := db.Create(&lines).Error; err != nil {
		return reference(err, "insert receipt lines")
	}
	return nil
}

// Delete removes the lines and then the header
func (r *GormReceiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("document_id = ?", id).Delete(&models.ReceiptLineModel{}).Error; err != nil {
		return fmt.Errorf("delete receipt lines: %w", err)
	}
	result := db.Delete(&models.ReceiptDocumentModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete receipt: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsLineByResource checks whether any receipt line references the resource
func (r *GormReceiptRepository) ExistsLineByResource(ctx context.Context, resourceID uuid.UUID) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.ReceiptLineModel{}, "resource_id = ?", resourceID)
}

// ExistsLineByUnit checks whether any receipt line references the unit
func (r *GormReceiptRepository) ExistsLineByUnit(ctx context.Context, unitID uuid.UUID) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.ReceiptLineModel{}, "unit_id = ?", unitID)
}

var _ inventory.ReceiptRepository = (*GormReceiptRepository)(nil)
