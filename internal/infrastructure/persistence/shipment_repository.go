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

// GormShipmentRepository implements inventory.ShipmentRepository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// FindByID loads a shipment with its lines
func (r *GormShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.ShipmentDocument, error) {
	return r.load(ctx, r.db.WithContext(ctx), id)
}

// FindByIDForUpdate loads a shipment with its lines and locks the header row
func (r *GormShipmentRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.ShipmentDocument, error) {
	return r.load(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormShipmentRepository) load(ctx context.Context, query *gorm.DB, id uuid.UUID) (*inventory.ShipmentDocument, error) {
	var model models.ShipmentDocumentModel
	if err := query.First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "find shipment")
	}
	if err := r.db.WithContext(ctx).
		Where("document_id = ?", id).
		Order("position").
		Find(&model.Lines).Error; err != nil {
		return nil, fmt.Errorf("load shipment lines: %w", err)
	}
	return model.ToDomain(), nil
}

// Find returns shipments matching the filter, newest date first
func (r *GormShipmentRepository) Find(ctx context.Context, filter inventory.DocumentFilter) ([]inventory.ShipmentDocument, error) {
	query := applyDocumentFilter(r.db.WithContext(ctx).Model(&models.ShipmentDocumentModel{}), filter, models.ShipmentLineModel{}.TableName())

	var rows []models.ShipmentDocumentModel
	if err := query.Preload("Lines", orderLines).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	out := make([]inventory.ShipmentDocument, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// ExistsByNumber checks whether another shipment holds the number
func (r *GormShipmentRepository) ExistsByNumber(ctx context.Context, number string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	return exists(query, &models.ShipmentDocumentModel{}, "number = ?", number)
}

// Create inserts the header and its lines
func (r *GormShipmentRepository) Create(ctx context.Context, doc *inventory.ShipmentDocument) error {
	model := models.ShipmentDocumentModelFromDomain(doc)
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(model).Error; err != nil {
		return duplicate(err, "create shipment", inventory.DuplicateNumberError(doc.Number))
	}
	return r.insertLines(db, model.Lines)
}

// Update persists header changes guarded by the version and replaces the lines
func (r *GormShipmentRepository) Update(ctx context.Context, doc *inventory.ShipmentDocument) error {
	db := r.db.WithContext(ctx)
	if err := r.updateHeader(db, doc, map[string]any{
		"number":    doc.Number,
		"client_id": doc.ClientID,
		"date":      doc.Date,
	}); err != nil {
		return err
	}

	if err := db.Where("document_id = ?", doc.ID).Delete(&models.ShipmentLineModel{}).Error; err != nil {
		return fmt.Errorf("delete shipment lines: %w", err)
	}
	return r.insertLines(db, models.ShipmentLineModelsFromDomain(doc.Lines))
}

// UpdateState persists a state transition guarded by the version
func (r *GormShipmentRepository) UpdateState(ctx context.Context, doc *inventory.ShipmentDocument) error {
	return r.updateHeader(r.db.WithContext(ctx), doc, map[string]any{
		"state": doc.State,
	})
}

// updateHeader writes columns plus version and updated_at, expecting the row
// to still hold the version the document was loaded with.
func (r *GormShipmentRepository) updateHeader(db *gorm.DB, doc *inventory.ShipmentDocument, columns map[string]any) error {
	columns["version"] = doc.Version
	columns["updated_at"] = doc.UpdatedAt

	result := db.Model(&models.ShipmentDocumentModel{}).
		Where("id = ? AND version = ?", doc.ID, doc.Version-1).
		Updates(columns)
	if result.Error != nil {
		return duplicate(result.Error, "update shipment", inventory.DuplicateNumberError(doc.Number))
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

func (r *GormShipmentRepository) insertLines(db *gorm.DB, lines []models.ShipmentLineModel) error {
	if len(lines) == 0 {
		return nil
	}
	if err := db.Create(&lines).Error; err != nil {
		return reference(err, "insert shipment lines")
	}
	return nil
}

// Delete removes the lines and then the header
func (r *GormShipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("document_id = ?", id).Delete(&models.ShipmentLineModel{}).Error; err != nil {
		return fmt.Errorf("delete shipment lines: %w", err)
	}
	result := db.Delete(&models.ShipmentDocumentModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete shipment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsLineByResource checks whether any shipment line references the resource
func (r *GormShipmentRepository) ExistsLineByResource(ctx context.Context, resourceID uuid.UUID) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.ShipmentLineModel{}, "resource_id = ?", resourceID)
}

// ExistsLineByUnit checks whether any shipment line references the unit
func (r *GormShipmentRepository) ExistsLineByUnit(ctx context.Context, unitID uuid.UUID) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.ShipmentLineModel{}, "unit_id = ?", unitID)
}

// ExistsByClient checks whether any shipment references the client
func (r *GormShipmentRepository) ExistsByClient(ctx context.Context, clientID uuid.UUID) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.ShipmentDocumentModel{}, "client_id = ?", clientID)
}

var _ inventory.ShipmentRepository = (*GormShipmentRepository)(nil)
