package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/inventory"
)

// BalanceModel is the persistence model for a (resource, unit) balance row.
type BalanceModel struct {
	ResourceID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UnitID     uuid.UUID       `gorm:"type:uuid;primaryKey;index"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null;check:chk_balances_quantity,quantity > 0"`
	UpdatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BalanceModel) TableName() string {
	return "balances"
}

// ToDomain converts the persistence model to a domain Balance.
func (m *BalanceModel) ToDomain() *inventory.Balance {
	return &inventory.Balance{
		ResourceID: m.ResourceID,
		UnitID:     m.UnitID,
		Quantity:   m.Quantity,
		UpdatedAt:  m.UpdatedAt,
	}
}

// BalanceModelFromDomain creates a new persistence model from a domain Balance.
func BalanceModelFromDomain(b *inventory.Balance) *BalanceModel {
	return &BalanceModel{
		ResourceID: b.ResourceID,
		UnitID:     b.UnitID,
		Quantity:   b.Quantity,
		UpdatedAt:  b.UpdatedAt,
	}
}

// DocumentLineModel holds the columns shared by receipt and shipment lines.
type DocumentLineModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DocumentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position   int             `gorm:"not null"`
	ResourceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	UnitID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

func (m *DocumentLineModel) toDomain() inventory.DocumentLine {
	return inventory.DocumentLine{
		ID:         m.ID,
		DocumentID: m.DocumentID,
		Position:   m.Position,
		ResourceID: m.ResourceID,
		UnitID:     m.UnitID,
		Quantity:   m.Quantity,
	}
}

func lineModelFromDomain(l inventory.DocumentLine) DocumentLineModel {
	return DocumentLineModel{
		ID:         l.ID,
		DocumentID: l.DocumentID,
		Position:   l.Position,
		ResourceID: l.ResourceID,
		UnitID:     l.UnitID,
		Quantity:   l.Quantity,
	}
}

// ReceiptDocumentModel is the persistence model for the ReceiptDocument aggregate root.
type ReceiptDocumentModel struct {
	AggregateModel
	Number string             `gorm:"type:varchar(50);not null;uniqueIndex:idx_receipt_documents_number"`
	Date   time.Time          `gorm:"not null;index"`
	Lines  []ReceiptLineModel `gorm:"foreignKey:DocumentID;references:ID"`
}

// TableName returns the table name for GORM
func (ReceiptDocumentModel) TableName() string {
	return "receipt_documents"
}

// ReceiptLineModel is the persistence model for a receipt line.
type ReceiptLineModel struct {
	DocumentLineModel
}

// TableName returns the table name for GORM
func (ReceiptLineModel) TableName() string {
	return "receipt_lines"
}

// ToDomain converts the persistence model to a domain ReceiptDocument.
func (m *ReceiptDocumentModel) ToDomain() *inventory.ReceiptDocument {
	doc := &inventory.ReceiptDocument{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Number:            m.Number,
		Date:              m.Date,
		Lines:             make([]inventory.DocumentLine, len(m.Lines)),
	}
	for i := range m.Lines {
		doc.Lines[i] = m.Lines[i].toDomain()
	}
	return doc
}

// ReceiptDocumentModelFromDomain creates a new persistence model from a domain ReceiptDocument.
func ReceiptDocumentModelFromDomain(d *inventory.ReceiptDocument) *ReceiptDocumentModel {
	m := &ReceiptDocumentModel{
		Number: d.Number,
		Date:   d.Date,
		Lines:  ReceiptLineModelsFromDomain(d.Lines),
	}
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	return m
}

// ReceiptLineModelsFromDomain converts domain lines to receipt line models.
func ReceiptLineModelsFromDomain(lines []inventory.DocumentLine) []ReceiptLineModel {
	out := make([]ReceiptLineModel, len(lines))
	for i, l := range lines {
		out[i] = ReceiptLineModel{DocumentLineModel: lineModelFromDomain(l)}
	}
	return out
}

// ShipmentDocumentModel is the persistence model for the ShipmentDocument aggregate root.
type ShipmentDocumentModel struct {
	AggregateModel
	Number   string                  `gorm:"type:varchar(50);not null;uniqueIndex:idx_shipment_documents_number"`
	ClientID uuid.UUID               `gorm:"type:uuid;not null;index"`
	Date     time.Time               `gorm:"not null;index"`
	State    inventory.ShipmentState `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Lines    []ShipmentLineModel     `gorm:"foreignKey:DocumentID;references:ID"`
}

// TableName returns the table name for GORM
func (ShipmentDocumentModel) TableName() string {
	return "shipment_documents"
}

// ShipmentLineModel is the persistence model for a shipment line.
type ShipmentLineModel struct {
	DocumentLineModel
}

// TableName returns the table name for GORM
func (ShipmentLineModel) TableName() string {
	return "shipment_lines"
}

// ToDomain converts the persistence model to a domain ShipmentDocument.
func (m *ShipmentDocumentModel) ToDomain() *inventory.ShipmentDocument {
	doc := &inventory.ShipmentDocument{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Number:            m.Number,
		ClientID:          m.ClientID,
		Date:              m.Date,
		State:             m.State,
		Lines:             make([]inventory.DocumentLine, len(m.Lines)),
	}
	for i := range m.Lines {
		doc.Lines[i] = m.Lines[i].toDomain()
	}
	return doc
}

// ShipmentDocumentModelFromDomain creates a new persistence model from a domain ShipmentDocument.
func ShipmentDocumentModelFromDomain(d *inventory.ShipmentDocument) *ShipmentDocumentModel {
	m := &ShipmentDocumentModel{
		Number:   d.Number,
		ClientID: d.ClientID,
		Date:     d.Date,
		State:    d.State,
		Lines:    ShipmentLineModelsFromDomain(d.Lines),
	}
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	return m
}

// ShipmentLineModelsFromDomain converts domain lines to shipment line models.
func ShipmentLineModelsFromDomain(lines []inventory.DocumentLine) []ShipmentLineModel {
	out := make([]ShipmentLineModel, len(lines))
	for i, l := range lines {
		out[i] = ShipmentLineModel{DocumentLineModel: lineModelFromDomain(l)}
	}
	return out
}

// AllModels lists every model in dependency order, for AutoMigrate.
func AllModels() []any {
	return []any{
		&ResourceModel{},
		&UnitModel{},
		&ClientModel{},
		&BalanceModel{},
		&ReceiptDocumentModel{},
		&ReceiptLineModel{},
		&ShipmentDocumentModel{},
		&ShipmentLineModel{},
	}
}
