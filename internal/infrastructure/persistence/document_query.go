package persistence

import (
	"github.com/warehouse/backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// applyDocumentFilter narrows a document header query. lineTable names the
// table holding the document's lines for the resource/unit predicates.
func applyDocumentFilter(query *gorm.DB, filter inventory.DocumentFilter, lineTable string) *gorm.DB {
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", *filter.DateTo)
	}
	if len(filter.Numbers) > 0 {
		query = query.Where("number IN ?", filter.Numbers)
	}
	if len(filter.ResourceIDs) > 0 {
		query = query.Where("id IN (SELECT document_id FROM "+lineTable+" WHERE resource_id IN ?)", filter.ResourceIDs)
	}
	if len(filter.UnitIDs) > 0 {
		query = query.Where("id IN (SELECT document_id FROM "+lineTable+" WHERE unit_id IN ?)", filter.UnitIDs)
	}
	return query.Order("date DESC").Order("number")
}

func orderLines(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
