package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	appinv "github.com/warehouse/backend/internal/application/inventory"
	"github.com/warehouse/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormNameDirectory resolves reference names with one IN query per kind
type GormNameDirectory struct {
	db *gorm.DB
}

// NewGormNameDirectory creates a new GormNameDirectory
func NewGormNameDirectory(db *gorm.DB) *GormNameDirectory {
	return &GormNameDirectory{db: db}
}

// ResourceNames returns the names of the given resources, archived ones included
func (d *GormNameDirectory) ResourceNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	return d.names(ctx, &models.ResourceModel{}, "resource", ids)
}

// UnitNames returns the names of the given units, archived ones included
func (d *GormNameDirectory) UnitNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	return d.names(ctx, &models.UnitModel{}, "unit", ids)
}

// ClientNames returns the names of the given clients, archived ones included
func (d *GormNameDirectory) ClientNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	return d.names(ctx, &models.ClientModel{}, "client", ids)
}

type namedRow struct {
	ID   uuid.UUID
	Name string
}

func (d *GormNameDirectory) names(ctx context.Context, model any, kind string, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []namedRow
	if err := d.db.WithContext(ctx).Model(model).Select("id", "name").Where("id IN ?", ids).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("load %s names: %w", kind, err)
	}
	for _, row := range rows {
		out[row.ID] = row.Name
	}
	return out, nil
}

var _ appinv.NameDirectory = (*GormNameDirectory)(nil)
