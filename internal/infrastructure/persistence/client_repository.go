package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/partner"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormClientRepository implements partner.ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByID finds a client by its ID
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "find client")
	}
	return model.ToDomain(), nil
}

// FindAll returns all clients ordered by name
func (r *GormClientRepository) FindAll(ctx context.Context) ([]partner.Client, error) {
	return r.find(r.db.WithContext(ctx))
}

// FindActive returns clients that are not archived
func (r *GormClientRepository) FindActive(ctx context.Context) ([]partner.Client, error) {
	return r.find(r.db.WithContext(ctx).Where("state = ?", shared.EntityStateActive))
}

func (r *GormClientRepository) find(query *gorm.DB) ([]partner.Client, error) {
	var rows []models.ClientModel
	if err := query.Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	out := make([]partner.Client, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// ExistsByID checks whether a client exists
func (r *GormClientRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.ClientModel{}, "id = ?", id)
}

// ExistsByName checks whether another client already uses the name
func (r *GormClientRepository) ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	return exists(query, &models.ClientModel{}, "name = ?", name)
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, client *partner.Client) error {
	if err := r.db.WithContext(ctx).Save(models.ClientModelFromDomain(client)).Error; err != nil {
		return duplicate(err, "save client", shared.NewDomainError(shared.CodeAlreadyExists,
			fmt.Sprintf("Client with name '%s' already exists", client.Name)))
	}
	return nil
}

// Delete removes a client
func (r *GormClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ClientModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ partner.ClientRepository = (*GormClientRepository)(nil)
