package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/warehouse/backend/internal/domain/catalog"
)

// MockResourceRepository is a mock implementation of catalog.ResourceRepository
type MockResourceRepository struct {
	mock.Mock
}

func (m *MockResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Resource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Resource), args.Error(1)
}

func (m *MockResourceRepository) FindAll(ctx context.Context) ([]catalog.Resource, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Resource), args.Error(1)
}

func (m *MockResourceRepository) FindActive(ctx context.Context) ([]catalog.Resource, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Resource), args.Error(1)
}

func (m *MockResourceRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockResourceRepository) ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockResourceRepository) Save(ctx context.Context, resource *catalog.Resource) error {
	return m.Called(ctx, resource).Error(0)
}

func (m *MockResourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockUnitRepository is a mock implementation of catalog.UnitRepository
type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindAll(ctx context.Context) ([]catalog.Unit, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindActive(ctx context.Context) ([]catalog.Unit, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Unit), args.Error(1)
}

func (m *MockUnitRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUnitRepository) ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUnitRepository) Save(ctx context.Context, unit *catalog.Unit) error {
	return m.Called(ctx, unit).Error(0)
}

func (m *MockUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockUsageChecker is a mock implementation of the usage checker interfaces
type MockUsageChecker struct {
	mock.Mock
}

func (m *MockUsageChecker) CanDeleteResource(ctx context.Context, resourceID uuid.UUID) (bool, error) {
	args := m.Called(ctx, resourceID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUsageChecker) CanDeleteUnit(ctx context.Context, unitID uuid.UUID) (bool, error) {
	args := m.Called(ctx, unitID)
	return args.Bool(0), args.Error(1)
}
