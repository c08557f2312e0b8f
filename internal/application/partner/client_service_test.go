package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/warehouse/backend/internal/domain/partner"
	"github.com/warehouse/backend/internal/domain/shared"
)

// MockClientRepository is a mock implementation of partner.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context) ([]partner.Client, error) {
	args := m.Called(ctx)
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindActive(ctx context.Context) ([]partner.Client, error) {
	args := m.Called(ctx)
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientRepository) ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *partner.Client) error {
	return m.Called(ctx, client).Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockClientUsageChecker struct {
	mock.Mock
}

func (m *MockClientUsageChecker) CanDeleteClient(ctx context.Context, clientID uuid.UUID) (bool, error) {
	args := m.Called(ctx, clientID)
	return args.Bool(0), args.Error(1)
}

func TestClientService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := NewClientService(repo, new(MockClientUsageChecker))
		repo.On("ExistsByName", ctx, "Acme", uuid.Nil).Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.Client")).Return(nil)

		resp, err := svc.Create(ctx, CreateClientRequest{Name: " Acme ", Address: "1 Main St"})
		require.NoError(t, err)
		assert.Equal(t, "Acme", resp.Name)
		assert.Equal(t, "1 Main St", resp.Address)
		assert.Equal(t, "ACTIVE", resp.State)
	})

	t.Run("duplicate name", func(t *testing.T) {
		repo := new(MockClientRepository)
		svc := NewClientService(repo, new(MockClientUsageChecker))
		repo.On("ExistsByName", ctx, "Acme", uuid.Nil).Return(true, nil)

		_, err := svc.Create(ctx, CreateClientRequest{Name: "Acme"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("empty name", func(t *testing.T) {
		svc := NewClientService(new(MockClientRepository), new(MockClientUsageChecker))
		_, err := svc.Create(ctx, CreateClientRequest{Name: ""})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestClientService_UpdateArchiveRestore(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	svc := NewClientService(repo, new(MockClientUsageChecker))
	client, err := partner.NewClient("Globex", "")
	require.NoError(t, err)

	repo.On("FindByID", ctx, client.ID).Return(client, nil)
	repo.On("ExistsByName", ctx, "Globex Corp", client.ID).Return(false, nil)
	repo.On("Save", ctx, client).Return(nil)

	resp, err := svc.Update(ctx, client.ID, UpdateClientRequest{Name: "Globex Corp", Address: "Cypress Creek"})
	require.NoError(t, err)
	assert.Equal(t, "Globex Corp", resp.Name)
	assert.Equal(t, "Cypress Creek", resp.Address)

	resp, err = svc.Archive(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "ARCHIVED", resp.State)

	resp, err = svc.Restore(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", resp.State)

	_, err = svc.Restore(ctx, client.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestClientService_Delete(t *testing.T) {
	ctx := context.Background()
	client, err := partner.NewClient("Initech", "")
	require.NoError(t, err)

	t.Run("referenced by shipment", func(t *testing.T) {
		repo := new(MockClientRepository)
		usage := new(MockClientUsageChecker)
		svc := NewClientService(repo, usage)
		repo.On("FindByID", ctx, client.ID).Return(client, nil)
		usage.On("CanDeleteClient", ctx, client.ID).Return(false, nil)

		assert.ErrorIs(t, svc.Delete(ctx, client.ID), shared.ErrInUse)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("unreferenced", func(t *testing.T) {
		repo := new(MockClientRepository)
		usage := new(MockClientUsageChecker)
		svc := NewClientService(repo, usage)
		repo.On("FindByID", ctx, client.ID).Return(client, nil)
		usage.On("CanDeleteClient", ctx, client.ID).Return(true, nil)
		repo.On("Delete", ctx, client.ID).Return(nil)

		require.NoError(t, svc.Delete(ctx, client.ID))
		repo.AssertExpectations(t)
	})
}
