package inventory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/inventory"
	"github.com/warehouse/backend/internal/domain/partner"
	"github.com/warehouse/backend/internal/domain/shared"
)

// MockReceiptRepository is a mock implementation of inventory.ReceiptRepository
type MockReceiptRepository struct {
	mock.Mock
}

func (m *MockReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.ReceiptDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.ReceiptDocument), args.Error(1)
}

func (m *MockReceiptRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.ReceiptDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.ReceiptDocument), args.Error(1)
}

func (m *MockReceiptRepository) Find(ctx context.Context, filter inventory.DocumentFilter) ([]inventory.ReceiptDocument, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.ReceiptDocument), args.Error(1)
}

func (m *MockReceiptRepository) ExistsByNumber(ctx context.Context, number string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, number, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReceiptRepository) Create(ctx context.Context, doc *inventory.ReceiptDocument) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockReceiptRepository) Update(ctx context.Context, doc *inventory.ReceiptDocument) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockReceiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReceiptRepository) ExistsLineByResource(ctx context.Context, resourceID uuid.UUID) (bool, error) {
	args := m.Called(ctx, resourceID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReceiptRepository) ExistsLineByUnit(ctx context.Context, unitID uuid.UUID) (bool, error) {
	args := m.Called(ctx, unitID)
	return args.Bool(0), args.Error(1)
}

// MockShipmentRepository is a mock implementation of inventory.ShipmentRepository
type MockShipmentRepository struct {
	mock.Mock
}

func (m *MockShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.ShipmentDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.ShipmentDocument), args.Error(1)
}

func (m *MockShipmentRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.ShipmentDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.ShipmentDocument), args.Error(1)
}

func (m *MockShipmentRepository) Find(ctx context.Context, filter inventory.DocumentFilter) ([]inventory.ShipmentDocument, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.ShipmentDocument), args.Error(1)
}

func (m *MockShipmentRepository) ExistsByNumber(ctx context.Context, number string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, number, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockShipmentRepository) Create(ctx context.Context, doc *inventory.ShipmentDocument) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, doc *inventory.ShipmentDocument) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockShipmentRepository) UpdateState(ctx context.Context, doc *inventory.ShipmentDocument) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockShipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockShipmentRepository) ExistsLineByResource(ctx context.Context, resourceID uuid.UUID) (bool, error) {
	args := m.Called(ctx, resourceID)
	return args.Bool(0), args.Error(1)
}

func (m *MockShipmentRepository) ExistsLineByUnit(ctx context.Context, unitID uuid.UUID) (bool, error) {
	args := m.Called(ctx, unitID)
	return args.Bool(0), args.Error(1)
}

func (m *MockShipmentRepository) ExistsByClient(ctx context.Context, clientID uuid.UUID) (bool, error) {
	args := m.Called(ctx, clientID)
	return args.Bool(0), args.Error(1)
}

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

// catalogRefs answers catalog existence checks; every id exists unless marked missing
type catalogRefs struct {
	mu      sync.Mutex
	missing map[uuid.UUID]bool
	checked []uuid.UUID
}

func (c *catalogRefs) markMissing(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.missing[id] = true
}

func (c *catalogRefs) exists(id uuid.UUID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checked = append(c.checked, id)
	return !c.missing[id], nil
}

func (c *catalogRefs) checks() []uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]uuid.UUID(nil), c.checked...)
}

type stubResourceRepository struct {
	catalog.ResourceRepository
	refs *catalogRefs
}

func (r stubResourceRepository) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	return r.refs.exists(id)
}

type stubUnitRepository struct {
	catalog.UnitRepository
	refs *catalogRefs
}

func (r stubUnitRepository) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	return r.refs.exists(id)
}

// memoryBalanceRepository keeps balance rows in a map
type memoryBalanceRepository struct {
	mu   sync.Mutex
	rows map[inventory.BalanceKey]inventory.Balance
}

func newMemoryBalanceRepository() *memoryBalanceRepository {
	return &memoryBalanceRepository{rows: make(map[inventory.BalanceKey]inventory.Balance)}
}

func (r *memoryBalanceRepository) set(resourceID, unitID uuid.UUID, qty int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := inventory.BalanceKey{ResourceID: resourceID, UnitID: unitID}
	r.rows[key] = inventory.Balance{ResourceID: resourceID, UnitID: unitID, Quantity: decimal.NewFromInt(qty)}
}

func (r *memoryBalanceRepository) get(resourceID, unitID uuid.UUID) (decimal.Decimal, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.rows[inventory.BalanceKey{ResourceID: resourceID, UnitID: unitID}]
	return b.Quantity, ok
}

func (r *memoryBalanceRepository) FindForUpdate(_ context.Context, resourceID, unitID uuid.UUID) (*inventory.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.rows[inventory.BalanceKey{ResourceID: resourceID, UnitID: unitID}]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &b, nil
}

func (r *memoryBalanceRepository) Insert(_ context.Context, b *inventory.Balance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[b.Key()] = *b
	return nil
}

func (r *memoryBalanceRepository) Update(_ context.Context, b *inventory.Balance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[b.Key()] = *b
	return nil
}

func (r *memoryBalanceRepository) Delete(_ context.Context, resourceID, unitID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, inventory.BalanceKey{ResourceID: resourceID, UnitID: unitID})
	return nil
}

func (r *memoryBalanceRepository) Find(_ context.Context, filter inventory.BalanceFilter) ([]inventory.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []inventory.Balance{}
	for _, b := range r.rows {
		if len(filter.ResourceIDs) > 0 && !containsID(filter.ResourceIDs, b.ResourceID) {
			continue
		}
		if len(filter.UnitIDs) > 0 && !containsID(filter.UnitIDs, b.UnitID) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *memoryBalanceRepository) ExistsByResource(_ context.Context, resourceID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.rows {
		if k.ResourceID == resourceID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryBalanceRepository) ExistsByUnit(_ context.Context, unitID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.rows {
		if k.UnitID == unitID {
			return true, nil
		}
	}
	return false, nil
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// snapshotScope emulates rollback for the in-memory balance store: the rows are
// restored when fn fails.
type snapshotScope struct {
	*NoOpTransactionScope
	balances *memoryBalanceRepository
}

func (s *snapshotScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	s.balances.mu.Lock()
	saved := make(map[inventory.BalanceKey]inventory.Balance, len(s.balances.rows))
	for k, v := range s.balances.rows {
		saved[k] = v
	}
	s.balances.mu.Unlock()

	if err := fn(s.NoOpTransactionScope); err != nil {
		s.balances.mu.Lock()
		s.balances.rows = saved
		s.balances.mu.Unlock()
		return err
	}
	return nil
}

type testFixture struct {
	balances  *memoryBalanceRepository
	receipts  *MockReceiptRepository
	shipments *MockShipmentRepository
	clients   *MockClientRepository
	catalog   *catalogRefs
	scope     TransactionScope
}

func newTestFixture() *testFixture {
	f := &testFixture{
		balances:  newMemoryBalanceRepository(),
		receipts:  new(MockReceiptRepository),
		shipments: new(MockShipmentRepository),
		clients:   new(MockClientRepository),
		catalog:   &catalogRefs{missing: make(map[uuid.UUID]bool)},
	}
	f.scope = &snapshotScope{
		NoOpTransactionScope: NewNoOpTransactionScope(f.balances, f.receipts, f.shipments, f.clients,
			stubResourceRepository{refs: f.catalog}, stubUnitRepository{refs: f.catalog}),
		balances: f.balances,
	}
	return f
}
