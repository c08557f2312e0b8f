package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/inventory"
)

// NameDirectory resolves display names for the resources, units and clients
// a read model references. Ids without a row are left out of the result.
type NameDirectory interface {
	ResourceNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
	UnitNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
	ClientNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// nameRequest collects the distinct references of one response so they are
// resolved with a single lookup per kind.
type nameRequest struct {
	resources idSet
	units     idSet
	clients   idSet
}

type idSet struct {
	seen map[uuid.UUID]struct{}
	ids  []uuid.UUID
}

func (s *idSet) add(id uuid.UUID) {
	if s.seen == nil {
		s.seen = make(map[uuid.UUID]struct{})
	}
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.ids = append(s.ids, id)
}

func (r *nameRequest) addPair(resourceID, unitID uuid.UUID) {
	r.resources.add(resourceID)
	r.units.add(unitID)
}

func (r *nameRequest) addLines(lines []inventory.DocumentLine) {
	for _, l := range lines {
		r.addPair(l.ResourceID, l.UnitID)
	}
}

func (r *nameRequest) addClient(id uuid.UUID) {
	r.clients.add(id)
}

// resolve looks the collected ids up. A nil directory yields no names.
func (r *nameRequest) resolve(ctx context.Context, dir NameDirectory) (referenceNames, error) {
	var names referenceNames
	if dir == nil {
		return names, nil
	}
	var err error
	if len(r.resources.ids) > 0 {
		if names.resources, err = dir.ResourceNames(ctx, r.resources.ids); err != nil {
			return referenceNames{}, err
		}
	}
	if len(r.units.ids) > 0 {
		if names.units, err = dir.UnitNames(ctx, r.units.ids); err != nil {
			return referenceNames{}, err
		}
	}
	if len(r.clients.ids) > 0 {
		if names.clients, err = dir.ClientNames(ctx, r.clients.ids); err != nil {
			return referenceNames{}, err
		}
	}
	return names, nil
}

// referenceNames fills the name fields of already converted responses
type referenceNames struct {
	resources map[uuid.UUID]string
	units     map[uuid.UUID]string
	clients   map[uuid.UUID]string
}

func (n referenceNames) fillLines(lines []LineResponse) {
	for i := range lines {
		lines[i].ResourceName = n.resources[lines[i].ResourceID]
		lines[i].UnitName = n.units[lines[i].UnitID]
	}
}

func (n referenceNames) fillReceipt(r *ReceiptResponse) {
	n.fillLines(r.Lines)
}

func (n referenceNames) fillShipment(s *ShipmentResponse) {
	s.ClientName = n.clients[s.ClientID]
	n.fillLines(s.Lines)
}

func (n referenceNames) fillBalance(b *BalanceResponse) {
	b.ResourceName = n.resources[b.ResourceID]
	b.UnitName = n.units[b.UnitID]
}

// receiptResponses converts docs and names their references in one lookup per kind
func receiptResponses(ctx context.Context, dir NameDirectory, docs ...*inventory.ReceiptDocument) ([]ReceiptResponse, error) {
	var req nameRequest
	out := make([]ReceiptResponse, len(docs))
	for i, doc := range docs {
		req.addLines(doc.Lines)
		out[i] = ToReceiptResponse(doc)
	}
	names, err := req.resolve(ctx, dir)
	if err != nil {
		return nil, err
	}
	for i := range out {
		names.fillReceipt(&out[i])
	}
	return out, nil
}

// shipmentResponses converts docs and names their references in one lookup per kind
func shipmentResponses(ctx context.Context, dir NameDirectory, docs ...*inventory.ShipmentDocument) ([]ShipmentResponse, error) {
	var req nameRequest
	out := make([]ShipmentResponse, len(docs))
	for i, doc := range docs {
		req.addClient(doc.ClientID)
		req.addLines(doc.Lines)
		out[i] = ToShipmentResponse(doc)
	}
	names, err := req.resolve(ctx, dir)
	if err != nil {
		return nil, err
	}
	for i := range out {
		names.fillShipment(&out[i])
	}
	return out, nil
}

func balanceResponses(ctx context.Context, dir NameDirectory, balances []inventory.Balance) ([]BalanceResponse, error) {
	var req nameRequest
	out := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		req.addPair(b.ResourceID, b.UnitID)
		out[i] = ToBalanceResponse(b)
	}
	names, err := req.resolve(ctx, dir)
	if err != nil {
		return nil, err
	}
	for i := range out {
		names.fillBalance(&out[i])
	}
	return out, nil
}
