package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/inventory"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ShipmentService runs the shipment workflows and enforces the
// Draft -> Signed -> Revoked lifecycle. Only signing and revoking move stock.
type ShipmentService struct {
	ledger
	shipmentRepo inventory.ShipmentRepository
	txScope      TransactionScope
}

// NewShipmentService creates a new ShipmentService
func NewShipmentService(
	shipmentRepo inventory.ShipmentRepository,
	txScope TransactionScope,
	adjuster *inventory.BalanceAdjuster,
	log *zap.Logger,
) *ShipmentService {
	return &ShipmentService{
		ledger:       newLedger(adjuster, log),
		shipmentRepo: shipmentRepo,
		txScope:      txScope,
	}
}

// SetLedgerMetrics sets the metrics recorder
func (s *ShipmentService) SetLedgerMetrics(m *telemetry.LedgerMetrics) {
	s.metrics = m
}

// SetNameDirectory sets the directory responses take reference names from
func (s *ShipmentService) SetNameDirectory(d NameDirectory) {
	s.names = d
}

// GetByID retrieves a shipment with its lines
func (s *ShipmentService) GetByID(ctx context.Context, id uuid.UUID) (*ShipmentResponse, error) {
	doc, err := s.shipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out, err := shipmentResponses(ctx, s.names, doc)
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// List retrieves shipments matching the filter, newest first
func (s *ShipmentService) List(ctx context.Context, filter DocumentListFilter) ([]ShipmentResponse, error) {
	domainFilter, err := filter.ToDomain()
	if err != nil {
		return nil, err
	}
	docs, err := s.shipmentRepo.Find(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	refs := make([]*inventory.ShipmentDocument, len(docs))
	for i := range docs {
		refs[i] = &docs[i]
	}
	return shipmentResponses(ctx, s.names, refs...)
}

func ensureClientExists(ctx context.Context, repos TransactionalRepositories, clientID uuid.UUID) error {
	exists, err := repos.ClientRepo().ExistsByID(ctx, clientID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewDomainError(shared.CodeNotFound, "Client not found")
	}
	return nil
}

func ensureShipmentNumberFree(ctx context.Context, repos TransactionalRepositories, number string, excludeID uuid.UUID) error {
	exists, err := repos.ShipmentRepo().ExistsByNumber(ctx, number, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return inventory.DuplicateNumberError(number)
	}
	return nil
}

func annotateShipment(span trace.Span, doc *inventory.ShipmentDocument) {
	span.SetAttributes(
		attribute.String(telemetry.SpanAttrDocumentID, doc.ID.String()),
		attribute.String(telemetry.SpanAttrDocumentNumber, doc.Number),
		attribute.String(telemetry.SpanAttrDocumentState, doc.State.String()),
		attribute.String(telemetry.SpanAttrClientID, doc.ClientID.String()),
		attribute.Int(telemetry.SpanAttrLineCount, len(doc.Lines)),
	)
}

// Create persists a draft shipment; drafts do not affect the balance
func (s *ShipmentService) Create(ctx context.Context, req CreateShipmentRequest) (*ShipmentResponse, error) {
	const op = "create_shipment"
	ctx, span := telemetry.StartServiceSpan(ctx, ledgerServiceName, "CreateShipment")
	defer span.End()
	started := time.Now()

	doc, err := inventory.NewShipmentDocument(req.Number, req.ClientID, req.Date, toLineInputs(req.Lines))
	if err != nil {
		return nil, s.finish(ctx, span, telemetry.DocumentKindShipment, op, started, err)
	}
	annotateShipment(span, doc)

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := ensureShipmentNumberFree(ctx, repos, doc.Number, uuid.Nil); err != nil {
			return err
		}
		if err := ensureClientExists(ctx, repos, doc.ClientID); err != nil {
			return err
		}
		if err := ensureLineReferencesExist(ctx, repos, doc.Lines); err != nil {
			return err
		}
		return repos.ShipmentRepo().Create(ctx, doc)
	})
	if err != nil {
		return nil, s.finish(ctx, span, telemetry.DocumentKindShipment, op, started, err)
	}

	s.logger(ctx).Info("shipment created",
		zap.String("document_id", doc.ID.String()),
		zap.String("number", doc.Number),
	)
	_ = s.finish(ctx, span, telemetry.DocumentKindShipment, op, started, nil)
	response := s.describeShipment(ctx, doc)
	return &response, nil
}

// Update replaces the header and lines of a draft shipment
func (s *ShipmentService) Update(ctx context.Context, id uuid.UUID, req UpdateShipmentRequest) (*ShipmentResponse, error) {
	const op = "update_shipment"
	ctx, span := telemetry.StartServiceSpan(ctx, ledgerServiceName, "UpdateShipment",
		telemetry.WithAttribute(telemetry.SpanAttrDocumentID, id.String()))
	defer span.End()
	started := time.Now()

	var doc *inventory.ShipmentDocument
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		doc, err = repos.ShipmentRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := doc.Update(req.Number, req.ClientID, req.Date, toLineInputs(req.Lines)); err != nil {
			return err
		}
		if err := ensureShipmentNumberFree(ctx, repos, doc.Number, doc.ID); err != nil {
			return err
		}
		if err := ensureClientExists(ctx, repos, doc.ClientID); err != nil {
			return err
		}
		if err := ensureLineReferencesExist(ctx, repos, doc.Lines); err != nil {
			return err
		}
		return repos.ShipmentRepo().Update(ctx, doc)
	})
	if err != nil {
		return nil, s.finish(ctx, span, telemetry.DocumentKindShipment, op, started, err)
	}

	annotateShipment(span, doc)
	s.logger(ctx).Info("shipment updated",
		zap.String("document_id", doc.ID.String()),
		zap.Int("version", doc.Version),
	)
	_ = s.finish(ctx, span, telemetry.DocumentKindShipment, op, started, nil)
	response := s.describeShipment(ctx, doc)
	return &response, nil
}

// Sign moves a draft to Signed and takes its lines out of stock.
// InsufficientStock on any line leaves both the balance and the draft untouched.
func (s *ShipmentService) Sign(ctx context.Context, id uuid.UUID) (*ShipmentResponse, error) {
	const op = "sign_shipment"
	ctx, span := telemetry.StartServiceSpan(ctx, ledgerServiceName, "SignShipment",
		telemetry.WithAttribute(telemetry.SpanAttrDocumentID, id.String()))
	defer span.End()
	started := time.Now()

	var (
		doc     *inventory.ShipmentDocument
		applied []inventory.Adjustment
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		doc, err = repos.ShipmentRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := doc.Sign(); err != nil {
			return err
		}
		applied, err = s.adjuster.ApplyLines(ctx, repos.BalanceRepo(), doc.Lines, inventory.Outbound)
		if err != nil {
			return err
		}
		return repos.ShipmentRepo().UpdateState(ctx, doc)
	})
	if err != nil {
		return nil, s.finish(ctx, span, telemetry.DocumentKindShipment, op, started, err)
	}

	annotateShipment(span, doc)
	s.recordAdjustments(ctx, inventory.Outbound, applied)
	s.logger(ctx).Info("shipment signed",
		zap.String("document_id", doc.ID.String()),
		zap.String("number", doc.Number),
	)
	_ = s.finish(ctx, span, telemetry.DocumentKindShipment, op, started, nil)
	response := s.describeShipment(ctx, doc)
	return &response, nil
}

// Revoke moves a signed shipment to Revoked and returns its lines to stock
func (s *ShipmentService) Revoke(ctx context.Context, id uuid.UUID) (*ShipmentResponse, error) {
	const op = "revoke_shipment"
	ctx, span := telemetry.StartServiceSpan(ctx, ledgerServiceName, "RevokeShipment",
		telemetry.WithAttribute(telemetry.SpanAttrDocumentID, id.String()))
	defer span.End()
	started := time.Now()

	var (
		doc     *inventory.ShipmentDocument
		applied []inventory.Adjustment
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		doc, err = repos.ShipmentRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := doc.Revoke(); err != nil {
			return err
		}
		applied, err = s.adjuster.ApplyLines(ctx, repos.BalanceRepo(), doc.Lines, inventory.Inbound)
		if err != nil {
			return err
		}
		return repos.ShipmentRepo().UpdateState(ctx, doc)
	})
	if err != nil {
		return nil, s.finish(ctx, span, telemetry.DocumentKindShipment, op, started, err)
	}

	annotateShipment(span, doc)
	s.recordAdjustments(ctx, inventory.Inbound, applied)
	s.logger(ctx).Info("shipment revoked",
		zap.String("document_id", doc.ID.String()),
		zap.String("number", doc.Number),
	)
	_ = s.finish(ctx, span, telemetry.DocumentKindShipment, op, started, nil)
	response := s.describeShipment(ctx, doc)
	return &response, nil
}

// Delete removes a shipment. A signed shipment is implicitly revoked first so
// its lines return to stock in the same transaction.
func (s *ShipmentService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "delete_shipment"
	ctx, span := telemetry.StartServiceSpan(ctx, ledgerServiceName, "DeleteShipment",
		telemetry.WithAttribute(telemetry.SpanAttrDocumentID, id.String()))
	defer span.End()
	started := time.Now()

	var (
		wasSigned bool
		applied   []inventory.Adjustment
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		doc, err := repos.ShipmentRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if doc.HoldsStock() {
			wasSigned = true
			applied, err = s.adjuster.ApplyLines(ctx, repos.BalanceRepo(), doc.Lines, inventory.Inbound)
			if err != nil {
				return err
			}
		}
		return repos.ShipmentRepo().Delete(ctx, doc.ID)
	})
	if err != nil {
		return s.finish(ctx, span, telemetry.DocumentKindShipment, op, started, err)
	}

	s.recordAdjustments(ctx, inventory.Inbound, applied)
	s.logger(ctx).Info("shipment deleted",
		zap.String("document_id", id.String()),
		zap.Bool("revoked", wasSigned),
	)
	return s.finish(ctx, span, telemetry.DocumentKindShipment, op, started, nil)
}
