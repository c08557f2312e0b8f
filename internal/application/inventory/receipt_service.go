package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/inventory"
	"github.com/warehouse/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ReceiptService runs the receipt workflows. Every write re-derives the balance
// from the document lines inside a single transaction.
type ReceiptService struct {
	ledger
	receiptRepo inventory.ReceiptRepository
	txScope     TransactionScope
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(
	receiptRepo inventory.ReceiptRepository,
	txScope TransactionScope,
	adjuster *inventory.BalanceAdjuster,
	log *zap.Logger,
) *ReceiptService {
	return &ReceiptService{
		ledger:      newLedger(adjuster, log),
		receiptRepo: receiptRepo,
		txScope:     txScope,
	}
}

// SetLedgerMetrics sets the metrics recorder
func (s *ReceiptService) SetLedgerMetrics(m *telemetry.LedgerMetrics) {
	s.metrics = m
}

// SetNameDirectory sets the directory responses take reference names from
func (s *ReceiptService) SetNameDirectory(d NameDirectory) {
	s.names = d
}

// GetByID retrieves a receipt with its lines
func (s *ReceiptService) GetByID(ctx context.Context, id uuid.UUID) (*ReceiptResponse, error) {
	doc, err := s.receiptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out, err := receiptResponses(ctx, s.names, doc)
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// List retrieves receipts matching the filter, newest first
func (s *ReceiptService) List(ctx context.Context, filter DocumentListFilter) ([]ReceiptResponse, error) {
	domainFilter, err := filter.ToDomain()
	if err != nil {
		return nil, err
	}
	docs, err := s.receiptRepo.Find(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	refs := make([]*inventory.ReceiptDocument, len(docs))
	for i := range docs {
		refs[i] = &docs[i]
	}
	return receiptResponses(ctx, s.names, refs...)
}

// Create persists a receipt and adds every line to the balance
func (s *ReceiptService) Create(ctx context.Context, req CreateReceiptRequest) (*ReceiptResponse, error) {
	const op = "create_receipt"
	ctx, span := telemetry.StartServiceSpan(ctx, ledgerServiceName, "CreateReceipt")
	defer span.End()
	started := time.Now()

	doc, err := inventory.NewReceiptDocument(req.Number, req.Date, toLineInputs(req.Lines))
	if err != nil {
		return nil, s.finish(ctx, span, telemetry.DocumentKindReceipt, op, started, err)
	}
	span.SetAttributes(
		attribute.String(telemetry.SpanAttrDocumentID, doc.ID.String()),
		attribute.String(telemetry.SpanAttrDocumentNumber, doc.Number),
		attribute.Int(telemetry.SpanAttrLineCount, len(doc.Lines)),
	)

	var applied []inventory.Adjustment
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		exists, err := repos.ReceiptRepo().ExistsByNumber(ctx, doc.Number, uuid.Nil)
		if err != nil {
			return err
		}
		if exists {
			return inventory.DuplicateNumberError(doc.Number)
		}
		if err := ensureLineReferencesExist(ctx, repos, doc.Lines); err != nil {
			return err
		}
		if err := repos.ReceiptRepo().Create(ctx, doc); err != nil {
			return err
		}
		applied, err = s.adjuster.ApplyLines(ctx, repos.BalanceRepo(), doc.Lines, inventory.Inbound)
		return err
	})
	if err != nil {
		return nil, s.finish(ctx, span, telemetry.DocumentKindReceipt, op, started, err)
	}

	s.recordAdjustments(ctx, inventory.Inbound, applied)
	s.logger(ctx).Info("receipt created",
		zap.String("document_id", doc.ID.String()),
		zap.String("number", doc.Number),
		zap.Int("lines", len(doc.Lines)),
	)
	_ = s.finish(ctx, span, telemetry.DocumentKindReceipt, op, started, nil)
	response := s.describeReceipt(ctx, doc)
	return &response, nil
}

// Update replaces a receipt's header and lines. The previous lines are taken
// out of stock before the new ones are added, so the update fails with
// InsufficientStock when stock the receipt brought in has been shipped since.
func (s *ReceiptService) Update(ctx context.Context, id uuid.UUID, req UpdateReceiptRequest) (*ReceiptResponse, error) {
	const op = "update_receipt"
	ctx, span := telemetry.StartServiceSpan(ctx, ledgerServiceName, "UpdateReceipt",
		telemetry.WithAttribute(telemetry.SpanAttrDocumentID, id.String()))
	defer span.End()
	started := time.Now()

	var (
		doc      *inventory.ReceiptDocument
		reverted []inventory.Adjustment
		applied  []inventory.Adjustment
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		doc, err = repos.ReceiptRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		previous, err := doc.Update(req.Number, req.Date, toLineInputs(req.Lines))
		if err != nil {
			return err
		}
		exists, err := repos.ReceiptRepo().ExistsByNumber(ctx, doc.Number, doc.ID)
		if err != nil {
			return err
		}
		if exists {
			return inventory.DuplicateNumberError(doc.Number)
		}
		if err := ensureLineReferencesExist(ctx, repos, doc.Lines); err != nil {
			return err
		}

		reverted, err = s.reverter.ApplyLines(ctx, repos.BalanceRepo(), previous, inventory.Outbound)
		if err != nil {
			return err
		}
		if err := repos.ReceiptRepo().Update(ctx, doc); err != nil {
			return err
		}
		applied, err = s.adjuster.ApplyLines(ctx, repos.BalanceRepo(), doc.Lines, inventory.Inbound)
		return err
	})
	if err != nil {
		return nil, s.finish(ctx, span, telemetry.DocumentKindReceipt, op, started, err)
	}

	s.recordAdjustments(ctx, inventory.Outbound, reverted)
	s.recordAdjustments(ctx, inventory.Inbound, applied)
	s.logger(ctx).Info("receipt updated",
		zap.String("document_id", doc.ID.String()),
		zap.String("number", doc.Number),
		zap.Int("version", doc.Version),
	)
	_ = s.finish(ctx, span, telemetry.DocumentKindReceipt, op, started, nil)
	response := s.describeReceipt(ctx, doc)
	return &response, nil
}

// Delete takes the receipt's lines out of stock and removes the document
func (s *ReceiptService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "delete_receipt"
	ctx, span := telemetry.StartServiceSpan(ctx, ledgerServiceName, "DeleteReceipt",
		telemetry.WithAttribute(telemetry.SpanAttrDocumentID, id.String()))
	defer span.End()
	started := time.Now()

	var reverted []inventory.Adjustment
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		doc, err := repos.ReceiptRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		reverted, err = s.reverter.ApplyLines(ctx, repos.BalanceRepo(), doc.Lines, inventory.Outbound)
		if err != nil {
			return err
		}
		return repos.ReceiptRepo().Delete(ctx, doc.ID)
	})
	if err != nil {
		return s.finish(ctx, span, telemetry.DocumentKindReceipt, op, started, err)
	}

	s.recordAdjustments(ctx, inventory.Outbound, reverted)
	s.logger(ctx).Info("receipt deleted", zap.String("document_id", id.String()))
	return s.finish(ctx, span, telemetry.DocumentKindReceipt, op, started, nil)
}
