package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/inventory"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/infrastructure/logger"
	"github.com/warehouse/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const ledgerServiceName = "ledger"

// ledger bundles what every document workflow needs to move stock:
// the configured adjuster, a strict adjuster used to take back stock a
// document previously added, logging, metrics and the name directory the
// responses are labelled from.
type ledger struct {
	adjuster *inventory.BalanceAdjuster
	reverter *inventory.BalanceAdjuster
	log      *zap.Logger
	metrics  *telemetry.LedgerMetrics
	names    NameDirectory
}

func newLedger(adjuster *inventory.BalanceAdjuster, log *zap.Logger) ledger {
	if adjuster == nil {
		adjuster = inventory.NewBalanceAdjuster(inventory.DefaultAdjustPolicy())
	}
	if log == nil {
		log = zap.NewNop()
	}
	return ledger{
		adjuster: adjuster,
		reverter: inventory.NewBalanceAdjuster(inventory.AdjustPolicy{RejectMissingBalance: true}),
		log:      log,
	}
}

func (l *ledger) logger(ctx context.Context) *logger.ContextLogger {
	return logger.WithLogger(ctx, l.log)
}

// describeReceipt labels a committed receipt. A failed lookup only costs the names.
func (l *ledger) describeReceipt(ctx context.Context, doc *inventory.ReceiptDocument) ReceiptResponse {
	out, err := receiptResponses(ctx, l.names, doc)
	if err != nil {
		l.logger(ctx).Warn("reference names unavailable", zap.String("document_id", doc.ID.String()), zap.Error(err))
		return ToReceiptResponse(doc)
	}
	return out[0]
}

// describeShipment labels a committed shipment. A failed lookup only costs the names.
func (l *ledger) describeShipment(ctx context.Context, doc *inventory.ShipmentDocument) ShipmentResponse {
	out, err := shipmentResponses(ctx, l.names, doc)
	if err != nil {
		l.logger(ctx).Warn("reference names unavailable", zap.String("document_id", doc.ID.String()), zap.Error(err))
		return ToShipmentResponse(doc)
	}
	return out[0]
}

// recordAdjustments reports committed adjustments; callers invoke it only after commit.
func (l *ledger) recordAdjustments(ctx context.Context, direction inventory.Direction, adjustments []inventory.Adjustment) {
	span := trace.SpanFromContext(ctx)
	for _, adj := range adjustments {
		l.metrics.RecordAdjustment(ctx, direction.String(), string(adj.Outcome))
		telemetry.AddEvent(span, "balance_adjusted",
			telemetry.SpanAttrResourceID, adj.Key.ResourceID,
			telemetry.SpanAttrUnitID, adj.Key.UnitID,
			"direction", direction.String(),
			"delta", adj.Delta.String(),
			"outcome", string(adj.Outcome),
		)
	}
}

// finish closes out a workflow operation: span status, duration, counters and the
// rejection log. It returns err unchanged.
func (l *ledger) finish(ctx context.Context, span trace.Span, kind telemetry.DocumentKind, operation string, started time.Time, err error) error {
	l.metrics.ObserveOperation(ctx, operation, started, err)
	if err == nil {
		telemetry.SetOK(span)
		l.metrics.RecordDocument(ctx, kind, operation)
		return nil
	}

	telemetry.RecordError(span, err)
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		if domainErr.Code == shared.CodeInsufficientStock {
			l.metrics.RecordRejected(ctx, kind, strings.ToLower(domainErr.Code))
			l.logger(ctx).Warn("adjustment rejected",
				zap.String("operation", operation),
				zap.String("reason", domainErr.Message),
			)
		}
		return err
	}
	l.logger(ctx).Error("ledger operation failed", zap.String("operation", operation), zap.Error(err))
	return err
}

// ensureLineReferencesExist checks every distinct line resource and unit
// against the catalog. Archived entries still count as existing.
func ensureLineReferencesExist(ctx context.Context, repos TransactionalRepositories, lines []inventory.DocumentLine) error {
	resources := make(map[uuid.UUID]struct{}, len(lines))
	units := make(map[uuid.UUID]struct{}, len(lines))
	for _, line := range lines {
		if _, seen := resources[line.ResourceID]; !seen {
			resources[line.ResourceID] = struct{}{}
			exists, err := repos.ResourceRepo().ExistsByID(ctx, line.ResourceID)
			if err != nil {
				return err
			}
			if !exists {
				return shared.NewDomainError(shared.CodeNotFound, "Resource not found: "+line.ResourceID.String())
			}
		}
		if _, seen := units[line.UnitID]; !seen {
			units[line.UnitID] = struct{}{}
			exists, err := repos.UnitRepo().ExistsByID(ctx, line.UnitID)
			if err != nil {
				return err
			}
			if !exists {
				return shared.NewDomainError(shared.CodeNotFound, "Unit of measurement not found: "+line.UnitID.String())
			}
		}
	}
	return nil
}
