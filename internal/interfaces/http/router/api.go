package router

import (
	"github.com/gin-gonic/gin"
	"github.com/warehouse/backend/internal/interfaces/http/handler"
)

// Handlers bundles every API handler
type Handlers struct {
	Balance  *handler.BalanceHandler
	Receipt  *handler.ReceiptHandler
	Shipment *handler.ShipmentHandler
	Resource *handler.ResourceHandler
	Unit     *handler.UnitHandler
	Client   *handler.ClientHandler
	Health   *handler.HealthHandler
}

// masterDataHandler is the handler surface shared by resources, units and clients
type masterDataHandler interface {
	List(c *gin.Context)
	ListActive(c *gin.Context)
	GetByID(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Archive(c *gin.Context)
	Restore(c *gin.Context)
	Delete(c *gin.Context)
}

// Groups builds the API route groups. idempotent guards every mutating
// document route so a retried request is applied once.
func (h Handlers) Groups(idempotent gin.HandlerFunc) []*DomainGroup {
	balances := NewDomainGroup("balances", "/balances").
		GET("", h.Balance.List)

	receipts := NewDomainGroup("receipts", "/receipts").
		GET("", h.Receipt.List).
		GET("/:id", h.Receipt.GetByID).
		POST("", idempotent, h.Receipt.Create).
		PUT("/:id", idempotent, h.Receipt.Update).
		DELETE("/:id", idempotent, h.Receipt.Delete)

	shipments := NewDomainGroup("shipments", "/shipments").
		GET("", h.Shipment.List).
		GET("/:id", h.Shipment.GetByID).
		POST("", idempotent, h.Shipment.Create).
		PUT("/:id", idempotent, h.Shipment.Update).
		DELETE("/:id", idempotent, h.Shipment.Delete).
		POST("/:id/sign", idempotent, h.Shipment.Sign).
		POST("/:id/revoke", idempotent, h.Shipment.Revoke)

	health := NewDomainGroup("health", "/health").
		GET("", h.Health.Health)

	return []*DomainGroup{
		balances,
		receipts,
		shipments,
		masterData("resources", h.Resource),
		masterData("units", h.Unit),
		masterData("clients", h.Client),
		health,
	}
}

func masterData(name string, h masterDataHandler) *DomainGroup {
	return NewDomainGroup(name, "/"+name).
		GET("", h.List).
		GET("/active", h.ListActive).
		GET("/:id", h.GetByID).
		POST("", h.Create).
		PUT("/:id", h.Update).
		DELETE("/:id", h.Delete).
		POST("/:id/archive", h.Archive).
		POST("/:id/restore", h.Restore)
}

// Mount registers the API under /api/v1 and a bare /health check on engine
func Mount(engine *gin.Engine, h Handlers, idempotent gin.HandlerFunc) {
	r := NewRouter(engine)
	for _, g := range h.Groups(idempotent) {
		r.Register(g)
	}
	r.Setup()
	engine.GET("/health", h.Health.Health)
}
