// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Structure:
//   - base.go: BaseModel and AggregateModel
//   - catalog.go: resources and units of measurement
//   - partner.go: clients
//   - inventory.go: balances, receipt and shipment documents with their lines
package models
