package services

import (
	"context"

	"gorm.io/gorm"

	"automateace/internal/database"
)

// HealthService reports process and database health
type HealthService struct {
	db *gorm.DB
}

// NewHealthService creates a new health service
func NewHealthService(db *gorm.DB) *HealthService {
	return &HealthService{db: db}
}

// HealthResult is the health check response
type HealthResult struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Database string `json:"database"`
}

// Check probes the database and reports overall health
func (s *HealthService) Check(ctx context.Context) *HealthResult {
	result := &HealthResult{
		Status:   "healthy",
		Service:  "AutomateAce API",
		Database: "up",
	}
	if probe := database.Probe(ctx, s.db); !probe.Ready {
		result.Status = "degraded"
		result.Database = "down"
	}
	return result
}
