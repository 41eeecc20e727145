package admin

import (
	"context"

	"github.com/RobertWLight/BSC/internal/domain/lead"
	"github.com/RobertWLight/BSC/internal/domain/shared"
	"go.uber.org/zap"
)

// ErrLocked is returned when lead data is requested before the gate is passed
var ErrLocked = shared.NewDomainError("UNAUTHORIZED", "Admin access requires a valid PIN")

// LeadSource lists every captured lead
type LeadSource interface {
	ListLeads(ctx context.Context) ([]lead.Lead, error)
}

// Dashboard loads leads behind the gate and rolls them up
type Dashboard struct {
	gate       *Gate
	source     LeadSource
	aggregator *lead.Aggregator
	logger     *zap.Logger
}

// NewDashboard creates an admin dashboard
func NewDashboard(gate *Gate, source LeadSource, aggregator *lead.Aggregator, logger *zap.Logger) *Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dashboard{
		gate:       gate,
		source:     source,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Gate returns the dashboard's access gate
func (d *Dashboard) Gate() *Gate {
	return d.gate
}

// Load fetches the leads and computes the statistics
func (d *Dashboard) Load(ctx context.Context) (lead.Stats, error) {
	if !d.gate.Authenticated() {
		return lead.Stats{}, ErrLocked
	}

	leads, err := d.source.ListLeads(ctx)
	if err != nil {
		d.logger.Error("Failed to load leads", zap.Error(err))
		return lead.Stats{}, err
	}

	return d.aggregator.Compute(leads), nil
}
