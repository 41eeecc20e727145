package persistence

import (
	"context"

	"github.com/RobertWLight/BSC/internal/domain/lead"
	"github.com/RobertWLight/BSC/internal/domain/shared"
	"github.com/RobertWLight/BSC/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLeadRepository implements lead.Repository using GORM
type GormLeadRepository struct {
	db *gorm.DB
}

// NewGormLeadRepository creates a new GormLeadRepository
func NewGormLeadRepository(db *gorm.DB) *GormLeadRepository {
	return &GormLeadRepository{db: db}
}

// Save inserts or updates a lead
func (r *GormLeadRepository) Save(ctx context.Context, l *lead.Lead) error {
	return r.db.WithContext(ctx).Save(models.LeadModelFromDomain(l)).Error
}

// FindAll returns leads newest first. PageSize 0 returns every lead.
func (r *GormLeadRepository) FindAll(ctx context.Context, filter shared.Filter) ([]lead.Lead, error) {
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
		filter.OrderDir = "desc"
	}
	query := applyPagination(r.db.WithContext(ctx).Model(&models.LeadModel{}), filter, LeadSortFields)

	var rows []models.LeadModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	leads := make([]lead.Lead, len(rows))
	for i := range rows {
		leads[i] = *rows[i].ToDomain()
	}
	return leads, nil
}

// Count counts all leads
func (r *GormLeadRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.LeadModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ lead.Repository = (*GormLeadRepository)(nil)
