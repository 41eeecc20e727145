package persistence

import (
	"context"
	"errors"

	"github.com/RobertWLight/BSC/internal/domain/enrollment"
	"github.com/RobertWLight/BSC/internal/domain/shared"
	"github.com/RobertWLight/BSC/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormApplicationRepository implements ApplicationRepository using GORM
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewGormApplicationRepository creates a new GormApplicationRepository
func NewGormApplicationRepository(db *gorm.DB) *GormApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// FindByID finds an application by its ID
func (r *GormApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*enrollment.Application, error) {
	var model models.ApplicationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBusinessOwner returns an owner's applications newest first.
// A non-positive limit returns all rows.
func (r *GormApplicationRepository) FindByBusinessOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]enrollment.Application, error) {
	query := r.db.WithContext(ctx).
		Where("business_owner_id = ?", ownerID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []models.ApplicationModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	apps := make([]enrollment.Application, len(rows))
	for i := range rows {
		apps[i] = *rows[i].ToDomain()
	}
	return apps, nil
}

// CountByBusinessOwner counts an owner's applications
func (r *GormApplicationRepository) CountByBusinessOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ApplicationModel{}).
		Where("business_owner_id = ?", ownerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an application
func (r *GormApplicationRepository) Save(ctx context.Context, app *enrollment.Application) error {
	return r.db.WithContext(ctx).Save(models.ApplicationModelFromDomain(app)).Error
}

var _ enrollment.ApplicationRepository = (*GormApplicationRepository)(nil)
