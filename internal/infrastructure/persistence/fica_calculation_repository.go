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

// GormFicaCalculationRepository implements FicaCalculationRepository using GORM
type GormFicaCalculationRepository struct {
	db *gorm.DB
}

// NewGormFicaCalculationRepository creates a new GormFicaCalculationRepository
func NewGormFicaCalculationRepository(db *gorm.DB) *GormFicaCalculationRepository {
	return &GormFicaCalculationRepository{db: db}
}

// Save inserts a calculation
func (r *GormFicaCalculationRepository) Save(ctx context.Context, calc *enrollment.FicaCalculation) error {
	return r.db.WithContext(ctx).Create(models.FicaCalculationModelFromDomain(calc)).Error
}

// FindByBusinessOwner returns an owner's calculations newest first.
// A non-positive limit returns all rows.
func (r *GormFicaCalculationRepository) FindByBusinessOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]enrollment.FicaCalculation, error) {
	query := r.db.WithContext(ctx).
		Where("business_owner_id = ?", ownerID).
		Order("calculation_date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []models.FicaCalculationModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	calcs := make([]enrollment.FicaCalculation, len(rows))
	for i := range rows {
		calcs[i] = *rows[i].ToDomain()
	}
	return calcs, nil
}

// FindLatest returns the newest calculation for an owner
func (r *GormFicaCalculationRepository) FindLatest(ctx context.Context, ownerID uuid.UUID) (*enrollment.FicaCalculation, error) {
	var model models.FicaCalculationModel
	if err := r.db.WithContext(ctx).
		Where("business_owner_id = ?", ownerID).
		Order("calculation_date DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

var _ enrollment.FicaCalculationRepository = (*GormFicaCalculationRepository)(nil)
