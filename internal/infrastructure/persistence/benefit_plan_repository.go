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

// GormBenefitPlanRepository implements BenefitPlanRepository using GORM
type GormBenefitPlanRepository struct {
	db *gorm.DB
}

// NewGormBenefitPlanRepository creates a new GormBenefitPlanRepository
func NewGormBenefitPlanRepository(db *gorm.DB) *GormBenefitPlanRepository {
	return &GormBenefitPlanRepository{db: db}
}

// FindByID finds a plan by its ID, active or not
func (r *GormBenefitPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*enrollment.BenefitPlan, error) {
	var model models.BenefitPlanModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActive returns the active catalog ordered by type then premium
func (r *GormBenefitPlanRepository) FindActive(ctx context.Context) ([]enrollment.BenefitPlan, error) {
	return r.find(r.db.WithContext(ctx).Where("is_active = ?", true))
}

// FindActiveByType returns active plans of one type
func (r *GormBenefitPlanRepository) FindActiveByType(ctx context.Context, planType enrollment.PlanType) ([]enrollment.BenefitPlan, error) {
	return r.find(r.db.WithContext(ctx).Where("is_active = ? AND plan_type = ?", true, planType))
}

// Count counts all plans, active or not
func (r *GormBenefitPlanRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.BenefitPlanModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a plan
func (r *GormBenefitPlanRepository) Save(ctx context.Context, plan *enrollment.BenefitPlan) error {
	return r.db.WithContext(ctx).Save(models.BenefitPlanModelFromDomain(plan)).Error
}

func (r *GormBenefitPlanRepository) find(query *gorm.DB) ([]enrollment.BenefitPlan, error) {
	var rows []models.BenefitPlanModel
	if err := query.Order("plan_type ASC").Order("monthly_premium_per_employee ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	plans := make([]enrollment.BenefitPlan, len(rows))
	for i := range rows {
		plans[i] = *rows[i].ToDomain()
	}
	return plans, nil
}

var _ enrollment.BenefitPlanRepository = (*GormBenefitPlanRepository)(nil)
