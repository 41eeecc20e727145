package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/RobertWLight/BSC/internal/domain/enrollment"
	"github.com/RobertWLight/BSC/internal/domain/shared"
	"github.com/RobertWLight/BSC/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBusinessOwnerRepository implements BusinessOwnerRepository using GORM
type GormBusinessOwnerRepository struct {
	db *gorm.DB
}

// NewGormBusinessOwnerRepository creates a new GormBusinessOwnerRepository
func NewGormBusinessOwnerRepository(db *gorm.DB) *GormBusinessOwnerRepository {
	return &GormBusinessOwnerRepository{db: db}
}

// FindByID finds a business owner by its ID
func (r *GormBusinessOwnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*enrollment.BusinessOwner, error) {
	var model models.BusinessOwnerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists business owners. Search matches business name or email.
func (r *GormBusinessOwnerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]enrollment.BusinessOwner, error) {
	query := r.db.WithContext(ctx).Model(&models.BusinessOwnerModel{})
	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(business_name) LIKE ? OR LOWER(email) LIKE ?", term, term)
	}
	query = applyPagination(query, filter, BusinessOwnerSortFields)

	var rows []models.BusinessOwnerModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	owners := make([]enrollment.BusinessOwner, len(rows))
	for i := range rows {
		owners[i] = *rows[i].ToDomain()
	}
	return owners, nil
}

// Save creates or updates a business owner
func (r *GormBusinessOwnerRepository) Save(ctx context.Context, owner *enrollment.BusinessOwner) error {
	return r.db.WithContext(ctx).Save(models.BusinessOwnerModelFromDomain(owner)).Error
}

// Count counts all business owners
func (r *GormBusinessOwnerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.BusinessOwnerModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ enrollment.BusinessOwnerRepository = (*GormBusinessOwnerRepository)(nil)
