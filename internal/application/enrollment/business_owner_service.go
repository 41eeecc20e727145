package enrollment

import (
	"context"
	"errors"

	"github.com/RobertWLight/BSC/internal/domain/enrollment"
	"github.com/RobertWLight/BSC/internal/domain/shared"
	"github.com/google/uuid"
)

// BusinessOwnerService handles business owner registration and lookup
type BusinessOwnerService struct {
	ownerRepo enrollment.BusinessOwnerRepository
}

// NewBusinessOwnerService creates a new BusinessOwnerService
func NewBusinessOwnerService(ownerRepo enrollment.BusinessOwnerRepository) *BusinessOwnerService {
	return &BusinessOwnerService{ownerRepo: ownerRepo}
}

// Create registers a new business owner
func (s *BusinessOwnerService) Create(ctx context.Context, req CreateBusinessOwnerRequest) (*BusinessOwnerResponse, error) {
	owner, err := enrollment.NewBusinessOwner(enrollment.BusinessOwnerInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		BusinessName:    req.BusinessName,
		BusinessType:    enrollment.BusinessType(req.BusinessType),
		Industry:        enrollment.Industry(req.Industry),
		TaxID:           req.TaxID,
		YearsInBusiness: req.YearsInBusiness,
		Address:         req.Address,
		City:            req.City,
		State:           req.State,
		ZipCode:         req.ZipCode,
	})
	if err != nil {
		return nil, err
	}

	if err := s.ownerRepo.Save(ctx, owner); err != nil {
		return nil, err
	}

	resp := ToBusinessOwnerResponse(owner)
	return &resp, nil
}

// GetByID retrieves a business owner by ID
func (s *BusinessOwnerService) GetByID(ctx context.Context, id uuid.UUID) (*BusinessOwnerResponse, error) {
	owner, err := findOwner(ctx, s.ownerRepo, id)
	if err != nil {
		return nil, err
	}

	resp := ToBusinessOwnerResponse(owner)
	return &resp, nil
}

// List retrieves business owners, newest first
func (s *BusinessOwnerService) List(ctx context.Context, filter BusinessOwnerListFilter) ([]BusinessOwnerResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	owners, err := s.ownerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.ownerRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]BusinessOwnerResponse, len(owners))
	for i := range owners {
		responses[i] = ToBusinessOwnerResponse(&owners[i])
	}
	return responses, total, nil
}

// findOwner loads an owner and names the resource on a miss
func findOwner(ctx context.Context, repo enrollment.BusinessOwnerRepository, id uuid.UUID) (*enrollment.BusinessOwner, error) {
	owner, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Business owner")
		}
		return nil, err
	}
	return owner, nil
}
