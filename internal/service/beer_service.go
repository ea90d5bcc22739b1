package service

import (
	"context"
	"time"

	"shiftiq/internal/dto"
	"shiftiq/internal/models"
	"shiftiq/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BeerService struct {
	beerRepo *repository.BeerRepository
	logger   *zap.Logger
}

func NewBeerService(beerRepo *repository.BeerRepository, logger *zap.Logger) *BeerService {
	return &BeerService{
		beerRepo: beerRepo,
		logger:   logger,
	}
}

func (s *BeerService) Create(ctx context.Context, req *dto.BeerRequest) (*dto.BeerResponse, error) {
	now := time.Now()
	beer := &models.Beer{
		ID:          uuid.New(),
		Name:        req.Name,
		Brewery:     req.Brewery,
		Style:       req.Style,
		ABV:         req.ABV,
		Description: req.Description,
		OnTap:       req.OnTap,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.beerRepo.Create(ctx, beer); err != nil {
		return nil, err
	}

	return toBeerResponse(beer), nil
}

func (s *BeerService) List(ctx context.Context) ([]*dto.BeerResponse, error) {
	beers, err := s.beerRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.BeerResponse, len(beers))
	for i, beer := range beers {
		responses[i] = toBeerResponse(beer)
	}
	return responses, nil
}

func (s *BeerService) Update(ctx context.Context, id uuid.UUID, req *dto.BeerRequest) (*dto.BeerResponse, error) {
	beer := &models.Beer{
		ID:          id,
		Name:        req.Name,
		Brewery:     req.Brewery,
		Style:       req.Style,
		ABV:         req.ABV,
		Description: req.Description,
		OnTap:       req.OnTap,
		UpdatedAt:   time.Now(),
	}

	if err := s.beerRepo.Update(ctx, beer); err != nil {
		return nil, err
	}

	return toBeerResponse(beer), nil
}

func (s *BeerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.beerRepo.Delete(ctx, id)
}

func toBeerResponse(beer *models.Beer) *dto.BeerResponse {
	return &dto.BeerResponse{
		ID:          beer.ID.String(),
		Name:        beer.Name,
		Brewery:     beer.Brewery,
		Style:       beer.Style,
		ABV:         beer.ABV,
		Description: beer.Description,
		OnTap:       beer.OnTap,
		CreatedAt:   beer.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   beer.UpdatedAt.Format(time.RFC3339),
	}
}
