package service

import (
	"context"

	"github.com/Sodstar/mountain-pos/config"
	"github.com/Sodstar/mountain-pos/internal/cache"
	"github.com/Sodstar/mountain-pos/internal/domain"
	"github.com/Sodstar/mountain-pos/internal/dto"
	"github.com/Sodstar/mountain-pos/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BrandServiceImpl struct {
	repo       repository.BrandRepository
	queryCache *cache.QueryCache
	config     config.CacheConfig
}

func CreateBrandService(repo repository.BrandRepository, queryCache *cache.QueryCache, config config.CacheConfig) BrandService {
	return &BrandServiceImpl{repo: repo, queryCache: queryCache, config: config}
}

func (s *BrandServiceImpl) GetBrands(ctx context.Context) (data []domain.Brand, err error) {
	query := cache.Query{Name: "all-brands", Tags: []string{cache.TagBrands}, TTL: s.config.ListingTTL}

	return cache.Remember(ctx, s.queryCache, query, func(ctx context.Context) ([]domain.Brand, error) {
		brands, err := s.repo.GetBrands(ctx)
		if err != nil {
			return nil, retrievalError("brands", err)
		}
		return brands, nil
	})
}

func (s *BrandServiceImpl) GetBrandByID(ctx context.Context, id string) (data domain.Brand, err error) {
	data, err = s.repo.GetBrandByID(ctx, id)
	if err != nil {
		return data, referenceError("brand", id, err)
	}
	return
}

func (s *BrandServiceImpl) AddBrand(ctx context.Context, data dto.BrandRequest) (id string, err error) {
	brand, err := toBrand(data)
	if err != nil {
		return
	}

	if err = s.checkUnique(ctx, brand, primitive.NilObjectID); err != nil {
		return
	}

	brandID, err := s.repo.AddBrand(ctx, brand)
	if err != nil {
		return
	}

	if err = invalidate(ctx, s.queryCache, cache.TagBrands); err != nil {
		return
	}

	return brandID.Hex(), nil
}

func (s *BrandServiceImpl) UpdateBrand(ctx context.Context, id string, data dto.BrandRequest) (err error) {
	existing, err := s.repo.GetBrandByID(ctx, id)
	if err != nil {
		return referenceError("brand", id, err)
	}

	brand, err := toBrand(data)
	if err != nil {
		return
	}
	brand.ID = existing.ID

	if err = s.checkUnique(ctx, brand, existing.ID); err != nil {
		return
	}

	if err = s.repo.UpdateBrand(ctx, brand); err != nil {
		return
	}

	return invalidate(ctx, s.queryCache, cache.TagBrands)
}

func (s *BrandServiceImpl) DeleteBrand(ctx context.Context, id string) (err error) {
	if err = s.repo.DeleteBrand(ctx, id); err != nil {
		return referenceError("brand", id, err)
	}

	return invalidate(ctx, s.queryCache, cache.TagBrands)
}

func (s *BrandServiceImpl) checkUnique(ctx context.Context, brand domain.Brand, excludeID primitive.ObjectID) error {
	fields := []struct{ name, value string }{
		{"name", brand.Name},
		{"slug", brand.Slug},
	}

	for _, field := range fields {
		exists, err := s.repo.BrandExists(ctx, field.name, field.value, excludeID)
		if err != nil {
			return retrievalError("brand", err)
		}
		if exists {
			return duplicateError("brand", field.name, field.value)
		}
	}

	return nil
}

func toBrand(data dto.BrandRequest) (domain.Brand, error) {
	brandSlug, err := makeSlug(data.Name, data.Slug)
	if err != nil {
		return domain.Brand{}, err
	}

	return domain.Brand{
		Name: data.Name,
		Slug: brandSlug,
	}, nil
}
