package service

import (
	"context"
	"fmt"

	"github.com/Sodstar/mountain-pos/config"
	"github.com/Sodstar/mountain-pos/internal/cache"
	"github.com/Sodstar/mountain-pos/internal/domain"
	"github.com/Sodstar/mountain-pos/internal/dto"
	"github.com/Sodstar/mountain-pos/internal/repository"
	"github.com/Sodstar/mountain-pos/pkg/errs"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CategoryServiceImpl struct {
	repo       repository.CategoryRepository
	queryCache *cache.QueryCache
	config     config.CacheConfig
}

func CreateCategoryService(repo repository.CategoryRepository, queryCache *cache.QueryCache, config config.CacheConfig) CategoryService {
	return &CategoryServiceImpl{repo: repo, queryCache: queryCache, config: config}
}

func (s *CategoryServiceImpl) GetCategories(ctx context.Context) (data []domain.Category, err error) {
	query := cache.Query{Name: "all-categories", Tags: []string{cache.TagCategories}, TTL: s.config.ListingTTL}

	return cache.Remember(ctx, s.queryCache, query, func(ctx context.Context) ([]domain.Category, error) {
		categories, err := s.repo.GetCategories(ctx)
		if err != nil {
			return nil, retrievalError("categories", err)
		}
		return categories, nil
	})
}

func (s *CategoryServiceImpl) GetCategoryByID(ctx context.Context, id string) (data domain.Category, err error) {
	data, err = s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return data, referenceError("category", id, err)
	}
	return
}

func (s *CategoryServiceImpl) AddCategory(ctx context.Context, data dto.CategoryRequest) (id string, err error) {
	category, err := toCategory(data)
	if err != nil {
		return
	}

	if err = s.checkUnique(ctx, category, primitive.NilObjectID); err != nil {
		return
	}

	categoryID, err := s.repo.AddCategory(ctx, category)
	if err != nil {
		return
	}

	if err = invalidate(ctx, s.queryCache, cache.TagCategories); err != nil {
		return
	}

	return categoryID.Hex(), nil
}

func (s *CategoryServiceImpl) UpdateCategory(ctx context.Context, id string, data dto.CategoryRequest) (err error) {
	existing, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return referenceError("category", id, err)
	}

	category, err := toCategory(data)
	if err != nil {
		return
	}
	category.ID = existing.ID

	if err = s.checkUnique(ctx, category, existing.ID); err != nil {
		return
	}

	if err = s.repo.UpdateCategory(ctx, category); err != nil {
		return
	}

	return invalidate(ctx, s.queryCache, cache.TagCategories)
}

func (s *CategoryServiceImpl) DeleteCategory(ctx context.Context, id string) (err error) {
	if err = s.repo.DeleteCategory(ctx, id); err != nil {
		return referenceError("category", id, err)
	}

	return invalidate(ctx, s.queryCache, cache.TagCategories)
}

func (s *CategoryServiceImpl) checkUnique(ctx context.Context, category domain.Category, excludeID primitive.ObjectID) error {
	fields := []struct{ name, value string }{
		{"name", category.Name},
		{"slug", category.Slug},
	}

	for _, field := range fields {
		exists, err := s.repo.CategoryExists(ctx, field.name, field.value, excludeID)
		if err != nil {
			return retrievalError("category", err)
		}
		if exists {
			return duplicateError("category", field.name, field.value)
		}
	}

	return nil
}

func toCategory(data dto.CategoryRequest) (domain.Category, error) {
	categorySlug, err := makeSlug(data.Name, data.Slug)
	if err != nil {
		return domain.Category{}, err
	}

	return domain.Category{
		Name:        data.Name,
		Description: data.Description,
		Slug:        categorySlug,
	}, nil
}

// makeSlug normalizes the requested slug, deriving it from name when empty.
func makeSlug(name string, requested string) (string, error) {
	source := requested
	if source == "" {
		source = name
	}

	result := slug.Make(source)
	if result == "" {
		return "", fmt.Errorf("cannot derive a slug from %q: %w", source, errs.ErrValidation)
	}

	return result, nil
}
