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

type DriverServiceImpl struct {
	repo       repository.DriverRepository
	queryCache *cache.QueryCache
	config     config.CacheConfig
}

func CreateDriverService(repo repository.DriverRepository, queryCache *cache.QueryCache, config config.CacheConfig) DriverService {
	return &DriverServiceImpl{repo: repo, queryCache: queryCache, config: config}
}

func (s *DriverServiceImpl) GetDrivers(ctx context.Context) (data []domain.Driver, err error) {
	query := cache.Query{Name: "all-drivers", Tags: []string{cache.TagDrivers}}

	return cache.Remember(ctx, s.queryCache, query, func(ctx context.Context) ([]domain.Driver, error) {
		drivers, err := s.repo.GetDrivers(ctx)
		if err != nil {
			return nil, retrievalError("drivers", err)
		}
		return drivers, nil
	})
}

func (s *DriverServiceImpl) GetDriverByID(ctx context.Context, id string) (data domain.Driver, err error) {
	data, err = s.repo.GetDriverByID(ctx, id)
	if err != nil {
		return data, referenceError("driver", id, err)
	}
	return
}

func (s *DriverServiceImpl) AddDriver(ctx context.Context, data dto.DriverRequest) (id string, err error) {
	driver := domain.Driver{
		Name:    data.Name,
		Phone:   data.Phone,
		PIN:     data.PIN,
		Vehicle: data.Vehicle,
	}

	if err = s.checkUnique(ctx, driver, primitive.NilObjectID); err != nil {
		return
	}

	driverID, err := s.repo.AddDriver(ctx, driver)
	if err != nil {
		return
	}

	if err = invalidate(ctx, s.queryCache, cache.TagDrivers); err != nil {
		return
	}

	return driverID.Hex(), nil
}

// UpdateDriver keeps pin and vehicle unique among the other drivers.
func (s *DriverServiceImpl) UpdateDriver(ctx context.Context, id string, data dto.DriverRequest) (err error) {
	existing, err := s.repo.GetDriverByID(ctx, id)
	if err != nil {
		return referenceError("driver", id, err)
	}

	driver := domain.Driver{
		ID:      existing.ID,
		Name:    data.Name,
		Phone:   data.Phone,
		PIN:     data.PIN,
		Vehicle: data.Vehicle,
	}

	if err = s.checkUnique(ctx, driver, existing.ID); err != nil {
		return
	}

	if err = s.repo.UpdateDriver(ctx, driver); err != nil {
		return
	}

	return invalidate(ctx, s.queryCache, cache.TagDrivers)
}

func (s *DriverServiceImpl) DeleteDriver(ctx context.Context, id string) (err error) {
	if err = s.repo.DeleteDriver(ctx, id); err != nil {
		return referenceError("driver", id, err)
	}

	return invalidate(ctx, s.queryCache, cache.TagDrivers)
}

func (s *DriverServiceImpl) checkUnique(ctx context.Context, driver domain.Driver, excludeID primitive.ObjectID) error {
	fields := []struct{ name, value string }{
		{"pin", driver.PIN},
		{"vehicle", driver.Vehicle},
	}

	for _, field := range fields {
		exists, err := s.repo.DriverExists(ctx, field.name, field.value, excludeID)
		if err != nil {
			return retrievalError("driver", err)
		}
		if exists {
			return duplicateError("driver", field.name, field.value)
		}
	}

	return nil
}
