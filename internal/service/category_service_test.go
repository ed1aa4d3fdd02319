package service

import (
	"context"
	"testing"
	"time"

	"github.com/Sodstar/mountain-pos/config"
	"github.com/Sodstar/mountain-pos/internal/cache"
	"github.com/Sodstar/mountain-pos/internal/domain"
	"github.com/Sodstar/mountain-pos/internal/dto"
	"github.com/Sodstar/mountain-pos/pkg/errs"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueryCache() *cache.QueryCache {
	return cache.NewQueryCache(cache.NewMemoryCache(clockwork.NewFakeClock()), 5*time.Second)
}

func TestMakeSlug(t *testing.T) {
	result, err := makeSlug("Soft Drinks & Juice", "")
	require.NoError(t, err)
	assert.Equal(t, "soft-drinks-and-juice", result)

	result, err = makeSlug("ignored", "My Custom Slug")
	require.NoError(t, err)
	assert.Equal(t, "my-custom-slug", result)

	_, err = makeSlug("!!!", "")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestCategoryService_AddDerivesSlug(t *testing.T) {
	ctx := context.Background()
	repo := &MockCategoryRepository{}
	svc := CreateCategoryService(repo, newTestQueryCache(), config.CacheConfig{})

	id, err := svc.AddCategory(ctx, dto.CategoryRequest{Name: "Hot Drinks"})
	require.NoError(t, err)

	category, err := svc.GetCategoryByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "hot-drinks", category.Slug)
}

func TestCategoryService_RejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := &MockCategoryRepository{}
	svc := CreateCategoryService(repo, newTestQueryCache(), config.CacheConfig{})

	_, err := svc.AddCategory(ctx, dto.CategoryRequest{Name: "Drinks"})
	require.NoError(t, err)

	_, err = svc.AddCategory(ctx, dto.CategoryRequest{Name: "Drinks", Slug: "other"})
	assert.ErrorIs(t, err, errs.ErrDuplicate)
	assert.Contains(t, err.Error(), "name")

	_, err = svc.AddCategory(ctx, dto.CategoryRequest{Name: "Beverages", Slug: "drinks"})
	assert.ErrorIs(t, err, errs.ErrDuplicate)
	assert.Contains(t, err.Error(), "slug")
}

func TestCategoryService_UpdateExcludesItself(t *testing.T) {
	ctx := context.Background()
	repo := &MockCategoryRepository{}
	svc := CreateCategoryService(repo, newTestQueryCache(), config.CacheConfig{})

	id, err := svc.AddCategory(ctx, dto.CategoryRequest{Name: "Drinks"})
	require.NoError(t, err)

	err = svc.UpdateCategory(ctx, id, dto.CategoryRequest{Name: "Drinks", Description: "Cold and hot"})
	require.NoError(t, err)

	category, err := svc.GetCategoryByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Cold and hot", category.Description)

	err = svc.UpdateCategory(ctx, "000000000000000000000000", dto.CategoryRequest{Name: "X"})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCategoryService_ListIsCachedUntilWrite(t *testing.T) {
	ctx := context.Background()
	repo := &MockCategoryRepository{}
	svc := CreateCategoryService(repo, newTestQueryCache(), config.CacheConfig{ListingTTL: time.Minute})

	categories, err := svc.GetCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)

	_, err = svc.GetCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), repo.ListCalls.Load())

	_, err = svc.AddCategory(ctx, dto.CategoryRequest{Name: "Drinks"})
	require.NoError(t, err)

	categories, err = svc.GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "drinks", categories[0].Slug)
	assert.Equal(t, int32(2), repo.ListCalls.Load())
}

func TestCategoryWriteInvalidatesProductReads(t *testing.T) {
	ctx := context.Background()
	qc := newTestQueryCache()

	categories := &MockCategoryRepository{}
	products := &MockProductRepository{}
	productSvc := CreateProductService(products, categories, &MockBrandRepository{}, qc, NoopEventPublisher{}, config.CacheConfig{})
	categorySvc := CreateCategoryService(categories, qc, config.CacheConfig{})

	filter := domain.ProductFilter{Category: ptr("drinks")}

	result, err := productSvc.GetFilteredProducts(ctx, filter)
	require.NoError(t, err)
	assert.Empty(t, result)

	id, err := categorySvc.AddCategory(ctx, dto.CategoryRequest{Name: "Drinks"})
	require.NoError(t, err)
	category, err := categorySvc.GetCategoryByID(ctx, id)
	require.NoError(t, err)
	products.Products = append(products.Products, domain.Product{Title: "Water", Category: category.ID})

	// the empty result cached for the unknown slug is dropped with the categories tag
	result, err = productSvc.GetFilteredProducts(ctx, filter)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Water", result[0].Title)
}

func TestAdminWritesFailWhenCacheCannotBeCleared(t *testing.T) {
	ctx := context.Background()
	backend := &MockCache{MemoryCache: cache.NewMemoryCache(clockwork.NewFakeClock()), InvalidateErr: errStoreDown}
	qc := cache.NewQueryCache(backend, 5*time.Second)
	conf := config.CacheConfig{ListingTTL: time.Minute}

	categorySvc := CreateCategoryService(&MockCategoryRepository{}, qc, conf)
	brandSvc := CreateBrandService(&MockBrandRepository{}, qc, conf)
	driverSvc := CreateDriverService(&MockDriverRepository{}, qc, conf)

	testCases := []struct {
		Name  string
		Write func() error
	}{
		{Name: "Category", Write: func() error {
			_, err := categorySvc.AddCategory(ctx, dto.CategoryRequest{Name: "Drinks"})
			return err
		}},
		{Name: "Brand", Write: func() error {
			_, err := brandSvc.AddBrand(ctx, dto.BrandRequest{Name: "Acme"})
			return err
		}},
		{Name: "Driver", Write: func() error {
			_, err := driverSvc.AddDriver(ctx, dto.DriverRequest{Name: "Bat", Phone: "99112233", PIN: "1234", Vehicle: "UBA-1234"})
			return err
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			err := tc.Write()
			assert.ErrorIs(t, err, errs.ErrServiceUnavailable)
		})
	}

	// the failed writes were still stored
	categories, err := categorySvc.GetCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestBrandService_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := &MockBrandRepository{}
	svc := CreateBrandService(repo, newTestQueryCache(), config.CacheConfig{})

	id, err := svc.AddBrand(ctx, dto.BrandRequest{Name: "Acme Foods"})
	require.NoError(t, err)

	brand, err := svc.GetBrandByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "acme-foods", brand.Slug)

	_, err = svc.AddBrand(ctx, dto.BrandRequest{Name: "Acme Foods"})
	assert.ErrorIs(t, err, errs.ErrDuplicate)

	require.NoError(t, svc.UpdateBrand(ctx, id, dto.BrandRequest{Name: "Acme", Slug: "acme"}))

	brands, err := svc.GetBrands(ctx)
	require.NoError(t, err)
	require.Len(t, brands, 1)
	assert.Equal(t, "acme", brands[0].Slug)

	require.NoError(t, svc.DeleteBrand(ctx, id))
	assert.ErrorIs(t, svc.DeleteBrand(ctx, id), errs.ErrNotFound)

	brands, err = svc.GetBrands(ctx)
	require.NoError(t, err)
	assert.Empty(t, brands)
}
