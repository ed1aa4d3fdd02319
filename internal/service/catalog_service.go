package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Sodstar/mountain-pos/config"
	"github.com/Sodstar/mountain-pos/internal/cache"
	"github.com/Sodstar/mountain-pos/internal/domain"
	"github.com/Sodstar/mountain-pos/internal/dto"
	"github.com/Sodstar/mountain-pos/internal/repository"
	"github.com/Sodstar/mountain-pos/pkg/errs"
	"github.com/rs/zerolog/log"
	"github.com/tealeg/xlsx"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

const defaultStockAlert = 1

// productReadTags are carried by every read that expands category and brand.
var productReadTags = []string{cache.TagProducts, cache.TagCategories, cache.TagBrands}

type ProductServiceImpl struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
	queryCache   *cache.QueryCache
	publisher    EventPublisher
	config       config.CacheConfig
}

func CreateProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, brandRepo repository.BrandRepository, queryCache *cache.QueryCache, publisher EventPublisher, config config.CacheConfig) ProductService {
	return &ProductServiceImpl{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		queryCache:   queryCache,
		publisher:    publisher,
		config:       config,
	}
}

func (s *ProductServiceImpl) GetFilteredProducts(ctx context.Context, filter domain.ProductFilter) (data []domain.ProductView, err error) {
	if err = filter.Validate(); err != nil {
		return
	}

	query := cache.Query{Name: "filtered-products", Params: filter, Tags: productReadTags}

	return cache.Remember(ctx, s.queryCache, query, func(ctx context.Context) ([]domain.ProductView, error) {
		productQuery, resolved, err := s.resolveFilter(ctx, filter)
		if err != nil {
			return nil, err
		}

		// a slug that names nothing matches nothing
		if !resolved {
			return []domain.ProductView{}, nil
		}

		products, err := s.productRepo.GetProducts(ctx, productQuery)
		if err != nil {
			return nil, retrievalError("filtered products", err)
		}

		return products, nil
	})
}

// resolveFilter looks up the category and brand slugs concurrently. resolved
// is false when a supplied slug does not exist.
func (s *ProductServiceImpl) resolveFilter(ctx context.Context, filter domain.ProductFilter) (query domain.ProductQuery, resolved bool, err error) {
	query = domain.ProductQuery{
		MinPrice: filter.MinPrice,
		MaxPrice: filter.MaxPrice,
		LowStock: filter.LowStock,
		OrderBy:  filter.OrderBy,
		Limit:    filter.Limit,
	}

	var categoryID, brandID *primitive.ObjectID
	var categoryMissing, brandMissing bool

	g, gctx := errgroup.WithContext(ctx)

	if filter.Category != nil {
		slug := *filter.Category
		g.Go(func() error {
			category, err := s.categoryRepo.GetCategoryBySlug(gctx, slug)
			if errors.Is(err, errs.ErrNotFound) {
				categoryMissing = true
				return nil
			}
			if err != nil {
				return fmt.Errorf("category slug %q: %w", slug, errs.ErrRetrieval)
			}
			categoryID = &category.ID
			return nil
		})
	}

	if filter.Brand != nil {
		slug := *filter.Brand
		g.Go(func() error {
			brand, err := s.brandRepo.GetBrandBySlug(gctx, slug)
			if errors.Is(err, errs.ErrNotFound) {
				brandMissing = true
				return nil
			}
			if err != nil {
				return fmt.Errorf("brand slug %q: %w", slug, errs.ErrRetrieval)
			}
			brandID = &brand.ID
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		return
	}

	query.CategoryID = categoryID
	query.BrandID = brandID

	return query, !categoryMissing && !brandMissing, nil
}

func (s *ProductServiceImpl) GetCachedProducts(ctx context.Context, limit int) (data []domain.ProductView, err error) {
	if limit < 0 {
		return nil, fmt.Errorf("limit must not be negative: %w", errs.ErrValidation)
	}

	query := cache.Query{Name: "all-products", Params: limit, Tags: productReadTags, TTL: s.config.ListingTTL}

	return cache.Remember(ctx, s.queryCache, query, func(ctx context.Context) ([]domain.ProductView, error) {
		products, err := s.productRepo.GetProducts(ctx, domain.ProductQuery{Limit: limit})
		if err != nil {
			return nil, retrievalError("products", err)
		}
		return products, nil
	})
}

func (s *ProductServiceImpl) GetLowStockProducts(ctx context.Context) (data []domain.ProductView, err error) {
	return s.GetFilteredProducts(ctx, domain.ProductFilter{LowStock: true, OrderBy: domain.OrderTitleAsc})
}

func (s *ProductServiceImpl) GetProductByID(ctx context.Context, id string) (data domain.ProductView, err error) {
	data, err = s.productRepo.GetProductViewByID(ctx, id)
	if err != nil {
		return data, referenceError("product", id, err)
	}

	return
}

func (s *ProductServiceImpl) GetCategoryCounts(ctx context.Context) (data []domain.CategoryCount, err error) {
	query := cache.Query{Name: "category-counts", Tags: []string{cache.TagProducts, cache.TagCategories}, TTL: s.config.ListingTTL}

	return cache.Remember(ctx, s.queryCache, query, func(ctx context.Context) ([]domain.CategoryCount, error) {
		counts, err := s.productRepo.GetCategoryCounts(ctx)
		if err != nil {
			return nil, retrievalError("category counts", err)
		}
		return counts, nil
	})
}

func (s *ProductServiceImpl) AddProduct(ctx context.Context, data dto.ProductRequest) (id string, err error) {
	product, err := s.toProduct(ctx, data)
	if err != nil {
		return
	}

	if err = s.checkUnique(ctx, product, primitive.NilObjectID); err != nil {
		return
	}

	productID, err := s.productRepo.AddProduct(ctx, product)
	if err != nil {
		return
	}
	product.ID = productID

	err = invalidate(ctx, s.queryCache, cache.TagProducts)
	s.publish(ctx, dto.EventAddProduct, dto.NewProductDocument(product))
	if err != nil {
		return
	}

	return productID.Hex(), nil
}

func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, id string, data dto.ProductRequest) (err error) {
	existing, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return referenceError("product", id, err)
	}

	product, err := s.toProduct(ctx, data)
	if err != nil {
		return
	}
	product.ID = existing.ID
	product.Views = existing.Views
	product.CreatedAt = existing.CreatedAt

	if err = s.checkUnique(ctx, product, existing.ID); err != nil {
		return
	}

	if err = s.productRepo.UpdateProduct(ctx, product); err != nil {
		return
	}

	err = invalidate(ctx, s.queryCache, cache.TagProducts)
	s.publish(ctx, dto.EventUpdateProduct, dto.NewProductDocument(product))

	return
}

func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	if err = s.productRepo.DeleteProduct(ctx, id); err != nil {
		return referenceError("product", id, err)
	}

	err = invalidate(ctx, s.queryCache, cache.TagProducts)
	s.publish(ctx, dto.EventDeleteProduct, dto.ProductDocument{ID: id})

	return
}

func (s *ProductServiceImpl) IncrementViews(ctx context.Context, id string) (err error) {
	if err = s.productRepo.IncrementViews(ctx, id); err != nil {
		return referenceError("product", id, err)
	}

	return invalidate(ctx, s.queryCache, cache.TagProducts)
}

var exportHeaders = []string{
	"ID", "Code", "Barcode", "Title", "Description", "Price", "Stock",
	"StockAlert", "Views", "Category", "Brand", "Image", "CreatedAt", "UpdatedAt",
}

// ExportProducts writes the whole catalog as an xlsx workbook ordered by title.
func (s *ProductServiceImpl) ExportProducts(ctx context.Context, w io.Writer) (err error) {
	products, err := s.productRepo.GetProducts(ctx, domain.ProductQuery{OrderBy: domain.OrderTitleAsc})
	if err != nil {
		return retrievalError("products", err)
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ExportProducts").Msg("")
		return
	}

	headerRow := sheet.AddRow()
	for _, h := range exportHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range products {
		row := sheet.AddRow()

		row.AddCell().SetValue(p.ID.Hex())
		row.AddCell().SetValue(p.Code)
		row.AddCell().SetValue(p.Barcode)
		row.AddCell().SetValue(p.Title)
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetValue(p.Price.String())
		row.AddCell().SetInt(p.Stock)
		row.AddCell().SetInt(p.StockAlert)
		row.AddCell().SetInt(p.Views)

		categoryName, brandName := "", ""
		if p.Category != nil {
			categoryName = p.Category.Name
		}
		if p.Brand != nil {
			brandName = p.Brand.Name
		}
		row.AddCell().SetValue(categoryName)
		row.AddCell().SetValue(brandName)

		row.AddCell().SetValue(p.Image)
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	if err = file.Write(w); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ExportProducts").Msg("")
	}

	return
}

// toProduct validates the request and resolves its category and brand ids.
func (s *ProductServiceImpl) toProduct(ctx context.Context, data dto.ProductRequest) (product domain.Product, err error) {
	if data.Price.IsNegative() {
		return product, fmt.Errorf("price must not be negative: %w", errs.ErrValidation)
	}

	category, err := s.categoryRepo.GetCategoryByID(ctx, data.Category)
	if err != nil {
		return product, referenceError("category", data.Category, err)
	}

	brand, err := s.brandRepo.GetBrandByID(ctx, data.Brand)
	if err != nil {
		return product, referenceError("brand", data.Brand, err)
	}

	stockAlert := defaultStockAlert
	if data.StockAlert != nil {
		stockAlert = *data.StockAlert
	}

	return domain.Product{
		Code:        data.Code,
		Barcode:     data.Barcode,
		Title:       data.Title,
		Description: data.Description,
		Price:       data.Price,
		Image:       data.Image,
		Stock:       data.Stock,
		StockAlert:  stockAlert,
		Category:    category.ID,
		Brand:       brand.ID,
	}, nil
}

func (s *ProductServiceImpl) checkUnique(ctx context.Context, product domain.Product, excludeID primitive.ObjectID) error {
	fields := []struct{ name, value string }{
		{"code", product.Code},
		{"barcode", product.Barcode},
		{"title", product.Title},
	}

	for _, field := range fields {
		exists, err := s.productRepo.ProductExists(ctx, field.name, field.value, excludeID)
		if err != nil {
			return retrievalError("product", err)
		}
		if exists {
			return duplicateError("product", field.name, field.value)
		}
	}

	return nil
}

// publish reports a committed write. A lost event is logged and does not fail
// the write.
func (s *ProductServiceImpl) publish(ctx context.Context, eventType string, doc dto.ProductDocument) {
	err := s.publisher.Publish(ctx, doc.ID, dto.KafkaMessage{EventType: eventType, Data: doc})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Publish").Str("event_type", eventType).Str("product_id", doc.ID).Msg("catalog event lost")
	}
}
