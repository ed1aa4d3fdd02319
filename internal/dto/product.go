package dto

import (
	"fmt"
	"strings"

	"github.com/Sodstar/mountain-pos/internal/domain"
	"github.com/Sodstar/mountain-pos/pkg/errs"
	"github.com/shopspring/decimal"
)

type ProductRequest struct {
	Code        string          `json:"code" validate:"required"`
	Barcode     string          `json:"barcode" validate:"required"`
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image" validate:"omitempty,url"`
	Stock       int             `json:"stock" validate:"gte=0"`
	StockAlert  *int            `json:"stock_alert" validate:"omitempty,gte=0"`
	Category    string          `json:"category" validate:"required"`
	Brand       string          `json:"brand" validate:"required"`
}

// ProductFilterQuery is the query string form of domain.ProductFilter.
type ProductFilterQuery struct {
	Category string `query:"category"`
	Brand    string `query:"brand"`
	MinPrice string `query:"min_price"`
	MaxPrice string `query:"max_price"`
	LowStock bool   `query:"low_stock"`
	OrderBy  string `query:"order_by"`
	Limit    int    `query:"limit"`
}

func (q ProductFilterQuery) ToFilter() (filter domain.ProductFilter, err error) {
	if category := strings.TrimSpace(q.Category); category != "" {
		filter.Category = &category
	}

	if brand := strings.TrimSpace(q.Brand); brand != "" {
		filter.Brand = &brand
	}

	if filter.MinPrice, err = parsePrice("min_price", q.MinPrice); err != nil {
		return
	}

	if filter.MaxPrice, err = parsePrice("max_price", q.MaxPrice); err != nil {
		return
	}

	filter.LowStock = q.LowStock
	filter.OrderBy = domain.ParseOrderBy(q.OrderBy)
	filter.Limit = q.Limit

	return filter, filter.Validate()
}

func parsePrice(field string, value string) (*decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	price, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("%s is not a number: %w", field, errs.ErrValidation)
	}

	return &price, nil
}

// ProductDocument is the search index and event representation of a product.
type ProductDocument struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Barcode     string          `json:"barcode"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
}

func NewProductDocument(p domain.Product) ProductDocument {
	return ProductDocument{
		ID:          p.ID.Hex(),
		Code:        p.Code,
		Barcode:     p.Barcode,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		Stock:       p.Stock,
		Category:    p.Category.Hex(),
		Brand:       p.Brand.Hex(),
	}
}
