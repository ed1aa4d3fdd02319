package domain

import (
	"fmt"

	"github.com/Sodstar/mountain-pos/pkg/errs"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderBy string

const (
	OrderNatural   OrderBy = ""
	OrderTitleAsc  OrderBy = "title_asc"
	OrderTitleDesc OrderBy = "title_desc"
	OrderPriceAsc  OrderBy = "price_asc"
	OrderPriceDesc OrderBy = "price_desc"
	OrderViewsDesc OrderBy = "views_desc"
)

// ParseOrderBy maps unrecognized values to OrderNatural.
func ParseOrderBy(value string) OrderBy {
	switch o := OrderBy(value); o {
	case OrderTitleAsc, OrderTitleDesc, OrderPriceAsc, OrderPriceDesc, OrderViewsDesc:
		return o
	default:
		return OrderNatural
	}
}

// ProductFilter holds the storefront criteria. Every field is optional and
// supplied criteria are combined with a logical AND.
type ProductFilter struct {
	Category *string          `json:"category,omitempty"`
	Brand    *string          `json:"brand,omitempty"`
	MinPrice *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice *decimal.Decimal `json:"max_price,omitempty"`
	LowStock bool             `json:"low_stock,omitempty"`
	OrderBy  OrderBy          `json:"order_by,omitempty"`
	Limit    int              `json:"limit,omitempty"`
}

func (f ProductFilter) Validate() error {
	if f.MinPrice != nil && f.MinPrice.IsNegative() {
		return fmt.Errorf("min_price must not be negative: %w", errs.ErrValidation)
	}

	if f.MaxPrice != nil && f.MaxPrice.IsNegative() {
		return fmt.Errorf("max_price must not be negative: %w", errs.ErrValidation)
	}

	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return fmt.Errorf("min_price must not exceed max_price: %w", errs.ErrValidation)
	}

	if f.Limit < 0 {
		return fmt.Errorf("limit must not be negative: %w", errs.ErrValidation)
	}

	return nil
}

// ProductQuery is a ProductFilter whose slugs have been resolved to ids.
type ProductQuery struct {
	CategoryID *primitive.ObjectID
	BrandID    *primitive.ObjectID
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	LowStock   bool
	OrderBy    OrderBy
	Limit      int
}
