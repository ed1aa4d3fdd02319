package dto

import (
	"github.com/Sodstar/mountain-pos/internal/domain"
	"github.com/shopspring/decimal"
)

type CartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,len=24,hexadecimal"`
}

type CartResponse struct {
	Lines []domain.CartLine `json:"lines"`
	Total decimal.Decimal   `json:"total"`
	Count int               `json:"count"`
}

func NewCartResponse(cart *domain.Cart) CartResponse {
	lines := cart.Lines
	if lines == nil {
		lines = []domain.CartLine{}
	}

	return CartResponse{
		Lines: lines,
		Total: cart.Total(),
		Count: cart.Count(),
	}
}
