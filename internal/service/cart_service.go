package service

import (
	"context"
	"strings"

	"github.com/Sodstar/mountain-pos/internal/domain"
	"github.com/Sodstar/mountain-pos/internal/repository"
	"github.com/Sodstar/mountain-pos/pkg/errs"
)

type CartServiceImpl struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func CreateCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &CartServiceImpl{cartRepo: cartRepo, productRepo: productRepo}
}

func (s *CartServiceImpl) GetCart(ctx context.Context, sessionID string) (cart *domain.Cart, err error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, errs.ErrMissingSession
	}

	cart, err = s.cartRepo.GetCart(ctx, sessionID)
	if err != nil {
		return nil, retrievalError("cart", err)
	}

	return cart, nil
}

// AddItem copies the current title, price and image of the product into the
// cart the first time it is added.
func (s *CartServiceImpl) AddItem(ctx context.Context, sessionID string, productID string) (cart *domain.Cart, err error) {
	cart, err = s.GetCart(ctx, sessionID)
	if err != nil {
		return
	}

	if _, ok := cart.Line(productID); ok {
		cart.Add(domain.ProductSnapshot{ProductID: productID})
		return cart, s.save(ctx, sessionID, cart)
	}

	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, referenceError("product", productID, err)
	}

	cart.Add(product.Snapshot())

	return cart, s.save(ctx, sessionID, cart)
}

func (s *CartServiceImpl) RemoveItem(ctx context.Context, sessionID string, productID string) (cart *domain.Cart, err error) {
	return s.mutate(ctx, sessionID, func(cart *domain.Cart) { cart.Remove(productID) })
}

func (s *CartServiceImpl) ZeroItem(ctx context.Context, sessionID string, productID string) (cart *domain.Cart, err error) {
	return s.mutate(ctx, sessionID, func(cart *domain.Cart) { cart.Zero(productID) })
}

func (s *CartServiceImpl) ClearCart(ctx context.Context, sessionID string) (err error) {
	if strings.TrimSpace(sessionID) == "" {
		return errs.ErrMissingSession
	}

	if err = s.cartRepo.DeleteCart(ctx, sessionID); err != nil {
		return retrievalError("cart", err)
	}

	return nil
}

func (s *CartServiceImpl) mutate(ctx context.Context, sessionID string, apply func(cart *domain.Cart)) (*domain.Cart, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	apply(cart)

	return cart, s.save(ctx, sessionID, cart)
}

func (s *CartServiceImpl) save(ctx context.Context, sessionID string, cart *domain.Cart) error {
	if err := s.cartRepo.SaveCart(ctx, sessionID, cart); err != nil {
		return retrievalError("cart", err)
	}

	return nil
}
