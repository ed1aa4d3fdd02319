package controller

import (
	"github.com/Sodstar/mountain-pos/internal/domain"
	"github.com/Sodstar/mountain-pos/internal/dto"
	"github.com/Sodstar/mountain-pos/internal/service"
	"github.com/Sodstar/mountain-pos/pkg/response"
	"github.com/labstack/echo/v4"
)

const HeaderSessionID = "X-Session-ID"

type CartController struct {
	service service.CartService
}

func CreateCartController(public *echo.Group, service service.CartService) {
	c := CartController{service: service}

	public.GET("/cart", c.GetCart)
	public.DELETE("/cart", c.ClearCart)
	public.POST("/cart/items", c.AddItem)
	public.DELETE("/cart/items/:product_id", c.RemoveItem)
	public.POST("/cart/items/:product_id/zero", c.ZeroItem)
}

func sessionID(e echo.Context) string {
	return e.Request().Header.Get(HeaderSessionID)
}

func writeCart(e echo.Context, cart *domain.Cart, err error) error {
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", dto.NewCartResponse(cart))
}

func (c *CartController) GetCart(e echo.Context) error {
	cart, err := c.service.GetCart(e.Request().Context(), sessionID(e))
	return writeCart(e, cart, err)
}

func (c *CartController) AddItem(e echo.Context) error {
	payload := dto.CartItemRequest{}
	if ok, err := bindAndValidate(e, &payload, "AddItem"); !ok {
		return err
	}

	cart, err := c.service.AddItem(e.Request().Context(), sessionID(e), payload.ProductID)
	return writeCart(e, cart, err)
}

func (c *CartController) RemoveItem(e echo.Context) error {
	cart, err := c.service.RemoveItem(e.Request().Context(), sessionID(e), e.Param("product_id"))
	return writeCart(e, cart, err)
}

func (c *CartController) ZeroItem(e echo.Context) error {
	cart, err := c.service.ZeroItem(e.Request().Context(), sessionID(e), e.Param("product_id"))
	return writeCart(e, cart, err)
}

func (c *CartController) ClearCart(e echo.Context) error {
	if err := c.service.ClearCart(e.Request().Context(), sessionID(e)); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", dto.NewCartResponse(&domain.Cart{}))
}
