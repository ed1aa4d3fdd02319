package controller

import (
	"github.com/Sodstar/mountain-pos/internal/dto"
	"github.com/Sodstar/mountain-pos/internal/service"
	"github.com/Sodstar/mountain-pos/pkg/response"
	"github.com/labstack/echo/v4"
)

type BrandController struct {
	service service.BrandService
}

func CreateBrandController(public *echo.Group, admin *echo.Group, service service.BrandService) {
	c := BrandController{service: service}

	public.GET("/brands", c.GetBrands)

	admin.GET("/brands", c.GetBrands)
	admin.GET("/brands/:id", c.GetBrandByID)
	admin.POST("/brands", c.AddBrand)
	admin.PUT("/brands/:id", c.UpdateBrand)
	admin.DELETE("/brands/:id", c.DeleteBrand)
}

func (c *BrandController) GetBrands(e echo.Context) error {
	data, err := c.service.GetBrands(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *BrandController) GetBrandByID(e echo.Context) error {
	data, err := c.service.GetBrandByID(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *BrandController) AddBrand(e echo.Context) error {
	payload := dto.BrandRequest{}
	if ok, err := bindAndValidate(e, &payload, "AddBrand"); !ok {
		return err
	}

	id, err := c.service.AddBrand(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "", createdID{ID: id})
}

func (c *BrandController) UpdateBrand(e echo.Context) error {
	payload := dto.BrandRequest{}
	if ok, err := bindAndValidate(e, &payload, "UpdateBrand"); !ok {
		return err
	}

	if err := c.service.UpdateBrand(e.Request().Context(), e.Param("id"), payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}

func (c *BrandController) DeleteBrand(e echo.Context) error {
	if err := c.service.DeleteBrand(e.Request().Context(), e.Param("id")); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}
