package controller

import (
	"github.com/Sodstar/mountain-pos/internal/dto"
	"github.com/Sodstar/mountain-pos/internal/service"
	"github.com/Sodstar/mountain-pos/pkg/response"
	"github.com/labstack/echo/v4"
)

type CategoryController struct {
	service service.CategoryService
}

func CreateCategoryController(public *echo.Group, admin *echo.Group, service service.CategoryService) {
	c := CategoryController{service: service}

	public.GET("/categories", c.GetCategories)

	admin.GET("/categories", c.GetCategories)
	admin.GET("/categories/:id", c.GetCategoryByID)
	admin.POST("/categories", c.AddCategory)
	admin.PUT("/categories/:id", c.UpdateCategory)
	admin.DELETE("/categories/:id", c.DeleteCategory)
}

func (c *CategoryController) GetCategories(e echo.Context) error {
	data, err := c.service.GetCategories(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *CategoryController) GetCategoryByID(e echo.Context) error {
	data, err := c.service.GetCategoryByID(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *CategoryController) AddCategory(e echo.Context) error {
	payload := dto.CategoryRequest{}
	if ok, err := bindAndValidate(e, &payload, "AddCategory"); !ok {
		return err
	}

	id, err := c.service.AddCategory(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "", createdID{ID: id})
}

func (c *CategoryController) UpdateCategory(e echo.Context) error {
	payload := dto.CategoryRequest{}
	if ok, err := bindAndValidate(e, &payload, "UpdateCategory"); !ok {
		return err
	}

	if err := c.service.UpdateCategory(e.Request().Context(), e.Param("id"), payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}

func (c *CategoryController) DeleteCategory(e echo.Context) error {
	if err := c.service.DeleteCategory(e.Request().Context(), e.Param("id")); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}
