package controller

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/Sodstar/mountain-pos/internal/dto"
	"github.com/Sodstar/mountain-pos/internal/service"
	"github.com/Sodstar/mountain-pos/pkg/errs"
	"github.com/Sodstar/mountain-pos/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ProductController struct {
	service       service.ProductService
	searchService service.SearchService
}

func CreateProductController(public *echo.Group, admin *echo.Group, service service.ProductService, searchService service.SearchService) {
	c := ProductController{
		service:       service,
		searchService: searchService,
	}

	public.GET("/products", c.GetFilteredProducts)
	public.GET("/products/cached", c.GetCachedProducts)
	public.GET("/products/search", c.SearchProducts)
	public.GET("/products/:id", c.GetProductByID)
	public.POST("/products/:id/views", c.IncrementViews)
	public.GET("/categories/counts", c.GetCategoryCounts)

	admin.GET("/products", c.GetCachedProducts)
	admin.GET("/products/low-stock", c.GetLowStockProducts)
	admin.GET("/products/export", c.ExportProducts)
	admin.GET("/products/:id", c.GetProductByID)
	admin.POST("/products", c.AddProduct)
	admin.PUT("/products/:id", c.UpdateProduct)
	admin.DELETE("/products/:id", c.DeleteProduct)
}

func (c *ProductController) GetFilteredProducts(e echo.Context) error {
	var query dto.ProductFilterQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(e, &query); err != nil {
		log.Ctx(e.Request().Context()).Warn().Err(err).Str("component", "GetFilteredProducts").Msg("")
		return response.WriteErrorResponse(e, fmt.Errorf("malformed filter: %w", errs.ErrValidation), nil)
	}

	filter, err := query.ToFilter()
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	data, err := c.service.GetFilteredProducts(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *ProductController) GetCachedProducts(e echo.Context) error {
	limit, err := queryInt(e, "limit")
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	data, err := c.service.GetCachedProducts(e.Request().Context(), limit)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *ProductController) GetLowStockProducts(e echo.Context) error {
	data, err := c.service.GetLowStockProducts(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *ProductController) SearchProducts(e echo.Context) error {
	limit, err := queryInt(e, "limit")
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	data, err := c.searchService.SearchProducts(e.Request().Context(), e.QueryParam("q"), limit)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *ProductController) GetProductByID(e echo.Context) error {
	data, err := c.service.GetProductByID(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *ProductController) IncrementViews(e echo.Context) error {
	if err := c.service.IncrementViews(e.Request().Context(), e.Param("id")); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}

func (c *ProductController) GetCategoryCounts(e echo.Context) error {
	data, err := c.service.GetCategoryCounts(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *ProductController) AddProduct(e echo.Context) error {
	payload := dto.ProductRequest{}
	if ok, err := bindAndValidate(e, &payload, "AddProduct"); !ok {
		return err
	}

	id, err := c.service.AddProduct(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "", createdID{ID: id})
}

func (c *ProductController) UpdateProduct(e echo.Context) error {
	payload := dto.ProductRequest{}
	if ok, err := bindAndValidate(e, &payload, "UpdateProduct"); !ok {
		return err
	}

	if err := c.service.UpdateProduct(e.Request().Context(), e.Param("id"), payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}

func (c *ProductController) DeleteProduct(e echo.Context) error {
	if err := c.service.DeleteProduct(e.Request().Context(), e.Param("id")); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}

func (c *ProductController) ExportProducts(e echo.Context) error {
	var buf bytes.Buffer
	if err := c.service.ExportProducts(e.Request().Context(), &buf); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	e.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=products.xlsx")

	return e.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}
