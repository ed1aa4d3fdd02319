package controller

import (
	"github.com/Sodstar/mountain-pos/internal/dto"
	"github.com/Sodstar/mountain-pos/internal/service"
	"github.com/Sodstar/mountain-pos/pkg/response"
	"github.com/labstack/echo/v4"
)

type DriverController struct {
	service service.DriverService
}

func CreateDriverController(admin *echo.Group, service service.DriverService) {
	c := DriverController{service: service}

	admin.GET("/drivers", c.GetDrivers)
	admin.GET("/drivers/:id", c.GetDriverByID)
	admin.POST("/drivers", c.AddDriver)
	admin.PUT("/drivers/:id", c.UpdateDriver)
	admin.DELETE("/drivers/:id", c.DeleteDriver)
}

func (c *DriverController) GetDrivers(e echo.Context) error {
	data, err := c.service.GetDrivers(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *DriverController) GetDriverByID(e echo.Context) error {
	data, err := c.service.GetDriverByID(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *DriverController) AddDriver(e echo.Context) error {
	payload := dto.DriverRequest{}
	if ok, err := bindAndValidate(e, &payload, "AddDriver"); !ok {
		return err
	}

	id, err := c.service.AddDriver(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "", createdID{ID: id})
}

func (c *DriverController) UpdateDriver(e echo.Context) error {
	payload := dto.DriverRequest{}
	if ok, err := bindAndValidate(e, &payload, "UpdateDriver"); !ok {
		return err
	}

	if err := c.service.UpdateDriver(e.Request().Context(), e.Param("id"), payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}

func (c *DriverController) DeleteDriver(e echo.Context) error {
	if err := c.service.DeleteDriver(e.Request().Context(), e.Param("id")); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}
