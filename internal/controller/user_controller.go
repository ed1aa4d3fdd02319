package controller

import (
	"github.com/Sodstar/mountain-pos/internal/dto"
	"github.com/Sodstar/mountain-pos/internal/service"
	"github.com/Sodstar/mountain-pos/pkg/response"
	"github.com/labstack/echo/v4"
)

type UserController struct {
	service service.UserService
}

func CreateUserController(admin *echo.Group, service service.UserService) {
	c := UserController{service: service}

	admin.GET("/users", c.GetUsers)
	admin.GET("/users/:id", c.GetUserByID)
	admin.POST("/users", c.AddUser)
	admin.PUT("/users/:id", c.UpdateUser)
	admin.PUT("/users/:id/role", c.UpdateUserRole)
	admin.PUT("/users/:id/password", c.UpdateUserPassword)
	admin.DELETE("/users/:id", c.DeleteUser)
}

func (c *UserController) GetUsers(e echo.Context) error {
	data, err := c.service.GetUsers(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *UserController) GetUserByID(e echo.Context) error {
	data, err := c.service.GetUserByID(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", data)
}

func (c *UserController) AddUser(e echo.Context) error {
	payload := dto.UserRequest{}
	if ok, err := bindAndValidate(e, &payload, "AddUser"); !ok {
		return err
	}

	id, err := c.service.AddUser(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "", createdID{ID: id})
}

func (c *UserController) UpdateUser(e echo.Context) error {
	payload := dto.UserUpdateRequest{}
	if ok, err := bindAndValidate(e, &payload, "UpdateUser"); !ok {
		return err
	}

	if err := c.service.UpdateUser(e.Request().Context(), e.Param("id"), payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}

func (c *UserController) UpdateUserRole(e echo.Context) error {
	payload := dto.UserRoleRequest{}
	if ok, err := bindAndValidate(e, &payload, "UpdateUserRole"); !ok {
		return err
	}

	if err := c.service.UpdateUserRole(e.Request().Context(), e.Param("id"), payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}

func (c *UserController) UpdateUserPassword(e echo.Context) error {
	payload := dto.UserPasswordRequest{}
	if ok, err := bindAndValidate(e, &payload, "UpdateUserPassword"); !ok {
		return err
	}

	if err := c.service.UpdateUserPassword(e.Request().Context(), e.Param("id"), payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}

func (c *UserController) DeleteUser(e echo.Context) error {
	if err := c.service.DeleteUser(e.Request().Context(), e.Param("id")); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}
