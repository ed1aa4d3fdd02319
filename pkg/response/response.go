package response

import (
	"errors"
	"net/http"

	"github.com/Sodstar/mountain-pos/pkg/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
}

type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Errors  interface{} `json:"errors"`
}

func WriteSuccessResponse(c echo.Context, message string, data interface{}) error {
	resp := SuccessResponse{}
	resp.Status = "success"
	resp.Data = data
	resp.Message = message

	return c.JSON(http.StatusOK, resp)
}

func WriteCreatedResponse(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusCreated, SuccessResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// WriteErrorResponse writes err with the status mapped by errs. Errors that do
// not wrap a known sentinel are reported as internal server errors so driver
// messages never reach clients.
func WriteErrorResponse(c echo.Context, err error, errors interface{}) error {
	statusCode := errs.GetErrorStatusCode(err)
	resp := ErrorResponse{}
	resp.Status = "error"
	resp.Message = err.Error()
	resp.Errors = errors

	if !errs.IsKnown(err) {
		resp.Message = errs.ErrInternalServer.Error()
	}

	return c.JSON(statusCode, resp)
}

// WriteValidationErrorResponse reports validator failures field by field.
func WriteValidationErrorResponse(c echo.Context, err error) error {
	return WriteErrorResponse(c, errs.ErrValidation, ValidationErrors(err))
}

func ValidationErrors(err error) []ValidationError {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	result := make([]ValidationError, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		result = append(result, ValidationError{
			Field: fieldErr.Field(),
			Tag:   fieldErr.Tag(),
		})
	}
	return result
}
