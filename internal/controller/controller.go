package controller

import (
	"fmt"
	"strconv"

	"github.com/Sodstar/mountain-pos/pkg/errs"
	"github.com/Sodstar/mountain-pos/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type createdID struct {
	ID string `json:"id"`
}

// bindAndValidate decodes the request body into payload and runs the
// validator. The error response is already written when it returns false.
func bindAndValidate(e echo.Context, payload interface{}, component string) (ok bool, err error) {
	if err = e.Bind(payload); err != nil {
		log.Ctx(e.Request().Context()).Warn().Err(err).Str("component", component).Msg("")
		return false, response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err = e.Validate(payload); err != nil {
		return false, response.WriteValidationErrorResponse(e, err)
	}

	return true, nil
}

func queryInt(e echo.Context, name string) (int, error) {
	raw := e.QueryParam(name)
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s is not a number: %w", name, errs.ErrValidation)
	}

	return value, nil
}
