package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer     = http.StatusInternalServerError
	ErrStatusClient             = http.StatusBadRequest
	ErrStatusNotLoggedIn        = http.StatusUnauthorized
	ErrStatusNoPermission       = http.StatusForbidden
	ErrStatusNotFound           = http.StatusNotFound
	ErrStatusConflict           = http.StatusConflict
	ErrStatusServiceUnavailable = http.StatusServiceUnavailable
)

var (
	ErrInternalServer     = errors.New("Internal server error")
	ErrClient             = errors.New("Bad request")
	ErrNotLoggedIn        = errors.New("Unauthorized access")
	ErrForbidden          = errors.New("Forbidden access")
	ErrNotFound           = errors.New("Resource not found")
	ErrDuplicate          = errors.New("Duplicate record found")
	ErrValidation         = errors.New("Validation failed")
	ErrRetrieval          = errors.New("Failed to retrieve data")
	ErrServiceUnavailable = errors.New("Service temporarily unavailable")
	ErrMissingSession     = errors.New("Missing cart session")
)

var errorMap = map[error]int{
	ErrInternalServer:     ErrStatusInternalServer,
	ErrClient:             ErrStatusClient,
	ErrNotLoggedIn:        ErrStatusNotLoggedIn,
	ErrForbidden:          ErrStatusNoPermission,
	ErrNotFound:           ErrStatusNotFound,
	ErrDuplicate:          ErrStatusConflict,
	ErrValidation:         ErrStatusClient,
	ErrRetrieval:          ErrStatusInternalServer,
	ErrServiceUnavailable: ErrStatusServiceUnavailable,
	ErrMissingSession:     ErrStatusClient,
}

// GetErrorStatusCode resolves the HTTP status of err, following wrapped errors.
func GetErrorStatusCode(err error) int {
	if errStatusCode, ok := errorMap[err]; ok {
		return errStatusCode
	}

	for target, errStatusCode := range errorMap {
		if errors.Is(err, target) {
			return errStatusCode
		}
	}

	return errorMap[ErrInternalServer]
}

// IsKnown reports whether err wraps one of the sentinel errors of this package.
func IsKnown(err error) bool {
	for target := range errorMap {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
