package service

import (
	"fmt"

	"github.com/Sodstar/mountain-pos/pkg/errs"
)

// retrievalError keeps known client errors and reports everything else as a
// retrieval failure of what, without the store's own message.
func retrievalError(what string, err error) error {
	if errs.IsKnown(err) {
		return err
	}
	return fmt.Errorf("%s: %w", what, errs.ErrRetrieval)
}

func duplicateError(entity string, field string, value string) error {
	return fmt.Errorf("%s with %s %q already exists: %w", entity, field, value, errs.ErrDuplicate)
}

// referenceError reports a failed lookup of a referenced record by id.
func referenceError(entity string, id string, err error) error {
	if errs.IsKnown(err) {
		return fmt.Errorf("%s %q: %w", entity, id, err)
	}
	return retrievalError(entity, err)
}
