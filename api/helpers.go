package api

import (
	"errors"

	"github.com/xraph/forge"

	"github.com/xraph/binspire"
	"github.com/xraph/binspire/validate"
)

// mapError maps domain errors to Forge HTTP errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, binspire.ErrNotFound) {
		return forge.NotFound(err.Error())
	}
	if validate.IsValidation(err) || errors.Is(err, binspire.ErrConstraint) {
		return forge.BadRequest(err.Error())
	}
	return err
}

// checkInput runs the validate rules of a bound request body.
func checkInput(v any) error {
	if err := validate.Struct(v); err != nil {
		return mapError(err)
	}
	return nil
}

func defaultLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	if limit > validate.MaxLimit {
		return validate.MaxLimit
	}
	return limit
}

func defaultOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
