package service

import (
	"errors"
	"strings"

	"github.com/carson-networks/neofin-server/internal/storage/sqlconfig"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = sqlconfig.ErrNotFound
	ErrConflict   = errors.New("already exists")
)

// ValidationError lists every problem found with an input. It matches ErrValidation.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.Details, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

type validator struct {
	details []string
}

func (v *validator) check(ok bool, detail string) {
	if !ok {
		v.details = append(v.details, detail)
	}
}

func (v *validator) err() error {
	if len(v.details) == 0 {
		return nil
	}
	return &ValidationError{Details: v.details}
}
