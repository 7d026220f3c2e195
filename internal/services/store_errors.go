package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "merkliste/internal/errors"
)

// storeError maps gateway failures onto the API error taxonomy:
// constraint violations and connectivity problems get their own codes,
// everything else is an internal error. Record-not-found is handled at
// the call sites because its meaning depends on the operation.
func storeError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrForeignKeyViolated), errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrCheckConstraintViolated):
		return apperrors.Wrap(apperrors.ErrConstraintViolation, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	default:
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}
