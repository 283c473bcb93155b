// file: internals/features/accounting/service/errors.go
package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Typed failures for the accounting core. Controllers map them to transport
// statuses at the boundary (NotFound→404, Conflict→409, Validation→400);
// nothing in this package knows about HTTP.

type NotFoundError struct {
	Resource string
	Detail   string
}

func (e *NotFoundError) Error() string {
	if e.Detail == "" {
		return e.Resource + " not found"
	}
	return e.Resource + " not found: " + e.Detail
}

type ConflictError struct {
	AcademicYear string
	ClassIDs     []uuid.UUID
}

func (e *ConflictError) Error() string {
	ids := make([]string, 0, len(e.ClassIDs))
	for _, id := range e.ClassIDs {
		ids = append(ids, id.String())
	}
	return fmt.Sprintf("fee structure already exists for academic year %s, classes: %s",
		e.AcademicYear, strings.Join(ids, ", "))
}

type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsConflict(err error) bool {
	var cf *ConflictError
	return errors.As(err, &cf)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// isUniqueViolation catches the storage-layer guard firing under a
// create/create race. GORM translates it on postgres; the string checks cover
// drivers opened without TranslateError (the sqlite test database).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "unique constraint")
}
