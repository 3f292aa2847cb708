package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrOverlapConflict = errors.New("pricing row overlaps an existing row")
	ErrNoPriceFound    = errors.New("no pricing row found")
	ErrAmbiguousPrice  = errors.New("more than one pricing row matches")
	ErrNotFound        = errors.New("resource not found")
	ErrForbidden       = errors.New("forbidden")
)

// ValidationError reports an invalid or missing field before any calculation runs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError is a shorthand used by validators.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Conflict identifies an existing row that collides with a candidate row.
type Conflict struct {
	RowID       string `json:"row_id"`
	ConflictsID string `json:"conflicts_with_id"`
	Label       string `json:"label"`
}

// OverlapError blocks a pricing-row write and lists every colliding row.
type OverlapError struct {
	Conflicts []Conflict
}

func (e *OverlapError) Error() string {
	ids := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		ids = append(ids, c.ConflictsID)
	}
	return fmt.Sprintf("%s: %s", ErrOverlapConflict.Error(), strings.Join(ids, ", "))
}

func (e *OverlapError) Is(target error) bool { return target == ErrOverlapConflict }

// NoPriceError carries the lookup that found no pricing row so callers can link to the rate-card editor.
type NoPriceError struct {
	Query MatrixQuery
}

func (e *NoPriceError) Error() string {
	return fmt.Sprintf("%s for %s at %s kg on %s", ErrNoPriceFound.Error(),
		e.Query.Key.String(), e.Query.EntryWeightKg.String(), e.Query.DateRef.Format("2006-01-02"))
}

func (e *NoPriceError) Is(target error) bool { return target == ErrNoPriceFound }
