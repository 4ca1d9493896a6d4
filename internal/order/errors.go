package order

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("order not found")
)

// ValidationError marks client-fixable input problems (HTTP 400).
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func invalidf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ProductNotFoundError names the offending product reference.
type ProductNotFoundError struct{ ProductID string }

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// InsufficientStockError is returned both at validation time and when the
// conditional stock decrement affects zero rows at commit time.
type InsufficientStockError struct{ Product string }

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.Product)
}
