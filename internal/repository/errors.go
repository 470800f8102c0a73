// Package repository implements the MySQL persistence layer. Repos
// translate database outcomes into the domain error taxonomy: row
// misses become the *NotFound sentinels, guard failures on conditional
// updates become ErrInsufficientCapacity or ErrInvalidTransition, and
// every driver or transaction failure is collapsed into
// domain.ErrStorageUnavailable so callers see a single retryable
// class.
package repository

import (
	"fmt"

	"github.com/viaggiapp/travel-booking/internal/domain"
)

// storageErr wraps a driver-level failure as the retryable
// StorageUnavailable class. The underlying error text is preserved for
// logs but callers are expected to match with errors.Is.
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStorageUnavailable, err)
}
