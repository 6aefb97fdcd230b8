package archive

import (
	"context"

	"github.com/semizhon/hh-kz-cad/internal/domain"
)

// Archiver lands aggregated listings in a storage backend for offline
// analysis. Archiving is best-effort; callers log failures and move on.
type Archiver interface {
	// BulkIndex stores multiple listings at once, upserting by listing ID.
	BulkIndex(ctx context.Context, listings []*domain.Listing) error
}
