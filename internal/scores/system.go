package scores

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/biaslens/pkg/pagination"
)

// System defines the public contract for score operations.
type System interface {
	Handler() *Handler

	// Create inserts a single score row. Every call appends; re-analysis of
	// the same media yields additional rows rather than replacing them.
	Create(ctx context.Context, cmd CreateCommand) (*Score, error)
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Score], error)
	ListByMedia(ctx context.Context, mediaID uuid.UUID) ([]Score, error)
}
