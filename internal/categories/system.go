package categories

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for bias and news category operations.
type System interface {
	Handler() *Handler

	// ListBias returns every bias category ordered by name.
	ListBias(ctx context.Context) ([]BiasCategory, error)
	FindBias(ctx context.Context, id uuid.UUID) (*BiasCategory, error)
	// ListNews returns enabled news categories ordered by name.
	ListNews(ctx context.Context) ([]NewsCategory, error)
	// Seed upserts every catalog entry by name in a single transaction.
	Seed(ctx context.Context, catalog *Catalog) (*SeedResult, error)
}
