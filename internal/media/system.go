package media

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/biaslens/pkg/pagination"
)

// System defines the public contract for media operations.
type System interface {
	Handler() *Handler

	Create(ctx context.Context, cmd CreateCommand) (*Media, error)
	Find(ctx context.Context, id uuid.UUID) (*Media, error)
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Media], error)
}
