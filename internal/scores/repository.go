package scores

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/biaslens/pkg/pagination"
	"github.com/JaimeStill/biaslens/pkg/query"
	"github.com/JaimeStill/biaslens/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a score repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "scores"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Score, error) {
	const q = `
		WITH inserted AS (
			INSERT INTO scores(id, media_id, category_id, score, explanation, model)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, media_id, category_id, score, explanation, model, created_at
		)
		SELECT i.id, i.media_id, i.category_id, i.score, i.explanation, i.model, i.created_at, c.name
		FROM inserted i
		JOIN bias_categories c ON c.id = i.category_id`

	args := []any{
		uuid.New(),
		cmd.MediaID,
		cmd.CategoryID,
		cmd.Score,
		cmd.Explanation,
		cmd.Model,
	}

	s, err := repository.QueryOne(ctx, r.db, q, args, scanScore)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: media %s", ErrMediaNotFound, cmd.MediaID)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.DebugContext(ctx, "score created",
		"media_id", s.MediaID,
		"category", s.CategoryName,
		"model", s.Model,
	)
	return &s, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Score], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Explanation", "CategoryName")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count scores: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanScore)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) ListByMedia(ctx context.Context, mediaID uuid.UUID) ([]Score, error) {
	q, args := query.
		NewBuilder(projection, query.SortField{Field: "CategoryName"}).
		WhereEquals("MediaID", mediaID).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanScore)
	if err != nil {
		return nil, fmt.Errorf("query scores for media %s: %w", mediaID, err)
	}
	return items, nil
}
