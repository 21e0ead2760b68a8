package media

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

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

// New creates a media repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "media"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Media, error) {
	if strings.TrimSpace(cmd.URL) == "" || strings.TrimSpace(cmd.Title) == "" {
		return nil, fmt.Errorf("%w: title and url are required", ErrInvalidMedia)
	}

	mediaType := cmd.MediaType
	if mediaType == "" {
		mediaType = TypeArticle
	}

	q := `
		INSERT INTO media(id, title, url, source, description, image_url, media_type, category_id, is_user_submitted, external_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + columns

	args := []any{
		uuid.New(),
		cmd.Title,
		cmd.URL,
		cmd.Source,
		cmd.Description,
		cmd.ImageURL,
		mediaType,
		cmd.CategoryID,
		cmd.UserSubmitted,
		cmd.ExternalID,
	}

	m, err := repository.QueryOne(ctx, r.db, q, args, scanMedia)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.InfoContext(ctx, "media created",
		"id", m.ID,
		"source", m.Source,
		"user_submitted", m.UserSubmitted,
	)
	return &m, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Media, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	m, err := repository.QueryOne(ctx, r.db, q, args, scanMedia)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &m, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Media], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "Source")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count media: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanMedia)
	if err != nil {
		return nil, fmt.Errorf("query media: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}
