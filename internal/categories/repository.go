package categories

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/biaslens/pkg/query"
	"github.com/JaimeStill/biaslens/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a category repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "categories"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) ListBias(ctx context.Context) ([]BiasCategory, error) {
	q, args := query.NewBuilder(biasProjection, byName).Build()

	cats, err := repository.QueryMany(ctx, r.db, q, args, scanBias)
	if err != nil {
		return nil, fmt.Errorf("query bias categories: %w", err)
	}
	return cats, nil
}

func (r *repo) FindBias(ctx context.Context, id uuid.UUID) (*BiasCategory, error) {
	q, args := query.NewBuilder(biasProjection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanBias)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) ListNews(ctx context.Context) ([]NewsCategory, error) {
	enabled := true
	q, args := query.NewBuilder(newsProjection, byName).
		WhereEquals("Enabled", &enabled).
		Build()

	cats, err := repository.QueryMany(ctx, r.db, q, args, scanNews)
	if err != nil {
		return nil, fmt.Errorf("query news categories: %w", err)
	}
	return cats, nil
}

func (r *repo) Seed(ctx context.Context, catalog *Catalog) (*SeedResult, error) {
	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	const upsertBias = `
		INSERT INTO bias_categories(id, name, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description`

	const upsertNews = `
		INSERT INTO news_categories(id, name, enabled)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET enabled = EXCLUDED.enabled`

	result, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (SeedResult, error) {
		var res SeedResult
		for _, b := range catalog.Bias {
			n, err := repository.ExecCount(ctx, tx, upsertBias, uuid.New(), b.Name, b.Description)
			if err != nil {
				return res, fmt.Errorf("upsert bias category %q: %w", b.Name, err)
			}
			res.Bias += int(n)
		}
		for _, c := range catalog.News {
			n, err := repository.ExecCount(ctx, tx, upsertNews, uuid.New(), c.Name, c.IsEnabled())
			if err != nil {
				return res, fmt.Errorf("upsert news category %q: %w", c.Name, err)
			}
			res.News += int(n)
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "categories seeded", "bias", result.Bias, "news", result.News)
	return &result, nil
}
