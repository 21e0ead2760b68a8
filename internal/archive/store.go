package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/JaimeStill/biaslens/internal/media"
	"github.com/JaimeStill/biaslens/internal/scores"
	"github.com/JaimeStill/biaslens/pkg/repository"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var mediaColumns = []string{
	"id", "title", "url", "source", "description", "image_url",
	"media_type", "category_id", "is_user_submitted", "external_id", "created_at",
}

type store struct {
	db *sql.DB
}

var _ Store = (*store)(nil)

// NewStore creates a PostgreSQL-backed Store.
func NewStore(db *sql.DB) Store {
	return &store{db: db}
}

func (s *store) Candidates(ctx context.Context, cutoff time.Time, limit int) ([]media.Media, error) {
	return repository.Select(ctx, s.db, CandidatesQuery(cutoff, limit), scanMedia)
}

// CandidatesQuery selects non-user-submitted media created before cutoff,
// oldest first.
func CandidatesQuery(cutoff time.Time, limit int) sq.SelectBuilder {
	return psql.
		Select(mediaColumns...).
		From("media").
		Where(sq.And{
			sq.Eq{"is_user_submitted": false},
			sq.Lt{"created_at": cutoff},
		}).
		OrderBy("created_at ASC").
		Limit(uint64(limit))
}

func (s *store) Scores(ctx context.Context, mediaID uuid.UUID) ([]scores.Score, error) {
	return repository.Select(ctx, s.db,
		psql.
			Select("s.id", "s.media_id", "s.category_id", "s.score", "s.explanation", "s.model", "s.created_at", "c.name").
			From("scores s").
			Join("bias_categories c ON c.id = s.category_id").
			Where(sq.Eq{"s.media_id": mediaID}).
			OrderBy("s.created_at ASC"),
		scanScore,
	)
}

// CopyMedia inserts m into archived_media under a new id and returns it.
// The live id is kept in original_id.
func (s *store) CopyMedia(ctx context.Context, m media.Media) (uuid.UUID, error) {
	id := uuid.New()

	stmt := psql.
		Insert("archived_media").
		Columns(
			"id", "original_id", "title", "url", "source", "description", "image_url",
			"media_type", "category_id", "is_user_submitted", "external_id", "created_at",
		).
		Values(
			id, m.ID, m.Title, m.URL, m.Source, m.Description, m.ImageURL,
			m.MediaType, m.CategoryID, m.UserSubmitted, m.ExternalID, m.CreatedAt,
		)

	if err := repository.ExecExpect(ctx, s.db, stmt, 1); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (s *store) CopyScores(ctx context.Context, items []scores.Score) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	if err := repository.ExecExpect(ctx, s.db, CopyScoresQuery(items), int64(len(items))); err != nil {
		return 0, fmt.Errorf("copy %d scores: %w", len(items), err)
	}
	return len(items), nil
}

// CopyScoresQuery inserts items into archived_scores in one statement. Each
// row keeps the live media id it was scored against.
func CopyScoresQuery(items []scores.Score) sq.InsertBuilder {
	stmt := psql.
		Insert("archived_scores").
		Columns("id", "media_id", "category_id", "score", "explanation", "model", "created_at")

	for _, sc := range items {
		stmt = stmt.Values(uuid.New(), sc.MediaID, sc.CategoryID, sc.Score, sc.Explanation, sc.Model, sc.CreatedAt)
	}
	return stmt
}

func (s *store) DeleteScores(ctx context.Context, mediaID uuid.UUID) (int64, error) {
	return repository.Exec(ctx, s.db, psql.Delete("scores").Where(sq.Eq{"media_id": mediaID}))
}

func (s *store) DeleteMedia(ctx context.Context, mediaID uuid.UUID) error {
	err := repository.ExecExpect(ctx, s.db, psql.Delete("media").Where(sq.Eq{"id": mediaID}), 1)
	return repository.MapError(err, media.ErrNotFound, media.ErrDuplicate)
}

func scanMedia(s repository.Scanner) (media.Media, error) {
	var m media.Media
	err := s.Scan(
		&m.ID, &m.Title, &m.URL, &m.Source, &m.Description, &m.ImageURL,
		&m.MediaType, &m.CategoryID, &m.UserSubmitted, &m.ExternalID, &m.CreatedAt,
	)
	return m, err
}

func scanScore(s repository.Scanner) (scores.Score, error) {
	var sc scores.Score
	err := s.Scan(
		&sc.ID, &sc.MediaID, &sc.CategoryID, &sc.Score,
		&sc.Explanation, &sc.Model, &sc.CreatedAt, &sc.CategoryName,
	)
	return sc, err
}
