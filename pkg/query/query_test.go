package query_test

import (
	"testing"
	"time"

	"github.com/JaimeStill/biaslens/pkg/query"
)

func mediaProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "media", "m").
		Project("id", "id").
		Project("title", "title").
		Project("source", "source").
		Project("created_at", "created_at")
}

func scoreProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "scores", "s").
		Project("id", "id").
		Project("score", "score").
		Join("public", "bias_categories", "c", "JOIN", "c.id = s.category_id").
		Project("name", "category")
}

func ptr(s string) *string { return &s }

func TestProjectionMap(t *testing.T) {
	p := mediaProjection()

	if got := p.Table(); got != "public.media m" {
		t.Errorf("Table() = %q", got)
	}
	if got := p.From(); got != "public.media m" {
		t.Errorf("From() = %q", got)
	}
	if got := p.Columns(); got != "m.id, m.title, m.source, m.created_at" {
		t.Errorf("Columns() = %q", got)
	}
	if got := p.Column("unknown"); got != "unknown" {
		t.Errorf("Column(unknown) = %q, want passthrough", got)
	}
}

func TestProjectionMapJoin(t *testing.T) {
	p := scoreProjection()

	if got, want := p.From(), "public.scores s JOIN public.bias_categories c ON c.id = s.category_id"; got != want {
		t.Errorf("From() = %q, want %q", got, want)
	}
	if got := p.Column("category"); got != "c.name" {
		t.Errorf("Column(category) = %q, want c.name", got)
	}
	if got := p.Columns(); got != "s.id, s.score, c.name" {
		t.Errorf("Columns() = %q", got)
	}
}

func TestParseSortFields(t *testing.T) {
	got := query.ParseSortFields("title, -created_at,,")
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Field != "title" || got[0].Descending {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].Field != "created_at" || !got[1].Descending {
		t.Errorf("got[1] = %+v", got[1])
	}
	if query.ParseSortFields("") != nil {
		t.Error("empty input should return nil")
	}
}

func TestBuilderBuildPage(t *testing.T) {
	cutoff := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var nilTime *time.Time

	sql, args := query.NewBuilder(mediaProjection(), query.SortField{Field: "created_at", Descending: true}).
		WhereEquals("source", ptr("bbc.com")).
		WhereBefore("created_at", &cutoff).
		WhereAfter("created_at", nilTime).
		WhereSearch(ptr("vote"), "title", "source").
		BuildPage(2, 10)

	want := "SELECT m.id, m.title, m.source, m.created_at FROM public.media m" +
		" WHERE m.source = $1 AND m.created_at < $2 AND (m.title ILIKE $3 OR m.source ILIKE $4)" +
		" ORDER BY m.created_at DESC LIMIT 10 OFFSET 10"
	if sql != want {
		t.Errorf("sql =\n%s\nwant\n%s", sql, want)
	}
	if len(args) != 4 {
		t.Fatalf("args = %v", args)
	}
	if args[2] != "%vote%" {
		t.Errorf("args[2] = %v, want %%vote%%", args[2])
	}
}

func TestBuilderBuildCount(t *testing.T) {
	sql, args := query.NewBuilder(scoreProjection()).
		WhereEquals("category", ptr("Political")).
		BuildCount()

	want := "SELECT COUNT(*) FROM public.scores s JOIN public.bias_categories c ON c.id = s.category_id WHERE c.name = $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 {
		t.Errorf("args = %v", args)
	}
}

func TestBuilderSortOverride(t *testing.T) {
	sql, _ := query.NewBuilder(mediaProjection(), query.SortField{Field: "created_at"}).
		OrderByFields(query.ParseSortFields("-title")).
		Build()

	want := "SELECT m.id, m.title, m.source, m.created_at FROM public.media m ORDER BY m.title DESC"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}

func TestBuilderIgnoresUnmappedSort(t *testing.T) {
	sql, _ := query.NewBuilder(mediaProjection(), query.SortField{Field: "created_at", Descending: true}).
		OrderByFields(query.ParseSortFields("title;DROP TABLE media,-nope")).
		Build()

	want := "SELECT m.id, m.title, m.source, m.created_at FROM public.media m ORDER BY m.created_at DESC"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}

func TestBuilderSortByColumnName(t *testing.T) {
	p := query.NewProjectionMap("public", "media", "m").
		Project("title", "Title").
		Project("created_at", "CreatedAt")

	sql, _ := query.NewBuilder(p).
		OrderByFields(query.ParseSortFields("-created_at,Title")).
		Build()

	want := "SELECT m.title, m.created_at FROM public.media m ORDER BY m.created_at DESC, m.title ASC"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}

func TestWhereContainsEscapesWildcards(t *testing.T) {
	_, args := query.NewBuilder(mediaProjection()).
		WhereContains("title", ptr(`50%_off\`)).
		Build()

	if len(args) != 1 || args[0] != `%50\%\_off\\%` {
		t.Errorf("args = %q", args)
	}
}
