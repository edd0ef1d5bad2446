package query_test

import (
	"testing"

	"github.com/veracity-io/veracity/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "verdicts", "v").
		Project("hash", "Hash").
		Project("badge", "Badge").
		Project("created_at", "CreatedAt")
}

func ptr(s string) *string { return &s }

func TestProjectionMapFrom(t *testing.T) {
	p := testProjection()
	got := p.From()
	want := "public.verdicts v"
	if got != want {
		t.Errorf("From() = %q, want %q", got, want)
	}
}

func TestProjectionMapColumns(t *testing.T) {
	p := testProjection()
	got := p.Columns()
	want := "v.hash, v.badge, v.created_at"
	if got != want {
		t.Errorf("Columns() = %q, want %q", got, want)
	}
}

func TestProjectionMapColumnLookup(t *testing.T) {
	p := testProjection()

	tests := []struct {
		name     string
		viewName string
		want     string
	}{
		{"mapped field", "Badge", "v.badge"},
		{"mapped camel", "CreatedAt", "v.created_at"},
		{"unmapped passthrough", "unknown", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Column(tt.viewName); got != tt.want {
				t.Errorf("Column(%q) = %q, want %q", tt.viewName, got, tt.want)
			}
		})
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
		{
			name:  "single ascending",
			input: "Badge",
			want:  []query.SortField{{Field: "Badge", Descending: false}},
		},
		{
			name:  "single descending",
			input: "-CreatedAt",
			want:  []query.SortField{{Field: "CreatedAt", Descending: true}},
		},
		{
			name:  "multiple mixed",
			input: "Badge,-CreatedAt",
			want: []query.SortField{
				{Field: "Badge", Descending: false},
				{Field: "CreatedAt", Descending: true},
			},
		},
		{
			name:  "with spaces",
			input: " Badge , -CreatedAt ",
			want: []query.SortField{
				{Field: "Badge", Descending: false},
				{Field: "CreatedAt", Descending: true},
			},
		},
		{
			name:  "empty parts skipped",
			input: "Badge,,CreatedAt",
			want: []query.SortField{
				{Field: "Badge", Descending: false},
				{Field: "CreatedAt", Descending: false},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if tt.want == nil {
				if got != nil {
					t.Errorf("ParseSortFields(%q) = %v, want nil", tt.input, got)
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseSortFields(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseSortFields(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuilderBuildCount(t *testing.T) {
	b := query.NewBuilder(testProjection())
	sql, args := b.BuildCount()

	wantSQL := "SELECT COUNT(*) FROM public.verdicts v"
	if sql != wantSQL {
		t.Errorf("BuildCount() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 0 {
		t.Errorf("BuildCount() args = %v, want empty", args)
	}
}

func TestBuilderBuildCountWithConditions(t *testing.T) {
	b := query.NewBuilder(testProjection())
	b.WhereEquals("Badge", "TRUSTED")
	sql, args := b.BuildCount()

	wantSQL := "SELECT COUNT(*) FROM public.verdicts v WHERE v.badge = $1"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != "TRUSTED" {
		t.Errorf("args = %v, want [TRUSTED]", args)
	}
}

func TestBuilderBuildPage(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "CreatedAt", Descending: true})
	sql, args := b.BuildPage(2, 10)

	wantSQL := "SELECT v.hash, v.badge, v.created_at FROM public.verdicts v ORDER BY v.created_at DESC LIMIT 10 OFFSET 10"
	if sql != wantSQL {
		t.Errorf("BuildPage() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 0 {
		t.Errorf("BuildPage() args = %v, want empty", args)
	}
}

func TestBuilderBuildPageWithConditions(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "Hash"})
	b.WhereSearch(ptr("abc"), "Hash")
	sql, args := b.BuildPage(3, 25)

	wantSQL := "SELECT v.hash, v.badge, v.created_at FROM public.verdicts v WHERE (v.hash ILIKE $1) ORDER BY v.hash ASC LIMIT 25 OFFSET 50"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != "%abc%" {
		t.Errorf("args = %v, want [%%abc%%]", args)
	}
}

func TestBuilderBuildSingle(t *testing.T) {
	b := query.NewBuilder(testProjection())
	sql, args := b.BuildSingle("Hash", "abc123")

	wantSQL := "SELECT v.hash, v.badge, v.created_at FROM public.verdicts v WHERE v.hash = $1"
	if sql != wantSQL {
		t.Errorf("BuildSingle() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != "abc123" {
		t.Errorf("BuildSingle() args = %v, want [abc123]", args)
	}
}

func TestBuilderWhereEqualsNilSkipped(t *testing.T) {
	b := query.NewBuilder(testProjection())

	var badge *string
	b.WhereEquals("Badge", badge)
	sql, args := b.BuildCount()

	wantSQL := "SELECT COUNT(*) FROM public.verdicts v"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuilderWhereSearch(t *testing.T) {
	b := query.NewBuilder(testProjection())
	b.WhereSearch(ptr("abc"), "Hash", "Badge")
	sql, args := b.BuildCount()

	wantSQL := "SELECT COUNT(*) FROM public.verdicts v WHERE (v.hash ILIKE $1 OR v.badge ILIKE $2)"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 2 || args[0] != "%abc%" || args[1] != "%abc%" {
		t.Errorf("args = %v, want [%%abc%% %%abc%%]", args)
	}
}

func TestBuilderWhereSearchNilSkipped(t *testing.T) {
	b := query.NewBuilder(testProjection())
	b.WhereSearch(nil, "Hash")
	_, args := b.BuildCount()

	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuilderMultipleConditions(t *testing.T) {
	b := query.NewBuilder(testProjection())
	b.WhereEquals("Badge", "UNTRUSTED")
	b.WhereSearch(ptr("abc"), "Hash")
	sql, args := b.BuildCount()

	wantSQL := "SELECT COUNT(*) FROM public.verdicts v WHERE v.badge = $1 AND (v.hash ILIKE $2)"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 2 {
		t.Errorf("args length = %d, want 2", len(args))
	}
}

func TestBuilderOrderByFields(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "Hash", Descending: false})
	b.OrderByFields([]query.SortField{
		{Field: "CreatedAt", Descending: true},
		{Field: "Badge", Descending: false},
	})
	sql, _ := b.BuildPage(1, 10)

	wantSQL := "SELECT v.hash, v.badge, v.created_at FROM public.verdicts v ORDER BY v.created_at DESC, v.badge ASC LIMIT 10 OFFSET 0"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
}
