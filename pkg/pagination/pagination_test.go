package pagination_test

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/veracity-io/veracity/pkg/pagination"
)

func defaultConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func TestConfigFinalizeDefaults(t *testing.T) {
	cfg := pagination.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.DefaultPageSize != 20 {
		t.Errorf("DefaultPageSize = %d, want 20", cfg.DefaultPageSize)
	}
	if cfg.MaxPageSize != 100 {
		t.Errorf("MaxPageSize = %d, want 100", cfg.MaxPageSize)
	}
}

func TestConfigFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("TEST_PAGE_SIZE", "50")
	t.Setenv("TEST_MAX_PAGE", "200")

	env := &pagination.ConfigEnv{
		DefaultPageSize: "TEST_PAGE_SIZE",
		MaxPageSize:     "TEST_MAX_PAGE",
	}

	cfg := pagination.Config{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.DefaultPageSize != 50 {
		t.Errorf("DefaultPageSize = %d, want 50", cfg.DefaultPageSize)
	}
	if cfg.MaxPageSize != 200 {
		t.Errorf("MaxPageSize = %d, want 200", cfg.MaxPageSize)
	}
}

func TestConfigFinalizeValidation(t *testing.T) {
	cfg := pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}
	err := cfg.Finalize(nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "default_page_size cannot exceed max_page_size") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConfigMerge(t *testing.T) {
	base := pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
	overlay := pagination.Config{DefaultPageSize: 50}
	base.Merge(&overlay)

	if base.DefaultPageSize != 50 {
		t.Errorf("DefaultPageSize = %d, want 50", base.DefaultPageSize)
	}
	if base.MaxPageSize != 100 {
		t.Errorf("MaxPageSize = %d, want 100 (unchanged)", base.MaxPageSize)
	}
}

func TestPageRequestNormalize(t *testing.T) {
	cfg := defaultConfig()

	tests := []struct {
		name         string
		req          pagination.PageRequest
		wantPage     int
		wantPageSize int
	}{
		{
			name:         "zero values get defaults",
			req:          pagination.PageRequest{},
			wantPage:     1,
			wantPageSize: 20,
		},
		{
			name:         "negative page corrected",
			req:          pagination.PageRequest{Page: -1, PageSize: 10},
			wantPage:     1,
			wantPageSize: 10,
		},
		{
			name:         "page size clamped to max",
			req:          pagination.PageRequest{Page: 1, PageSize: 500},
			wantPage:     1,
			wantPageSize: 100,
		},
		{
			name:         "valid values preserved",
			req:          pagination.PageRequest{Page: 3, PageSize: 50},
			wantPage:     3,
			wantPageSize: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Normalize(cfg)
			if tt.req.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", tt.req.Page, tt.wantPage)
			}
			if tt.req.PageSize != tt.wantPageSize {
				t.Errorf("PageSize = %d, want %d", tt.req.PageSize, tt.wantPageSize)
			}
		})
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	values, err := url.ParseQuery("page=2&page_size=30&search=abc&sort=Badge,-CreatedAt")
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}

	req := pagination.PageRequestFromQuery(values, defaultConfig())

	if req.Page != 2 {
		t.Errorf("Page = %d, want 2", req.Page)
	}
	if req.PageSize != 30 {
		t.Errorf("PageSize = %d, want 30", req.PageSize)
	}
	if req.Search == nil || *req.Search != "abc" {
		t.Errorf("Search = %v, want abc", req.Search)
	}
	if len(req.Sort) != 2 {
		t.Fatalf("Sort length = %d, want 2", len(req.Sort))
	}
	if req.Sort[1].Field != "CreatedAt" || !req.Sort[1].Descending {
		t.Errorf("Sort[1] = %+v, want CreatedAt descending", req.Sort[1])
	}
}

func TestPageRequestFromQueryEmpty(t *testing.T) {
	req := pagination.PageRequestFromQuery(url.Values{}, defaultConfig())

	if req.Page != 1 {
		t.Errorf("Page = %d, want 1", req.Page)
	}
	if req.PageSize != 20 {
		t.Errorf("PageSize = %d, want 20", req.PageSize)
	}
	if req.Search != nil {
		t.Errorf("Search = %v, want nil", req.Search)
	}
}

func TestSortFieldsUnmarshalString(t *testing.T) {
	var fields pagination.SortFields
	if err := json.Unmarshal([]byte(`"Badge,-CreatedAt"`), &fields); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if len(fields) != 2 {
		t.Fatalf("length = %d, want 2", len(fields))
	}
	if fields[0].Field != "Badge" || fields[0].Descending {
		t.Errorf("fields[0] = %+v, want Badge ascending", fields[0])
	}
	if fields[1].Field != "CreatedAt" || !fields[1].Descending {
		t.Errorf("fields[1] = %+v, want CreatedAt descending", fields[1])
	}
}

func TestSortFieldsUnmarshalArray(t *testing.T) {
	var fields pagination.SortFields
	data := `[{"Field":"Badge","Descending":false},{"Field":"CreatedAt","Descending":true}]`
	if err := json.Unmarshal([]byte(data), &fields); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if len(fields) != 2 {
		t.Fatalf("length = %d, want 2", len(fields))
	}
	if fields[1].Field != "CreatedAt" || !fields[1].Descending {
		t.Errorf("fields[1] = %+v, want CreatedAt descending", fields[1])
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		pageSize       int
		wantTotalPages int
	}{
		{"even division", 100, 20, 5},
		{"remainder rounds up", 101, 20, 6},
		{"empty still one page", 0, 20, 1},
		{"less than one page", 5, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult([]string{}, tt.total, 1, tt.pageSize)
			if result.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantTotalPages)
			}
		})
	}
}

func TestNewPageResultNilData(t *testing.T) {
	result := pagination.NewPageResult[string](nil, 0, 1, 20)
	if result.Data == nil {
		t.Error("Data should be empty slice, not nil")
	}
}
