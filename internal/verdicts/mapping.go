package verdicts

import (
	"net/url"

	"github.com/veracity-io/veracity/pkg/query"
	"github.com/veracity-io/veracity/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "verdicts", "v").
	Project("hash", "Hash").
	Project("badge", "Badge").
	Project("details", "Details").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for verdict queries.
// Nil fields are ignored.
type Filters struct {
	Badge *Badge `json:"badge,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereEquals("Badge", f.Badge)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Unrecognized badge values are ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if b := Badge(values.Get("badge")); b.Valid() {
		f.Badge = &b
	}

	return f
}

func scanVerdict(s repository.Scanner) (Verdict, error) {
	var v Verdict
	err := s.Scan(
		&v.Hash,
		&v.Badge,
		&v.Details,
		&v.CreatedAt,
	)
	return v, err
}
