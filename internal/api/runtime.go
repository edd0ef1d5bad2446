package api

import (
	"github.com/veracity-io/veracity/internal/infrastructure"
	"github.com/veracity-io/veracity/pkg/pagination"
)

// Runtime bundles infrastructure with the API-level settings domain systems need.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
}
