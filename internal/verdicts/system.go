package verdicts

import (
	"context"

	"github.com/veracity-io/veracity/pkg/pagination"
)

// System defines the public contract for verdict domain operations.
type System interface {
	Handler() *Handler

	// Classify returns the verdict for the command's hash, consulting the
	// volatile tier, then the durable tier, then the external classifier.
	// A fresh classification is written durable-first into both tiers.
	Classify(ctx context.Context, cmd ClassifyCommand) (*Verdict, error)

	// Find returns the cached verdict for a hash without ever classifying.
	// A durable hit repopulates the volatile tier.
	Find(ctx context.Context, hash string) (*Verdict, error)

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Verdict], error)

	// Delete invalidates a verdict in both tiers, durable first.
	Delete(ctx context.Context, hash string) error
}

// Classifier produces raw classification text for a hash/expected pair.
// It is satisfied by classifier.System.
type Classifier interface {
	Generate(ctx context.Context, hash, expected string) (string, error)
}
