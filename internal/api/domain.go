package api

import (
	"github.com/veracity-io/veracity/internal/verdicts"
)

// Domain holds the initialized domain systems served by the API module.
type Domain struct {
	Verdicts verdicts.System
}

func newDomain(rt *Runtime) *Domain {
	store := verdicts.NewStore(rt.Database.Connection(), rt.Logger)
	volatile := verdicts.NewVolatileCache(rt.Cache, rt.Logger)

	return &Domain{
		Verdicts: verdicts.New(store, volatile, rt.Classifier, rt.Logger, rt.Pagination),
	}
}
