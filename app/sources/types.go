package sources

import (
	"context"

	"github.com/lysyi3m/contest-comb/app/contest"
)

// Source is one contest provider. Fetch obtains the provider's native
// records and normalizes them into contests; the Platform field on the
// returned records is left empty, the aggregator tags it. A Fetch error
// means the whole source failed this round; individually malformed records
// are skipped inside Fetch instead.
type Source interface {
	Platform() string
	Fetch(ctx context.Context) ([]contest.Contest, error)
}
