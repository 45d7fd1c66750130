package service

import (
	"context"
	"log"

	"festival_portal/docstore"
)

// queryTier is one strategy in an ordered degradation chain. Earlier tiers ask
// more of the store (composite filter+order); later tiers ask less and push
// the difference onto client-side compensation.
type queryTier struct {
	name string
	run  func(ctx context.Context) ([]docstore.Document, error)
}

// runWithFallback tries the tiers in order and returns the first success along
// with the index of the tier that produced it, so callers know which
// compensation to apply. Exhaustion returns (nil, -1, lastErr); read paths
// degrade that to an empty result instead of failing the caller.
func runWithFallback(ctx context.Context, collection string, tiers []queryTier) ([]docstore.Document, int, error) {
	var lastErr error
	for i, tier := range tiers {
		docs, err := tier.run(ctx)
		if err != nil {
			log.Printf("%s: query tier %q failed, degrading: %v", collection, tier.name, err)
			lastErr = err
			continue
		}
		return docs, i, nil
	}
	return nil, -1, lastErr
}
