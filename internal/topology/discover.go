package topology

import (
	"context"
	"fmt"

	"tasnim.dev/aws-netmap/internal/snapshot"
)

type DiscoverOptions struct {
	snapshot.FetchOptions
	// Classify derives public subnets from route tables when the lister
	// provides them.
	Classify bool
}

// Discover fetches a complete snapshot through l and correlates it. Any
// listing failure aborts the run before correlation. Route tables are only
// listed when classification is on.
func Discover(ctx context.Context, l snapshot.Lister, opts DiscoverOptions) (*snapshot.Snapshot, *Graph, error) {
	fo := opts.FetchOptions
	fo.RouteTables = opts.Classify
	snap, err := snapshot.Fetch(ctx, l, fo)
	if err != nil {
		return nil, nil, fmt.Errorf("listing resources: %w", err)
	}
	return snap, Build(snap, opts.Classify), nil
}

// Build correlates an already fetched snapshot, optionally classifying
// subnets from its route tables.
func Build(snap *snapshot.Snapshot, classify bool) *Graph {
	g := Correlate(snap)
	if classify {
		ClassifySubnets(g, snap.RouteTables)
	}
	return g
}
