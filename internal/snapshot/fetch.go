package snapshot

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Lister returns complete, fully paginated collections for each resource
// kind. Implementations follow continuation tokens themselves.
type Lister interface {
	ListVpcs(ctx context.Context) ([]Vpc, error)
	ListSubnets(ctx context.Context) ([]Subnet, error)
	ListInterfaces(ctx context.Context) ([]Interface, error)
	ListInstances(ctx context.Context) ([]Reservation, error)
	ListSecurityGroups(ctx context.Context) ([]SecurityGroup, error)
	ListNetworkAcls(ctx context.Context) ([]NetworkAcl, error)
}

// RouteTableLister is implemented by listers that can also return route
// tables, which are used to classify subnets as public.
type RouteTableLister interface {
	ListRouteTables(ctx context.Context) ([]RouteTable, error)
}

type FetchOptions struct {
	// Sequential issues the listing calls one after another instead of
	// concurrently.
	Sequential bool
	// RouteTables also lists route tables when the lister supports it.
	RouteTables bool
	AccountID   string
	Region      string
}

// Fetch collects every listing into a Snapshot. The first failing listing
// cancels the remaining ones and its error is returned; no partial snapshot
// is ever returned.
func Fetch(ctx context.Context, l Lister, opts FetchOptions) (*Snapshot, error) {
	snap := &Snapshot{
		AccountID: opts.AccountID,
		Region:    opts.Region,
	}

	g, gctx := errgroup.WithContext(ctx)
	if opts.Sequential {
		g.SetLimit(1)
	}

	g.Go(func() (err error) {
		snap.Vpcs, err = l.ListVpcs(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Subnets, err = l.ListSubnets(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.SecurityGroups, err = l.ListSecurityGroups(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Interfaces, err = l.ListInterfaces(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.NetworkAcls, err = l.ListNetworkAcls(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Reservations, err = l.ListInstances(gctx)
		return err
	})
	if rl, ok := l.(RouteTableLister); ok && opts.RouteTables {
		g.Go(func() (err error) {
			snap.RouteTables, err = rl.ListRouteTables(gctx)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	snap.TakenAt = time.Now().UTC()
	return snap, nil
}
