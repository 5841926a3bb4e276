package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	awsclient "tasnim.dev/aws-netmap/internal/aws"
	"tasnim.dev/aws-netmap/internal/aws/network"
	"tasnim.dev/aws-netmap/internal/config"
	"tasnim.dev/aws-netmap/internal/snapshot"
	"tasnim.dev/aws-netmap/internal/store"
	"tasnim.dev/aws-netmap/internal/topology"
)

// sourceFlags select where a snapshot comes from: the live account, a saved
// snapshot file, or the run history.
type sourceFlags struct {
	profile      string
	region       string
	fromSnapshot string
	replay       bool
	runID        string
	noHistory    bool
	sequential   bool
	classify     bool
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.profile, "profile", "p", "", "AWS profile to use")
	cmd.Flags().StringVarP(&f.region, "region", "r", "", "AWS region to use")
	cmd.Flags().StringVar(&f.fromSnapshot, "from-snapshot", "", "read a saved snapshot (.yaml or .json) instead of listing the account")
	cmd.Flags().BoolVar(&f.replay, "replay", false, "use the most recent snapshot from the run history")
	cmd.Flags().StringVar(&f.runID, "run", "", "use the snapshot of a specific recorded run")
	cmd.Flags().BoolVar(&f.noHistory, "no-history", false, "do not record live runs in the history database")
	cmd.Flags().BoolVar(&f.sequential, "sequential", false, "issue listing calls one at a time")
	cmd.Flags().BoolVar(&f.classify, "classify", true, "classify subnets as public from their route tables")
	cmd.MarkFlagsMutuallyExclusive("from-snapshot", "replay", "run")
}

func (f *sourceFlags) live() bool {
	return f.fromSnapshot == "" && !f.replay && f.runID == ""
}

// load returns a complete snapshot and its correlated graph, or an error.
// A partial snapshot is never correlated.
func (f *sourceFlags) load(ctx context.Context, cfg *config.Config) (*snapshot.Snapshot, *topology.Graph, error) {
	if f.live() {
		return f.discover(ctx, cfg)
	}

	snap, err := f.loadSaved(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return snap, topology.Build(snap, f.classify), nil
}

func (f *sourceFlags) loadSaved(ctx context.Context, cfg *config.Config) (*snapshot.Snapshot, error) {
	logger := loggerFromContext(ctx)

	switch {
	case f.fromSnapshot != "":
		snap, err := snapshot.LoadFile(f.fromSnapshot)
		if err != nil {
			return nil, fmt.Errorf("reading snapshot: %w", err)
		}
		logger.Info("Loaded snapshot", "path", f.fromSnapshot, "taken_at", snap.TakenAt)
		return snap, nil

	case f.replay || f.runID != "":
		hist, err := store.Open(cfg.HistoryPath())
		if err != nil {
			return nil, fmt.Errorf("opening history: %w", err)
		}
		defer hist.Close()

		var (
			snap *snapshot.Snapshot
			run  store.Run
		)
		if f.runID != "" {
			snap, run, err = hist.Get(ctx, f.runID)
		} else {
			snap, run, err = hist.Latest(ctx)
		}
		if errors.Is(err, store.ErrNoRuns) {
			return nil, fmt.Errorf("nothing to replay from %s: %w", cfg.HistoryPath(), err)
		}
		if err != nil {
			return nil, err
		}
		logger.Info("Replaying run", "id", run.ID, "taken_at", run.TakenAt, "account", run.AccountID)
		return snap, nil
	}
	return nil, errors.New("no saved snapshot selected")
}

func (f *sourceFlags) discover(ctx context.Context, cfg *config.Config) (*snapshot.Snapshot, *topology.Graph, error) {
	logger := loggerFromContext(ctx)

	profile, region := cfg.Merge(f.profile, f.region)
	client, err := awsclient.NewServiceClient(ctx, profile, region)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing AWS client: %w", err)
	}

	p := newProgress(logger)
	snap, g, err := topology.Discover(ctx, client.Network, topology.DiscoverOptions{
		FetchOptions: snapshot.FetchOptions{
			Sequential: f.sequential || !cfg.Concurrent(),
			AccountID:  client.AccountID,
			Region:     client.Region,
		},
		Classify: f.classify,
	})
	if err != nil {
		if code := network.ErrorCode(err); code != "" {
			logger.Error("Listing failed", "code", code)
		}
		return nil, nil, err
	}
	c := snap.Counts()
	p.done("Listed resources",
		"vpcs", c.Vpcs, "subnets", c.Subnets, "security_groups", c.SecurityGroups,
		"interfaces", c.Interfaces, "network_acls", c.NetworkAcls, "instances", c.Instances)

	if !f.noHistory {
		f.record(ctx, cfg, snap)
	}
	return snap, g, nil
}

// record saves snap to the history. Failures are logged, not returned, so a
// broken history never blocks rendering.
func (f *sourceFlags) record(ctx context.Context, cfg *config.Config, snap *snapshot.Snapshot) {
	logger := loggerFromContext(ctx)

	hist, err := store.Open(cfg.HistoryPath())
	if err != nil {
		logger.Warn("History unavailable", "err", err)
		return
	}
	defer hist.Close()

	run, err := hist.Record(ctx, snap)
	if err != nil {
		logger.Warn("Could not record run", "err", err)
		return
	}
	logger.Debug("Recorded run", "id", run.ID, "db", cfg.HistoryPath())
}
