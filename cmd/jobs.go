package cmd

import (
	"context"

	"github.com/rm-hull/clawdash/internal"
	"github.com/rm-hull/clawdash/internal/stats"
)

func JobsDashboard(ctx context.Context, opts Options) error {
	a, err := bootstrap(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	dashboard, err := a.client.JobApply().Dashboard(ctx)
	if err != nil {
		return err
	}
	return printJSON(dashboard)
}

func JobsListings(ctx context.Context, opts Options, filter internal.ListingFilter) error {
	a, err := bootstrap(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	listings, err := a.client.JobApply().Listings(ctx, filter)
	if err != nil {
		return err
	}
	return printJSON(listings)
}

func JobsStats(ctx context.Context, opts Options, filter internal.ListingFilter, bucketSize int) error {
	a, err := bootstrap(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	listings, err := a.client.JobApply().Listings(ctx, filter)
	if err != nil {
		return err
	}
	applications, err := a.client.JobApply().Applications(ctx)
	if err != nil {
		return err
	}
	return printJSON(stats.Derive(listings, applications, bucketSize))
}
