package internal

import (
	"context"
	"fmt"
	neturl "net/url"
	"strconv"
	"strings"

	"github.com/rm-hull/clawdash/internal/models"
)

type JobApplyAPI struct {
	c *Client
}

func (c *Client) JobApply() *JobApplyAPI {
	return &JobApplyAPI{c: c}
}

type ListingFilter struct {
	MinScore int
	Sources  []string
	Hours    int
}

func (f ListingFilter) query() neturl.Values {
	query := neturl.Values{}
	if f.MinScore > 0 {
		query.Set("min_score", strconv.Itoa(f.MinScore))
	}
	if len(f.Sources) > 0 {
		query.Set("source", strings.Join(f.Sources, ","))
	}
	if f.Hours > 0 {
		query.Set("hours", strconv.Itoa(f.Hours))
	}
	return query
}

func (api *JobApplyAPI) Dashboard(ctx context.Context) (*models.JobDashboard, error) {
	return getOne[models.JobDashboard](ctx, api.c, "/jobapply/dashboard/")
}

func (api *JobApplyAPI) Listings(ctx context.Context, filter ListingFilter) ([]models.JobListing, error) {
	return listAll[models.JobListing](ctx, api.c, "/jobapply/listings/", filter.query())
}

func (api *JobApplyAPI) Applications(ctx context.Context) ([]models.JobApplication, error) {
	return listAll[models.JobApplication](ctx, api.c, "/jobapply/applications/", nil)
}

func (api *JobApplyAPI) Apply(ctx context.Context, listingID int) (*models.JobApplication, error) {
	return postOne[models.JobApplication](ctx, api.c, fmt.Sprintf("/jobapply/listings/%d/apply/", listingID), nil)
}

func (api *JobApplyAPI) Dismiss(ctx context.Context, listingID int) error {
	return api.c.Post(ctx, fmt.Sprintf("/jobapply/listings/%d/dismiss/", listingID), nil, nil)
}

func (api *JobApplyAPI) SearchNow(ctx context.Context) (*models.StatusResponse, error) {
	return postOne[models.StatusResponse](ctx, api.c, "/jobapply/listings/search_now/", nil)
}

func (api *JobApplyAPI) RetryApplication(ctx context.Context, applicationID int) (*models.JobApplication, error) {
	return postOne[models.JobApplication](ctx, api.c, fmt.Sprintf("/jobapply/applications/%d/retry/", applicationID), nil)
}

func (api *JobApplyAPI) Preferences(ctx context.Context) (*models.JobPreferences, error) {
	return getOne[models.JobPreferences](ctx, api.c, "/jobapply/preferences/")
}

func (api *JobApplyAPI) UpdatePreferences(ctx context.Context, prefs models.JobPreferences) (*models.JobPreferences, error) {
	var out models.JobPreferences
	if err := api.c.Put(ctx, "/jobapply/preferences/", prefs, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
