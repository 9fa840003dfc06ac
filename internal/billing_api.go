package internal

import (
	"context"

	"github.com/rm-hull/clawdash/internal/models"
)

type BillingAPI struct {
	c *Client
}

func (c *Client) Billing() *BillingAPI {
	return &BillingAPI{c: c}
}

func (api *BillingAPI) Plans(ctx context.Context) ([]models.BillingPlan, error) {
	return listAll[models.BillingPlan](ctx, api.c, "/billing/plans/", nil)
}

func (api *BillingAPI) Subscription(ctx context.Context) (*models.Subscription, error) {
	return getOne[models.Subscription](ctx, api.c, "/billing/subscription/")
}

func (api *BillingAPI) Usage(ctx context.Context) (*models.UsageSummary, error) {
	return getOne[models.UsageSummary](ctx, api.c, "/billing/usage/")
}
