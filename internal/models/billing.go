package models

import "time"

type BillingPlan struct {
	ID                  int     `json:"id"`
	Name                string  `json:"name"`
	PlanType            string  `json:"plan_type"`
	Description         string  `json:"description"`
	PriceMonthly        float64 `json:"price_monthly,string"`
	PriceYearly         float64 `json:"price_yearly,string"`
	MaxWorkspaces       int     `json:"max_workspaces"`
	MaxChannels         int     `json:"max_channels"`
	MaxMessagesPerMonth int     `json:"max_messages_per_month"`
	MaxSkills           int     `json:"max_skills"`
}

type Subscription struct {
	ID                 int          `json:"id"`
	Plan               *BillingPlan `json:"plan"`
	Interval           string       `json:"interval"`
	Status             string       `json:"status"`
	CurrentPeriodStart *time.Time   `json:"current_period_start"`
	CurrentPeriodEnd   *time.Time   `json:"current_period_end"`
	CancelAtPeriodEnd  bool         `json:"cancel_at_period_end"`
	IsActive           bool         `json:"is_active"`
}

type UsageLog struct {
	ID               int     `json:"id"`
	Workspace        int     `json:"workspace"`
	WorkspaceName    string  `json:"workspace_name"`
	Date             string  `json:"date"`
	MessageCount     int     `json:"message_count"`
	TokenCountInput  int64   `json:"token_count_input"`
	TokenCountOutput int64   `json:"token_count_output"`
	TotalTokens      int64   `json:"total_tokens"`
	EstimatedCost    float64 `json:"estimated_cost,string"`
}

type UsageSummary struct {
	TotalMessages int64      `json:"total_messages"`
	TotalTokens   int64      `json:"total_tokens"`
	TotalCost     float64    `json:"total_cost,string"`
	PeriodStart   string     `json:"period_start"`
	PeriodEnd     string     `json:"period_end"`
	DailyUsage    []UsageLog `json:"daily_usage"`
}
