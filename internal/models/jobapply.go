package models

import "time"

const (
	ApplicationQueued          = "queued"
	ApplicationGeneratingCover = "generating_cover"
	ApplicationApplying        = "applying"
	ApplicationApplied         = "applied"
	ApplicationFailed          = "failed"
	ApplicationRejected        = "rejected"
	ApplicationInterview       = "interview"
	ApplicationOffer           = "offer"
	ApplicationWithdrawn       = "withdrawn"
)

type JobListing struct {
	ID              int            `json:"id"`
	Title           string         `json:"title"`
	Company         string         `json:"company"`
	Location        string         `json:"location"`
	URL             string         `json:"url"`
	Description     string         `json:"description,omitempty"`
	SalaryInfo      string         `json:"salary_info"`
	JobType         string         `json:"job_type"`
	SourceBoard     string         `json:"source_board"`
	MatchScore      float64        `json:"match_score"`
	ScoreBreakdown  map[string]any `json:"score_breakdown,omitempty"`
	MatchedKeywords []string       `json:"matched_keywords"`
	Dismissed       bool           `json:"dismissed"`
	DiscoveredAt    time.Time      `json:"discovered_at"`
	HasApplication  bool           `json:"has_application"`
}

type JobApplication struct {
	ID             int        `json:"id"`
	Listing        int        `json:"listing"`
	ListingTitle   string     `json:"listing_title"`
	ListingCompany string     `json:"listing_company"`
	ListingURL     string     `json:"listing_url"`
	Resume         *int       `json:"resume"`
	Status         string     `json:"status"`
	CoverLetter    string     `json:"cover_letter,omitempty"`
	AppliedAt      *time.Time `json:"applied_at"`
	AppliedVia     string     `json:"applied_via"`
	ErrorMessage   string     `json:"error_message"`
	RetryCount     int        `json:"retry_count"`
	Notes          string     `json:"notes"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type JobPreferences struct {
	ID                   int      `json:"id,omitempty"`
	Keywords             []string `json:"keywords"`
	ExcludedKeywords     []string `json:"excluded_keywords"`
	Location             string   `json:"location"`
	RemoteOK             bool     `json:"remote_ok"`
	SalaryMin            *int     `json:"salary_min"`
	SalaryMax            *int     `json:"salary_max"`
	EnabledBoards        []string `json:"enabled_boards"`
	AutoApplyEnabled     bool     `json:"auto_apply_enabled"`
	AutoApplyMinScore    float64  `json:"auto_apply_min_score"`
	MaxDailyApplications int      `json:"max_daily_applications"`
	Workspace            *int     `json:"workspace"`
}

type JobDashboard struct {
	TotalListings      int              `json:"total_listings"`
	TotalApplications  int              `json:"total_applications"`
	AppliedCount       int              `json:"applied_count"`
	InterviewCount     int              `json:"interview_count"`
	FailedCount        int              `json:"failed_count"`
	AvgMatchScore      float64          `json:"avg_match_score"`
	RecentListings     []JobListing     `json:"recent_listings"`
	RecentApplications []JobApplication `json:"recent_applications"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type JobStatistics struct {
	TotalListings     int            `json:"total_listings"`
	TotalApplications int            `json:"total_applications"`
	ApplicationStatus map[string]int `json:"application_status"`
	AverageScore      float64        `json:"average_score"`
	LowestScore       float64        `json:"lowest_score"`
	HighestScore      float64        `json:"highest_score"`
	StandardDeviation float64        `json:"standard_deviation"`
	ScoreDistribution map[string]int `json:"score_distribution"`
	BoardDistribution map[string]int `json:"board_distribution"`
	TopListings       []int          `json:"top_listings"`
}
