package fakeapi

import (
	"time"

	"github.com/rm-hull/clawdash/internal/models"
)

func fixtureWorkspaces() []models.Workspace {
	created := time.Date(2026, 1, 12, 9, 30, 0, 0, time.UTC)
	port := 18789
	return []models.Workspace{
		{
			ID:            1,
			Name:          "Support bot",
			SelectedModel: "claude-sonnet",
			AssignedPort:  &port,
			Status:        models.WorkspaceRunning,
			IsRunning:     true,
			AgentName:     "Ada",
			Temperature:   0.7,
			MaxTokens:     4096,
			CreatedAt:     created,
			UpdatedAt:     created,
		},
		{
			ID:           2,
			Name:         "Research agent",
			Status:       models.WorkspaceError,
			ErrorMessage: "container exited with code 137",
			AgentName:    "Grace",
			Temperature:  0.2,
			MaxTokens:    8192,
			CreatedAt:    created.Add(24 * time.Hour),
			UpdatedAt:    created.Add(48 * time.Hour),
		},
	}
}

func fixtureListings() []models.JobListing {
	discovered := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	return []models.JobListing{
		{ID: 101, Title: "Senior Go Engineer", Company: "Acme", SourceBoard: "linkedin", MatchScore: 91, DiscoveredAt: discovered},
		{ID: 102, Title: "Platform Engineer", Company: "Initech", SourceBoard: "indeed", MatchScore: 74, DiscoveredAt: discovered},
		{ID: 103, Title: "Backend Developer", Company: "Globex", SourceBoard: "linkedin", MatchScore: 62, DiscoveredAt: discovered},
		{ID: 104, Title: "Site Reliability Engineer", Company: "Hooli", SourceBoard: "remoteok", MatchScore: 48, DiscoveredAt: discovered},
		{ID: 105, Title: "Data Engineer", Company: "Umbrella", SourceBoard: "indeed", MatchScore: 33, DiscoveredAt: discovered},
	}
}

func fixtureApplications() []models.JobApplication {
	created := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	applied := created.Add(time.Hour)
	return []models.JobApplication{
		{ID: 201, Listing: 101, ListingTitle: "Senior Go Engineer", ListingCompany: "Acme", Status: models.ApplicationInterview, AppliedAt: &applied, CreatedAt: created, UpdatedAt: applied},
		{ID: 202, Listing: 102, ListingTitle: "Platform Engineer", ListingCompany: "Initech", Status: models.ApplicationApplied, AppliedAt: &applied, CreatedAt: created, UpdatedAt: applied},
		{ID: 203, Listing: 103, ListingTitle: "Backend Developer", ListingCompany: "Globex", Status: models.ApplicationFailed, ErrorMessage: "captcha required", CreatedAt: created, UpdatedAt: created},
	}
}

func fixtureSkillKeys() []models.SkillAPIKey {
	return []models.SkillAPIKey{
		{Key: "BRAVE_API_KEY", Name: "Brave Search API Key", Description: "Required for web search capabilities", URL: "https://brave.com/search/api/"},
		{Key: "SERPER_API_KEY", Name: "Serper API Key", Description: "Alternative search API for Google results", URL: "https://serper.dev/"},
		{Key: "GITHUB_TOKEN", Name: "GitHub Personal Access Token", Description: "Required for GitHub integration skills", URL: "https://github.com/settings/tokens"},
		{Key: "TAVILY_API_KEY", Name: "Tavily API Key", Description: "AI-powered search API", URL: "https://tavily.com/"},
	}
}
