package stats

import (
	"testing"

	"github.com/rm-hull/clawdash/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDeriveEmpty(t *testing.T) {
	stats := Derive(nil, nil, 0)

	assert.Equal(t, 0, stats.TotalListings)
	assert.Equal(t, 0, stats.TotalApplications)
	assert.Empty(t, stats.ScoreDistribution)
	assert.Empty(t, stats.TopListings)
	assert.Zero(t, stats.AverageScore)
}

func TestDerive(t *testing.T) {
	listings := []models.JobListing{
		{ID: 1, MatchScore: 92, SourceBoard: "linkedin"},
		{ID: 2, MatchScore: 55, SourceBoard: "indeed"},
		{ID: 3, MatchScore: 92, SourceBoard: "linkedin"},
		{ID: 4, MatchScore: 41.5, SourceBoard: ""},
	}
	applications := []models.JobApplication{
		{ID: 10, Status: models.ApplicationApplied},
		{ID: 11, Status: models.ApplicationApplied},
		{ID: 12, Status: models.ApplicationFailed},
	}

	stats := Derive(listings, applications, 10)

	assert.Equal(t, 4, stats.TotalListings)
	assert.Equal(t, 3, stats.TotalApplications)
	assert.Equal(t, map[string]int{"applied": 2, "failed": 1}, stats.ApplicationStatus)

	assert.Equal(t, 41.5, stats.LowestScore)
	assert.Equal(t, 92.0, stats.HighestScore)
	assert.Equal(t, 70.1, stats.AverageScore) // 280.5 / 4 = 70.125
	assert.Equal(t, []int{1, 3}, stats.TopListings)
	assert.InDelta(t, 22.39, stats.StandardDeviation, 0.01)

	assert.Equal(t, map[string]int{"90-99": 2, "50-59": 1, "40-49": 1}, stats.ScoreDistribution)
	assert.Equal(t, map[string]int{"linkedin": 2, "indeed": 1, "unknown": 1}, stats.BoardDistribution)
}

func TestDeriveSingleListing(t *testing.T) {
	stats := Derive([]models.JobListing{{ID: 7, MatchScore: 80}}, nil, 25)

	assert.Equal(t, 80.0, stats.AverageScore)
	assert.Zero(t, stats.StandardDeviation)
	assert.Equal(t, map[string]int{"75-99": 1}, stats.ScoreDistribution)
}
