package stats

import (
	"fmt"
	"math"

	"github.com/rm-hull/clawdash/internal/models"
)

func Derive(listings []models.JobListing, applications []models.JobApplication, bucketSize int) *models.JobStatistics {
	if bucketSize <= 0 {
		bucketSize = 10
	}
	stats := &models.JobStatistics{
		TotalListings:     len(listings),
		TotalApplications: len(applications),
		ApplicationStatus: make(map[string]int),
		ScoreDistribution: make(map[string]int),
		BoardDistribution: make(map[string]int),
		TopListings:       make([]int, 0),
	}

	for _, app := range applications {
		stats.ApplicationStatus[app.Status]++
	}

	if len(listings) == 0 {
		return stats
	}

	// Lowest/avg/highest score and best matching listings
	lowest := listings[0].MatchScore
	highest := listings[0].MatchScore
	sum := 0.0
	for _, listing := range listings {
		if listing.MatchScore < lowest {
			lowest = listing.MatchScore
		}
		if listing.MatchScore > highest {
			highest = listing.MatchScore
		}
		sum += listing.MatchScore
	}
	stats.LowestScore = lowest
	stats.HighestScore = highest

	avg := sum / float64(len(listings))
	stats.AverageScore = math.Round(avg*10) / 10

	for _, listing := range listings {
		if listing.MatchScore == highest {
			stats.TopListings = append(stats.TopListings, listing.ID)
		}
	}

	// Standard deviation
	if len(listings) > 1 {
		variance := 0.0
		for _, listing := range listings {
			variance += math.Pow(listing.MatchScore-avg, 2)
		}
		variance /= float64(len(listings))
		stats.StandardDeviation = math.Sqrt(variance)
	}

	for _, listing := range listings {
		score := int(listing.MatchScore)
		bucketStart := (score / bucketSize) * bucketSize
		bucketEnd := bucketStart + bucketSize - 1
		bucketKey := fmt.Sprintf("%d-%d", bucketStart, bucketEnd)
		stats.ScoreDistribution[bucketKey]++

		board := listing.SourceBoard
		if board == "" {
			board = "unknown"
		}
		stats.BoardDistribution[board]++
	}

	return stats
}
