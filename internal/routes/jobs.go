package routes

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/rm-hull/clawdash/internal"
	"github.com/rm-hull/clawdash/internal/models"
	"github.com/rm-hull/clawdash/internal/stats"
)

func JobStats(client *internal.Client) func(c *gin.Context) {
	return func(c *gin.Context) {
		bucketSize, err := intQuery(c, "bucket_size", 10)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bucket_size parameter"})
			return
		}
		minScore, err := intQuery(c, "min_score", 0)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_score parameter"})
			return
		}
		hours, err := intQuery(c, "hours", 0)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hours parameter"})
			return
		}

		filter := internal.ListingFilter{MinScore: minScore, Hours: hours}
		if sources := c.Query("source"); sources != "" {
			filter.Sources = strings.Split(sources, ",")
		}

		var listings []models.JobListing
		var applications []models.JobApplication

		g, ctx := errgroup.WithContext(c.Request.Context())
		g.Go(func() error {
			var err error
			listings, err = client.JobApply().Listings(ctx, filter)
			return err
		})
		g.Go(func() error {
			var err error
			applications, err = client.JobApply().Applications(ctx)
			return err
		})

		if err := g.Wait(); err != nil {
			log.Printf("error while fetching job statistics: %v", err)
			c.JSON(upstreamStatus(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, stats.Derive(listings, applications, bucketSize))
	}
}

func intQuery(c *gin.Context, name string, defaultValue int) (int, error) {
	str := c.Query(name)
	if str == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(str)
	if err != nil || value < 0 {
		return 0, strconv.ErrSyntax
	}
	return value, nil
}
