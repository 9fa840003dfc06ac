package internal

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

const CRON_SCHEDULE_REFRESH = "*/5 * * * *"    // Every 5 minutes
const CRON_SCHEDULE_WORKSPACES = "*/15 * * * *" // Every 15 minutes

// refreshWindow is how close to expiry the access token may get before the
// keep-alive job renews it.
const refreshWindow = 10 * time.Minute

type Schedules struct {
	Refresh    string
	Workspaces string
}

func DefaultSchedules() Schedules {
	return Schedules{
		Refresh:    CRON_SCHEDULE_REFRESH,
		Workspaces: CRON_SCHEDULE_WORKSPACES,
	}
}

// StartCron keeps the session alive and reports workspace status. An empty schedule
// disables the corresponding job.
func StartCron(client *Client, schedules Schedules) (*cron.Cron, error) {

	c := cron.New()

	log.Print("Starting CRON jobs to keep the session alive and poll workspace status")

	if schedules.Refresh != "" {
		if _, err := c.AddFunc(schedules.Refresh, func() {
			keepAlive(context.Background(), client)
		}); err != nil {
			return nil, err
		}
	}

	if schedules.Workspaces != "" {
		if _, err := c.AddFunc(schedules.Workspaces, func() {
			pollWorkspaces(context.Background(), client)
		}); err != nil {
			return nil, err
		}
	}

	c.Start()
	return c, nil
}

func keepAlive(ctx context.Context, client *Client) {
	if client.State() == StateAnonymous {
		log.Printf("Not logged in, skipping token refresh")
		return
	}

	refreshed, err := client.RefreshIfExpiring(ctx, refreshWindow)
	if err != nil {
		log.Printf("Error refreshing access token: %v\n", err)
		return
	}
	if refreshed {
		log.Printf("Access token refreshed ahead of expiry")
	}
}

func pollWorkspaces(ctx context.Context, client *Client) {
	if client.State() == StateAnonymous {
		return
	}

	workspaces, err := client.Workspaces().List(ctx)
	if err != nil {
		log.Printf("Error fetching workspaces: %v\n", err)
		return
	}

	for _, ws := range workspaces {
		status, err := client.Workspaces().Status(ctx, ws.ID)
		if err != nil {
			log.Printf("Error fetching status of workspace %d (%s): %v\n", ws.ID, ws.Name, err)
			continue
		}
		if status.ErrorMessage != "" {
			log.Printf("Workspace %d (%s): %s, error: %s", ws.ID, ws.Name, status.Status, status.ErrorMessage)
			continue
		}
		log.Printf("Workspace %d (%s): %s", ws.ID, ws.Name, status.Status)
	}
	log.Printf("Polled %d workspaces", len(workspaces))
}
