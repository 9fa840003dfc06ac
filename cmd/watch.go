package cmd

import (
	"context"
	"log"

	"github.com/rm-hull/clawdash/internal"
)

// Watch keeps the session alive and polls workspace status until ctx is done.
func Watch(ctx context.Context, opts Options, schedules internal.Schedules) error {
	banner()

	a, err := bootstrap(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	c, err := internal.StartCron(a.client, schedules)
	if err != nil {
		return err
	}

	<-ctx.Done()
	log.Printf("Stopping CRON jobs")
	<-c.Stop().Done()
	return nil
}
