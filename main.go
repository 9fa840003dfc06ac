package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rm-hull/clawdash/cmd"
	"github.com/rm-hull/clawdash/internal"
	"github.com/rm-hull/clawdash/internal/models"
)

func main() {
	var opts cmd.Options

	rootCmd := &cobra.Command{
		Use:          "clawdash",
		Short:        "OpenClaw dashboard client",
		Long:         "Command line client and local gateway for the OpenClaw dashboard API, keeping the login session alive across runs.",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&opts.APIURL, "api-url", "", "Dashboard API base URL")
	rootCmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "Path to the session database")
	rootCmd.PersistentFlags().StringVar(&opts.Profile, "profile", "", "Session profile name")
	rootCmd.PersistentFlags().BoolVar(&opts.LogRequests, "log-requests", false, "Log every outgoing request")

	var password string
	loginCmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Log in and store the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.Login(c.Context(), opts, args[0], password)
		},
	}
	loginCmd.Flags().StringVar(&password, "password", "", "Password (read from CLAWDASH_PASSWORD or stdin when omitted)")

	var register models.RegisterRequest
	registerCmd := &cobra.Command{
		Use:   "register <email>",
		Short: "Create an account and store the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			register.Email = args[0]
			return cmd.Register(c.Context(), opts, register)
		},
	}
	registerCmd.Flags().StringVar(&register.Password, "password", "", "Password (read from CLAWDASH_PASSWORD or stdin when omitted)")
	registerCmd.Flags().StringVar(&register.FirstName, "first-name", "", "First name")
	registerCmd.Flags().StringVar(&register.LastName, "last-name", "", "Last name")
	registerCmd.Flags().StringVar(&register.CompanyName, "company", "", "Company name")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.Logout(opts)
		},
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the session state and current user",
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.WhoAmI(c.Context(), opts)
		},
	}

	profilesCmd := &cobra.Command{
		Use:   "profiles",
		Short: "List stored session profiles",
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.Profiles(opts)
		},
	}

	workspacesCmd := &cobra.Command{
		Use:   "workspaces [status|deploy|stop|logs] [id]",
		Short: "List workspaces or act on one",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Workspaces(c.Context(), opts)
			}
			if len(args) != 2 {
				return c.Usage()
			}
			id, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			return cmd.WorkspaceAction(c.Context(), opts, args[0], id)
		},
	}

	var filter internal.ListingFilter
	var sources string
	var bucketSize int
	jobsCmd := &cobra.Command{
		Use:   "jobs",
		Short: "Show the job application dashboard",
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.JobsDashboard(c.Context(), opts)
		},
	}
	listingsCmd := &cobra.Command{
		Use:   "listings",
		Short: "List discovered job listings",
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.JobsListings(c.Context(), opts, withSources(filter, sources))
		},
	}
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarise job listings and applications",
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.JobsStats(c.Context(), opts, withSources(filter, sources), bucketSize)
		},
	}
	for _, c := range []*cobra.Command{listingsCmd, statsCmd} {
		c.Flags().IntVar(&filter.MinScore, "min-score", 0, "Minimum match score")
		c.Flags().IntVar(&filter.Hours, "hours", 0, "Only listings discovered within this many hours")
		c.Flags().StringVar(&sources, "source", "", "Comma separated job boards")
	}
	statsCmd.Flags().IntVar(&bucketSize, "bucket-size", 10, "Match score histogram bucket size")
	jobsCmd.AddCommand(listingsCmd, statsCmd)

	schedules := internal.DefaultSchedules()
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the session alive and poll workspace status",
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.Watch(c.Context(), opts, schedules)
		},
	}
	watchCmd.Flags().StringVar(&schedules.Refresh, "refresh-schedule", schedules.Refresh, "Cron schedule for the token keep-alive")
	watchCmd.Flags().StringVar(&schedules.Workspaces, "workspaces-schedule", schedules.Workspaces, "Cron schedule for the workspace status poll (empty to disable)")

	var port int
	var debug, watch bool
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local HTTP gateway",
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.ApiServer(opts, port, debug, watch)
		},
	}
	serveCmd.Flags().IntVar(&port, "port", 8080, "Port to run HTTP server on")
	serveCmd.Flags().BoolVar(&debug, "debug", false, "Enable debugging (pprof) - WARNING: do not enable in production")
	serveCmd.Flags().BoolVar(&watch, "watch", true, "Run the keep-alive CRON jobs alongside the server")

	var devPort int
	var devEmail, devPassword string
	var devTTL time.Duration
	var devRotate bool
	devServerCmd := &cobra.Command{
		Use:   "dev-server",
		Short: "Run a fake dashboard API for local development",
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.DevServer(devPort, devEmail, devPassword, devTTL, devRotate)
		},
	}
	devServerCmd.Flags().IntVar(&devPort, "port", 8000, "Port to run the fake API on")
	devServerCmd.Flags().StringVar(&devEmail, "email", "dev@example.com", "Seeded account email")
	devServerCmd.Flags().StringVar(&devPassword, "password", "password", "Seeded account password")
	devServerCmd.Flags().DurationVar(&devTTL, "access-ttl", 2*time.Minute, "Access token lifetime")
	devServerCmd.Flags().BoolVar(&devRotate, "rotate-refresh", false, "Issue a new refresh token on every refresh")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd, profilesCmd,
		workspacesCmd, jobsCmd, watchCmd, serveCmd, devServerCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Printf("Error: %v", err)
		stop()
		os.Exit(1)
	}
}

func withSources(filter internal.ListingFilter, sources string) internal.ListingFilter {
	if sources != "" {
		filter.Sources = strings.Split(sources, ",")
	}
	return filter
}
