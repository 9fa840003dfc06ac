package cmd

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Depado/ginprom"
	"github.com/aurowora/compress"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	healthcheck "github.com/tavsec/gin-healthcheck"
	"github.com/tavsec/gin-healthcheck/checks"
	hc_config "github.com/tavsec/gin-healthcheck/config"

	"github.com/rm-hull/clawdash/internal"
	"github.com/rm-hull/clawdash/internal/routes"
)

func ApiServer(opts Options, port int, debug bool, watch bool) error {
	banner()

	a, err := bootstrap(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	if watch {
		if _, err := internal.StartCron(a.client, internal.DefaultSchedules()); err != nil {
			return fmt.Errorf("failed to start CRON jobs: %w", err)
		}
	}

	r, err := newGateway(a.client, a.store, debug)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting HTTP API Server on port %d, proxying %s...", port, a.client.BaseURL())
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP API Server failed to start on port %d: %v", port, err)
	}

	return nil
}

func newGateway(client *internal.Client, store *internal.SessionStore, debug bool) (*gin.Engine, error) {
	r := gin.New()

	prometheus := ginprom.New(
		ginprom.Engine(r),
		ginprom.Path("/metrics"),
		ginprom.Ignore("/healthz"),
	)

	r.Use(
		gin.Recovery(),
		gin.LoggerWithWriter(gin.DefaultWriter, "/healthz", "/metrics"),
		prometheus.Instrument(),
		compress.Compress(),
		cors.Default(),
	)

	if debug {
		log.Println("WARNING: pprof endpoints are enabled and exposed. Do not run with this flag in production.")
		pprof.Register(r)
	}

	err := healthcheck.New(r, hc_config.DefaultConfig(), []checks.Check{
		store.Check(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize healthcheck: %v", err)
	}

	v1 := r.Group("/v1")
	v1.GET("/session", routes.Session(client))
	v1.GET("/jobs/stats", routes.JobStats(client))
	v1.Any("/api/*path", routes.Proxy(client))

	return r, nil
}
