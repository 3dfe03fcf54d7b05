// Package api serves the capacity use cases as a JSON HTTP API.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/alexanderramin/capacity/internal/service"
	"github.com/gin-gonic/gin"
)

// Deps are the services behind the routes. Metrics is optional.
type Deps struct {
	Capacity   service.CapacityService
	Timesheets service.TimesheetService
	Metrics    http.Handler
}

// StartOpts holds configuration for the API server.
type StartOpts struct {
	Deps
	Port int
	Out  io.Writer
}

// Start runs the API server until ctx is cancelled, then shuts it down.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.Capacity == nil || opts.Timesheets == nil {
		return fmt.Errorf("api: capacity and timesheet services are required")
	}
	if opts.Port <= 0 {
		opts.Port = 8080
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           NewRouter(opts.Deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Capacity API listening on http://localhost:%d\n", opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	registerRoutes(router, deps)
	return router
}

func registerRoutes(router *gin.Engine, deps Deps) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	api := router.Group("/api")
	api.GET("/users/:id/availability", handleAvailability(deps.Capacity))
	api.GET("/users/:id/daily", handleDaily(deps.Capacity))
	api.GET("/users/:id/release", handleRelease(deps.Capacity))
	api.GET("/tasks/:id/forecast", handleForecast(deps.Capacity))
	api.GET("/team/availability", handleTeam(deps.Capacity))
	api.GET("/team/trend", handleTrend(deps.Capacity))
	api.GET("/team/elasticity", handleElasticity(deps.Capacity))
	api.POST("/simulations", handleSimulation(deps.Capacity))
	api.POST("/timesheets", handleLogTimesheet(deps.Timesheets))
}
