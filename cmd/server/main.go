package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"wellenwerk-tracker/internal/app"
	"wellenwerk-tracker/internal/config"
	"wellenwerk-tracker/internal/server"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	pool, err := pgxpool.New(ctx, cfg.DB.BuildDSN())
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer pool.Close()

	clock := app.RealClock{}
	store := app.NewPGStore(pool)
	upstream := app.NewBookingClient(cfg.Upstream, clock)
	reconciler := app.NewReconciler(store, upstream, logger, clock)
	appInstance := app.New(store, reconciler, clock, logger)

	scheduler := app.NewPollScheduler(reconciler, cfg.Poll.Interval, logger)
	scheduler.Start()
	defer scheduler.Stop()

	router := gin.Default()
	router.Any("/reconcile", appInstance.ReconcileHandler)

	sessions := router.Group("/sessions")
	{
		sessions.GET("/past", appInstance.PastSessionsHandler)
		sessions.GET("/range", appInstance.SessionsRangeHandler)
	}

	server.Run(router, cfg.Server.Port)
}
