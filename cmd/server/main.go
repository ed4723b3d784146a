package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pradeepshrestha14/event-scheduler-service/internal/config"
	"github.com/pradeepshrestha14/event-scheduler-service/internal/handler"
	"github.com/pradeepshrestha14/event-scheduler-service/internal/middleware"
	"github.com/pradeepshrestha14/event-scheduler-service/internal/service"
	"github.com/pradeepshrestha14/event-scheduler-service/internal/store"
)

func main() {
	cfg := config.Load()

	// database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	log.Println("connected to postgres")

	if err := store.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	policy, err := config.LoadPolicy(cfg.PolicyPath)
	if err != nil {
		log.Fatalf("policy: %v", err)
	}
	log.Printf("scheduling policy: %v capped at %d per week", policy.RestrictedCountries, policy.WeeklyLimit)

	svc := service.New(store.New(pool), service.Policy{
		RestrictedCountries: policy.RestrictedCountries,
		WeeklyLimit:         policy.WeeklyLimit,
		WeekStart:           policy.WeekStartDay(),
	})

	rl := middleware.NewRateLimiter(5, 10)
	r := gin.Default()
	handler.Routes(r, handler.New(svc), rl)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	go func() {
		log.Printf("http on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
