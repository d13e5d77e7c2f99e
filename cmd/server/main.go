package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/peterbourgon/ff/v3"
	"github.com/redis/go-redis/v9"

	"madurez42001/config"
	"madurez42001/internal/cache"
	"madurez42001/internal/catalog"
	"madurez42001/internal/export"
	"madurez42001/internal/report"
	"madurez42001/internal/scoring"
	"madurez42001/internal/session"
	"madurez42001/internal/share"
	"madurez42001/internal/transport/rest"
)

func main() {
	cfg := config.Load()

	fs := flag.NewFlagSet("madurez-server", flag.ExitOnError)
	var (
		_         = fs.String("config", "", "config file (optional), plain key value format")
		port      = fs.String("port", cfg.HTTPPort, "port to serve the API on")
		redisAddr = fs.String("redis", cfg.RedisAddr, "address of the redis instance holding session state")
		shareSalt = fs.String("share-salt", cfg.ShareSalt, "salt for short share-link codes")
	)
	if err := ff.Parse(fs, os.Args[1:],
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
		ff.WithEnvVarPrefix("MADUREZ"),
	); err != nil {
		log.Fatalf("cannot parse flags: %v", err)
	}

	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("cannot load question catalog: %v", err)
	}
	log.Infof("catalog loaded: %d sections, %d questions", cat.NumSections(), cat.TotalQuestions())

	// One-time chart renderer registration, before the first render.
	report.Setup()

	rdb := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer rdb.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := rdb.Ping(pingCtx).Result(); err != nil {
		log.Fatalf("cannot reach redis at %s: %v", *redisAddr, err)
	}

	engine := scoring.NewEngine(cat)
	reports := report.NewService(cat, engine)
	shares, err := share.NewService(cache.NewShareCache(rdb), *shareSalt)
	if err != nil {
		log.Fatalf("cannot init share service: %v", err)
	}

	router := rest.NewRouter(&rest.Container{
		Catalog:        cat,
		SessionService: session.NewService(cat, cache.NewSessionCache(rdb)),
		ReportService:  reports,
		ExportService:  export.NewService(cat, reports),
		ShareService:   shares,
	})

	srv := &http.Server{
		Addr:    ":" + *port,
		Handler: router,
	}

	go func() {
		log.Infof("server starting on :%s", *port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// block until shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown error: %v", err)
	}
}
