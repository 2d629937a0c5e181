package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	server "github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/adapters/http_server"
	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/adapters/observability"
	redisad "github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/adapters/redis"
	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/app"
	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/filestore"
	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/shared"
	mysqlrepo "github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve(cfg.MetricsAddr)

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// file store
	var files filestore.Store
	var uploads http.Handler
	switch cfg.FileBackend {
	case "minio":
		m, err := filestore.NewMinIO(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("minio init failed")
		}
		files = m
		uploads = server.PresignRedirect(m)
	default:
		d, err := filestore.NewDisk(cfg.UploadDir)
		if err != nil {
			log.Fatal().Err(err).Msg("upload dir init failed")
		}
		files = d
		uploads = http.StripPrefix("/uploads/", http.FileServer(http.Dir(d.Dir())))
	}
	log.Info().Str("backend", cfg.FileBackend).Msg("file store ready")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	q := app.NewQueryService(repo, cache, cfg.CacheTTL)
	c := app.NewCommandService(repo, files, cache)

	// http
	srv := server.New([]string{"*"})
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.Mount("/uploads/*", uploads)
	srv.MountHandlers(&server.Handlers{Q: q, C: c})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("shutdown complete")
}
