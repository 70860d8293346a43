package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adminhub/internal/cache"
	intconfig "adminhub/internal/config"
	"adminhub/internal/db"
	router "adminhub/internal/http"
	"adminhub/internal/http/handlers"
	"adminhub/internal/services"
	"adminhub/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	env := intconfig.LoadEnv()
	utils.InitLogger(env.LogLevel, env.LogFormat)
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	conn, err := intconfig.ConnectDB(env)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer intconfig.CloseDB()

	if env.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		created, err := db.Migrate(ctx, conn)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
		log.Info().Strs("created", created).Msg("schema ready")
	}

	var lists cache.ListCache = cache.Noop{}
	if env.RedisURL != "" {
		rc, err := cache.New(env.RedisURL, env.CacheTTL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, list cache disabled")
		} else {
			defer rc.Close()
			lists = rc
		}
	}

	hd := handlers.Handler{
		DB:    conn,
		Cache: lists,
		Auth: services.AuthService{
			DB:     conn,
			Secret: []byte(env.JWTSecret),
			TTL:    env.JWTTTL,
		},
	}
	r := router.NewRouter(env, hd)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", env.AppAddr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
