package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mavstuff/snake/internal/config"
	"github.com/mavstuff/snake/internal/game"
	"github.com/mavstuff/snake/internal/server"
)

func main() {
	cfg := config.Load()
	flag.StringVar(&cfg.Host, "host", cfg.Host, "game listener bind address")
	flag.IntVar(&cfg.Port, "port", cfg.Port, "game listener port")
	flag.StringVar(&cfg.HTTPAddr, "http", cfg.HTTPAddr, "websocket/stats/metrics address (empty disables)")
	flag.IntVar(&cfg.Bots, "bots", cfg.Bots, "bot players spawned when the first human connects")
	flag.IntVar(&cfg.BotLevel, "bot-level", cfg.BotLevel, "bot difficulty 0-9")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.Parse()

	setupLogger(cfg)

	world := game.NewWorld()
	srv := server.New(cfg, world)
	if err := srv.Start(); err != nil {
		log.WithError(err).Fatal("game listener failed")
	}
	log.WithFields(log.Fields{
		"addr":      srv.Addr().String(),
		"bots":      cfg.Bots,
		"bot_level": cfg.BotLevel,
	}).Info("snake server listening")

	var httpSrv *http.Server
	if cfg.HTTPAddr != "" {
		httpSrv = &http.Server{Addr: cfg.HTTPAddr, Handler: srv.HTTPHandler()}
		go func() {
			log.WithField("addr", cfg.HTTPAddr).Info("http listener started")
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("http listener failed")
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("shutting down")
	case err := <-srv.Fatal():
		log.WithError(err).Error("listener error, shutting down")
	}

	if httpSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		httpSrv.Shutdown(ctx)
		cancel()
	}
	srv.Shutdown()
	log.Info("server stopped")
}

func setupLogger(cfg config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if cfg.LogJSON {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
