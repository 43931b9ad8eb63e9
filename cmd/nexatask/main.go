package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Joseda-hg/nexatask/internal/config"
	"github.com/Joseda-hg/nexatask/internal/db"
	"github.com/Joseda-hg/nexatask/internal/logging"
	"github.com/Joseda-hg/nexatask/internal/web"
)

func main() {
	configPathFlag := flag.String("config", "", "config file path")
	dbPathFlag := flag.String("db", "", "sqlite db path")
	portFlag := flag.Int("port", 0, "listen port")
	flag.Parse()

	cfg, err := config.Load(*configPathFlag)
	if err != nil {
		log.Fatal(err)
	}
	if *dbPathFlag != "" {
		cfg.DatabasePath = *dbPathFlag
	}
	if *portFlag != 0 {
		cfg.Port = *portFlag
	}

	logger, err := logging.New(cfg.LogDir, cfg.Environment)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	sqlDB, err := db.Open(cfg.DatabasePath)
	if err != nil {
		logger.Fatalw("open database", "path", cfg.DatabasePath, "error", err)
	}
	defer sqlDB.Close()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	server := web.NewServer(db.NewTaskStore(sqlDB), db.NewPreferenceStore(sqlDB), logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: server.Router(),
	}

	go func() {
		logger.Infow("listening", "addr", srv.Addr, "db", cfg.DatabasePath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("serve", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infow("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorw("shutdown", "error", err)
	}
}
