package main

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/signals"
	"github.com/storyloft/storyloft/pkg/config"
	"github.com/storyloft/storyloft/pkg/database"
	"github.com/storyloft/storyloft/pkg/migrations"
	"github.com/storyloft/storyloft/pkg/pathmeta"
	"github.com/storyloft/storyloft/pkg/server"
	"github.com/storyloft/storyloft/pkg/sheets"
	"github.com/storyloft/storyloft/pkg/version"
	"github.com/storyloft/storyloft/pkg/worker"
)

func main() {
	ctx := context.Background()
	log := logger.New()

	log.Info("starting storyloft", logger.Data{"version": version.Version})

	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}

	group, err := migrations.BringUpToDate(ctx, db)
	if err != nil {
		log.Err(err).Fatal("migrations error")
	}
	if group.ID == 0 {
		log.Info("no new migrations to run")
	} else {
		log.Info("migrated to new group", logger.Data{"group_id": group.ID, "migration_names": group.Migrations.String()})
	}

	var sheetsClient sheets.Client
	if cfg.SheetsCredentialsFile != "" && cfg.SheetsSpreadsheetID != "" {
		sheetsClient, err = sheets.NewGoogleClient(ctx, cfg.SheetsCredentialsFile, cfg.SheetsSpreadsheetID)
		if err != nil {
			log.Err(err).Fatal("sheets client error")
		}
		log.Info("sheets client configured", logger.Data{"spreadsheet_id": cfg.SheetsSpreadsheetID})
	}

	registry := pathmeta.NewRegistry(pathmeta.DefaultParsers()...)
	wrkr := worker.New(cfg, db, registry, sheetsClient)

	srv, err := server.New(cfg, db)
	if err != nil {
		log.Err(err).Fatal("server error")
	}

	graceful := signals.Setup()

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort)
		lc := net.ListenConfig{}
		listener, err := lc.Listen(ctx, "tcp", addr)
		if err != nil {
			log.Err(err).Fatal("failed to bind port")
		}

		log.Info("server started", logger.Data{"port": listener.Addr().(*net.TCPAddr).Port})

		err = srv.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Err(err).Fatal("server stopped")
		}
		log.Info("server stopped")
	}()

	wrkr.Start()
	log.Info("worker started")

	<-graceful
	log.Info("starting graceful shutdown")

	err = srv.Shutdown(ctx)
	if err != nil {
		log.Err(err).Error("server shutdown error")
	}
	log.Info("server shutdown")

	wrkr.Shutdown()
	log.Info("worker shutdown")

	err = db.Close()
	if err != nil {
		log.Err(err).Error("database close error")
	}
	log.Info("database closed")
}
