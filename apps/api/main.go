package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/trezcool/sanaa/apps/api/echo"
	"github.com/trezcool/sanaa/core"
	"github.com/trezcool/sanaa/core/profile"
	"github.com/trezcool/sanaa/core/signup"
	emailsvc "github.com/trezcool/sanaa/services/email"
	identitysvc "github.com/trezcool/sanaa/services/identity"
	logsvc "github.com/trezcool/sanaa/services/logger"
	"github.com/trezcool/sanaa/storage/database"
	inmemdb "github.com/trezcool/sanaa/storage/database/inmem"
	"github.com/trezcool/sanaa/storage/database/sqlxrepos"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		core.Conf,
	)
	logger.Enable(!core.Conf.Debug)

	logger.Info(fmt.Sprintf("Application initializing : version %q", core.Conf.Build))
	defer logger.Info("Application stopped")

	// the handoff record only needs to survive a single provider round trip;
	// it always lives in memory.
	memdb := inmemdb.Open()
	handoffs := inmemdb.NewHandoffStore(memdb)

	var (
		profileRepo profile.Repository
		drafts      signup.DraftStore
		mailSvc     core.EmailService
	)
	if core.Conf.Debug {
		profileRepo = inmemdb.NewProfileRepository(memdb)
		drafts = inmemdb.NewDraftStore(memdb)
		mailSvc = emailsvc.NewConsoleService()
	} else {
		db, err := setUpDB()
		if err != nil {
			logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
		}
		defer func() {
			if err = db.Close(); err != nil {
				logger.Error("closing database", err)
			}
		}()
		profileRepo = sqlxrepos.NewProfileRepository(db)
		drafts = sqlxrepos.NewDraftStore(db)
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	profileSvc := profile.NewService(profileRepo, mailSvc, logger)
	broker := identitysvc.NewGoTrueBroker(logger)

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Logger:     logger,
			ProfileSvc: profileSvc,
			Drafts:     drafts,
			Handoffs:   handoffs,
			Broker:     broker,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), core.Conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB() (*sql.DB, error) {
	if err := database.CreateIfNotExist(core.Conf); err != nil {
		return nil, err
	}

	db, err := database.Open(core.Conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db, core.Conf); err != nil {
		return nil, err
	}
	return db, nil
}
