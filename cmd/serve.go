package cmd

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"plateful.dev/Plateful/configs"
	"plateful.dev/Plateful/pkg/auth"
	"plateful.dev/Plateful/pkg/integrations"
	"plateful.dev/Plateful/pkg/integrations/recipepage"
	"plateful.dev/Plateful/pkg/mailer"
	"plateful.dev/Plateful/pkg/repository"
	"plateful.dev/Plateful/pkg/server"
)

const timeout = 5 * time.Second

type ServeCmd struct {
	ConfigFile string `default:".Plateful.toml" help:"Path to config file" short:"c"`
}

func (s *ServeCmd) Run(_ *Context) error {
	logConfig := zap.NewProductionConfig()

	logger, _ := logConfig.Build()
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	conf, err := configs.GetConfig(s.ConfigFile, logger)
	if err != nil {
		logger.Error("error loading config", zap.Error(err))

		return err
	}

	repo, err := repository.Open(conf, logger)
	if err != nil {
		logger.Error("error connecting to database", zap.Error(err))

		return err
	}
	defer repo.Close()

	integration, err := integrations.GetIntegration(conf.Integrations.Recipes[0], conf, logger)
	if err != nil {
		logger.Error("error creating recipe integration", zap.Error(err))

		return err
	}

	authManager := auth.NewAuthManager(conf, repo, logger)
	importer := recipepage.NewImporter(logger)
	shoppingMailer := mailer.New(conf.Mail, logger)

	apiServer := server.New(conf, repo, authManager, integration, importer, shoppingMailer, logger)

	address := fmt.Sprintf(":%d", conf.Server.Port)

	svr := &http.Server{
		Addr:              address,
		ReadHeaderTimeout: timeout,
		Handler:           apiServer.Router(),
	}

	logger.Info("starting server", zap.String("address", address))

	err = svr.ListenAndServe()
	if err != nil {
		logger.Error("failed to start server", zap.Error(err))

		return err
	}

	return nil
}
