package cmd

import (
	"context"

	"go.uber.org/zap"

	"plateful.dev/Plateful/configs"
	"plateful.dev/Plateful/pkg/model"
	"plateful.dev/Plateful/pkg/repository"
)

type SeedCmd struct {
	ConfigFile string `default:".Plateful.toml" help:"Path to config file" short:"c"`
}

func (s *SeedCmd) Run(_ *Context) error {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.DisableStacktrace = true

	logger, _ := logConfig.Build()
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	conf, err := configs.GetConfig(s.ConfigFile, logger)
	if err != nil {
		logger.Error("error loading config", zap.Error(err))

		return err
	}

	repo, err := repository.Open(conf, logger)
	if err != nil {
		logger.Fatal("error connecting to database")
	}
	defer repo.Close()

	user, err := repo.RegisterUser(context.Background(), repository.RegisterParams{
		Username:  "example_user",
		Email:     "example@example.com",
		Password:  "password",
		ImageURL:  "https://tinyurl.com/29q8o28r",
		Diet:      model.DietVegan,
		Allergies: "peanuts",
	})
	if err != nil {
		logger.Error("error seeding user", zap.Error(err))

		return err
	}

	logger.Info("seeded user", zap.String("username", user.Username), zap.String("uuid", user.UUID.String()))

	return nil
}
