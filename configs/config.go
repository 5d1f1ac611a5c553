package configs

import (
	"errors"
	"os"
	"strings"

	"github.com/kkyr/fig"
	"go.uber.org/zap"
)

type DB struct {
	Host               string `validate:"required"`
	Port               int    `default:"5432"`
	User               string `default:"postgres"`
	Password           string `validate:"required"`
	Database           string `default:"postgres"`
	MaxIdleConnections int    `default:"10"`
	MaxOpenConnections int    `default:"10"`
}

type Server struct {
	Port int `default:"8080"`
}

type Auth struct {
	SecretKey   string `validate:"required"`
	TokenExpiry int    `default:"72"` // hours
}

type Spoonacular struct {
	APIKey  string
	BaseURL string `default:"https://api.spoonacular.com"`
	Timeout int    `default:"10"` // seconds
}

type Mail struct {
	Host     string
	Port     int `default:"587"`
	Username string
	Password string
	From     string `default:"noreply@plateful.dev"`
}

type Integrations struct {
	Recipes []string `default:"spoonacular"`
}

type Config struct {
	DB           DB
	Server       Server
	Auth         Auth
	Spoonacular  Spoonacular
	Mail         Mail
	Integrations Integrations
}

const envPrefix = "PLATEFUL" // env prefix for env vars

var ErrConfiguration = errors.New("configuration error")

func GetConfig(configFileName string, logger *zap.Logger) (*Config, error) {
	config := Config{}
	homeDir, _ := os.UserHomeDir()

	logger.Info("Loading config", zap.String("file", configFileName))

	err := fig.Load(&config, fig.File(configFileName), fig.Dirs(".", homeDir), fig.UseEnv(envPrefix))
	if err != nil {
		if strings.Contains(err.Error(), "file not found") {
			logger.Warn("Could not find config file", zap.String("file", configFileName))

			err = fig.Load(&config, fig.IgnoreFile(), fig.UseEnv(envPrefix))
			if err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}

	return &config, nil
}
