package main

import (
	"github.com/sirupsen/logrus"

	server_config "github.com/carson-networks/neofin-server/internal/config"
	"github.com/carson-networks/neofin-server/internal/logging"
	"github.com/carson-networks/neofin-server/internal/storage"
)

func main() {
	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLoggingWithLevel(env.LogLevel)
	if err := storage.Migrate(env, logger); err != nil {
		logger.WithError(err).Fatal("storage.Migrate")
	}
}
