// Package cli holds the neofin command tree.
package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/carson-networks/neofin-server/internal/config"
	"github.com/carson-networks/neofin-server/internal/logging"
)

// app is what every command shares once the environment is loaded.
type app struct {
	env    *config.Config
	logger *logrus.Logger
}

func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "neofin",
		Short:         "NeoFin finance tracker server and client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			env, err := config.ProcessEnvironmentVariables()
			if err != nil {
				return err
			}
			a.env = env
			a.logger = logging.SetupLoggingWithLevel(env.LogLevel)
			return nil
		},
	}

	root.AddCommand(
		a.serveCmd(),
		a.migrateCmd(),
		a.purgeTrashCmd(),
		a.txCmd(),
	)
	return root
}
