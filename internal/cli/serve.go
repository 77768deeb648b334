package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/carson-networks/neofin-server/api"
	"github.com/carson-networks/neofin-server/internal/ai"
	"github.com/carson-networks/neofin-server/internal/auth"
	"github.com/carson-networks/neofin-server/internal/janitor"
	"github.com/carson-networks/neofin-server/internal/metrics"
	"github.com/carson-networks/neofin-server/internal/operator"
	"github.com/carson-networks/neofin-server/internal/service"
	"github.com/carson-networks/neofin-server/internal/storage"
)

// backend is the wired server side: storage, the operator pool and services.
type backend struct {
	store    *storage.Storage
	operator *operator.OperatorDelegator
	service  *service.Service
	jwt      *auth.JWTManager
}

func (a *app) openBackend() (*backend, error) {
	secret, err := a.env.SigningSecret()
	if err != nil {
		return nil, err
	}
	if a.env.JWTSecret == "" {
		a.logger.Warn("JWT_SECRET is not set, tokens are only valid until restart")
	}

	store, err := storage.NewStorage(a.env)
	if err != nil {
		return nil, fmt.Errorf("storage.NewStorage: %w", err)
	}

	op := operator.NewOperatorDelegator(store, a.env.OperatorWorkers)
	op.Start()

	jwtManager := auth.NewJWTManager(secret, a.env.JWTTTL)
	return &backend{
		store:    store,
		operator: op,
		service:  service.NewService(store, op, jwtManager),
		jwt:      jwtManager,
	}, nil
}

func (b *backend) close() {
	b.operator.Stop()
	_ = b.store.Close()
}

func (a *app) serveCmd() *cobra.Command {
	var migrateFirst bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the trash janitor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.logger.Info("neofin-server starting")

			if migrateFirst {
				if err := storage.Migrate(a.env, a.logger); err != nil {
					return err
				}
			}

			b, err := a.openBackend()
			if err != nil {
				return err
			}
			defer b.close()

			m := metrics.New()
			gateway, err := ai.NewFromConfig(a.env, m, a.logger)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sweeper := janitor.New(b.service.Transaction, a.env.TrashRetention, a.env.TrashPurgeInterval, m, a.logger)
			done := make(chan struct{})
			go func() {
				defer close(done)
				sweeper.Run(ctx)
			}()

			rest := api.Rest{
				Logger:       a.logger,
				Port:         a.env.Port,
				CORSOrigin:   a.env.CORSOrigin,
				AuthRequired: a.env.AuthRequired,
				Database:     b.store,
				Service:      b.service,
				Gateway:      gateway,
				Metrics:      m,
				JWTManager:   b.jwt,
			}
			err = rest.Serve(ctx)

			cancel()
			select {
			case <-done:
			case <-time.After(5 * time.Second):
				a.logger.Warn("Janitor.Stop.Timeout")
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func (a *app) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			return storage.Migrate(a.env, a.logger)
		},
	}
}

func (a *app) purgeTrashCmd() *cobra.Command {
	var retention time.Duration

	cmd := &cobra.Command{
		Use:   "purge-trash",
		Short: "Permanently delete trashed transactions older than the retention",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if retention <= 0 {
				retention = a.env.TrashRetention
			}
			if retention <= 0 {
				return fmt.Errorf("no retention configured: set TRASH_RETENTION or pass --retention")
			}

			b, err := a.openBackend()
			if err != nil {
				return err
			}
			defer b.close()

			purged, err := janitor.New(b.service.Transaction, retention, time.Hour, nil, a.logger).Sweep(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged %d transaction(s)\n", purged)
			return nil
		},
	}

	cmd.Flags().DurationVar(&retention, "retention", 0, "age after which trash is purged (default TRASH_RETENTION)")
	return cmd
}
