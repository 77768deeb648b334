package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/neofin-server/internal/auth"
	"github.com/carson-networks/neofin-server/internal/handlers/v1/ai"
	"github.com/carson-networks/neofin-server/internal/handlers/v1/split"
	"github.com/carson-networks/neofin-server/internal/handlers/v1/status"
	"github.com/carson-networks/neofin-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/neofin-server/internal/handlers/v1/user"
	"github.com/carson-networks/neofin-server/internal/logging"
	"github.com/carson-networks/neofin-server/internal/metrics"
	"github.com/carson-networks/neofin-server/internal/service"
)

const shutdownTimeout = 15 * time.Second

type Rest struct {
	Logger       *logrus.Logger
	Port         string
	CORSOrigin   string
	AuthRequired bool
	Database     status.Pinger
	Service      *service.Service
	Gateway      ai.Gateway
	Metrics      *metrics.Metrics
	JWTManager   *auth.JWTManager
}

// Handler builds the full route table: /status, /metrics and the huma API
// with its /docs and /openapi.json.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Database)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))
	mux.Handle("/metrics", r.Metrics.Handler())

	api := humago.New(mux, huma.DefaultConfig("NeoFin API", "1.0.0"))
	api.UseMiddleware(
		logging.HumaMiddleware(r.Logger),
		r.Metrics.HumaMiddleware,
		auth.Middleware(api, r.JWTManager, r.AuthRequired),
	)

	transaction.RegisterAll(api, r.Service.Transaction)
	split.RegisterAll(api, r.Service.Split)
	user.RegisterAll(api, r.Service.Auth)
	ai.RegisterAll(api, r.Gateway)

	return corsMiddleware(r.CORSOrigin, mux)
}

// Serve listens until ctx is canceled and then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(90) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func corsMiddleware(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, req)
	})
}
