// Package janitor purges trashed transactions once they outlive the
// configured retention.
package janitor

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/neofin-server/internal/metrics"
)

type Purger interface {
	PurgeExpired(ctx context.Context, retention time.Duration) (int64, error)
}

type Janitor struct {
	purger    Purger
	retention time.Duration
	interval  time.Duration
	metrics   *metrics.Metrics
	log       *logrus.Logger
}

func New(purger Purger, retention, interval time.Duration, m *metrics.Metrics, log *logrus.Logger) *Janitor {
	return &Janitor{
		purger:    purger,
		retention: retention,
		interval:  interval,
		metrics:   m,
		log:       log,
	}
}

// Enabled is false when retention is zero, meaning trash is kept forever.
func (j *Janitor) Enabled() bool {
	return j.retention > 0 && j.interval > 0
}

// Run sweeps once immediately and then every interval until ctx is done.
func (j *Janitor) Run(ctx context.Context) {
	if !j.Enabled() {
		j.log.Info("Janitor.Run.Disabled")
		return
	}

	j.log.WithField("retention", j.retention.String()).Info("Janitor.Run.Start")
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		_, _ = j.Sweep(ctx)
		select {
		case <-ctx.Done():
			j.log.Info("Janitor.Run.Stop")
			return
		case <-ticker.C:
		}
	}
}

// Sweep purges every trashed transaction deleted before now minus retention.
func (j *Janitor) Sweep(ctx context.Context) (int64, error) {
	purged, err := j.purger.PurgeExpired(ctx, j.retention)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			j.log.WithError(err).Error("Janitor.Sweep.Error")
		}
		return 0, err
	}

	j.metrics.Purged(purged)
	if purged > 0 {
		j.log.WithField("purged", purged).Info("Janitor.Sweep.Complete")
	}
	return purged, nil
}
