package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Pruner periodically removes audit entries older than the retention window
type Pruner struct {
	store     *Store
	retention time.Duration
	cron      *cron.Cron
	logger    zerolog.Logger
	now       func() time.Time
}

// NewPruner schedules pruning on the given cron spec
func NewPruner(store *Store, spec string, retention time.Duration, zlog zerolog.Logger) (*Pruner, error) {
	p := &Pruner{
		store:     store,
		retention: retention,
		cron:      cron.New(),
		logger:    zlog,
		now:       time.Now,
	}
	if _, err := p.cron.AddFunc(spec, p.run); err != nil {
		return nil, fmt.Errorf("invalid prune schedule %q: %w", spec, err)
	}
	return p, nil
}

func (p *Pruner) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := p.PruneOnce(ctx); err != nil {
		p.logger.Error().Err(err).Msg("Audit prune failed")
	}
}

// PruneOnce deletes everything older than the retention window
func (p *Pruner) PruneOnce(ctx context.Context) (int64, error) {
	cutoff := p.now().Add(-p.retention)
	deleted, err := p.store.Prune(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	p.logger.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("Pruned audit entries")
	return deleted, nil
}

// Start begins running the schedule in the background
func (p *Pruner) Start() {
	p.cron.Start()
}

// Stop halts the schedule and waits for a running prune to finish
func (p *Pruner) Stop() {
	<-p.cron.Stop().Done()
}
