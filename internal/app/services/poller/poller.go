package poller

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	common "github.com/usa-trezo/en-us/internal/app/common/exception_handler"
	"github.com/usa-trezo/en-us/internal/app/common/logger"
	"github.com/usa-trezo/en-us/internal/app/metrics"
	"github.com/usa-trezo/en-us/internal/app/models"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

type Fetcher interface {
	FetchSnapshot(ctx context.Context) ([]models.MarketEntry, error)
}

// Poller refreshes the markets snapshot on a fixed period. Each refresh runs
// in its own goroutine, so a slow response never delays the next tick, and
// only successful results are handed to out.
type Poller struct {
	fetcher  Fetcher
	out      chan<- models.Snapshot
	interval time.Duration
	clock    clockwork.Clock
	logger   *logrus.Logger

	seq atomic.Uint64
	wg  sync.WaitGroup
}

func New(fetcher Fetcher, out chan<- models.Snapshot, interval time.Duration, clock clockwork.Clock) *Poller {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Poller{
		fetcher:  fetcher,
		out:      out,
		interval: interval,
		clock:    clock,
		logger:   logger.GetLogger(),
	}
}

// Start fetches immediately, then once per interval until ctx is cancelled.
// It returns after every in-flight refresh has finished.
func (p *Poller) Start(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.WithField("panic", r).Error("Poller panicked")
		}
	}()

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.WithField("interval", p.interval.String()).Info("Price ticker mounted")
	p.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			p.wg.Wait()
			p.logger.Info("Price ticker unmounted")
			return
		case <-ticker.Chan():
			p.refresh(ctx)
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	seq := p.seq.Add(1)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		start := time.Now()
		entries, err := p.fetcher.FetchSnapshot(ctx)
		metrics.FetchLatency.Observe(time.Since(start).Seconds())
		if err != nil {
			// Swallowed: the displayed snapshot stays as it is until a later tick succeeds.
			metrics.FetchesTotal.WithLabelValues("failure").Inc()
			code := common.CodeOf(err)
			if code == "" {
				code = common.ErrFetch
			}
			metrics.ErrorsTotal.WithLabelValues(code).Inc()
			p.logger.WithError(err).WithField("seq", seq).Warn("Markets refresh failed")
			return
		}
		metrics.FetchesTotal.WithLabelValues("success").Inc()

		snap := models.Snapshot{Seq: seq, Entries: entries, FetchedAt: p.clock.Now()}
		select {
		case p.out <- snap:
		case <-ctx.Done():
			metrics.SnapshotsDiscarded.WithLabelValues("unmounted").Inc()
			p.logger.WithField("seq", seq).Debug("Discarding snapshot resolved after unmount")
		}
	}()
}
