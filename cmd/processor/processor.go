package processor

import (
	"context"

	"github.com/usa-trezo/en-us/internal/app/common/logger"
	"github.com/usa-trezo/en-us/internal/app/metrics"
	"github.com/usa-trezo/en-us/internal/app/models"
	"github.com/usa-trezo/en-us/internal/app/services/state"

	"github.com/sirupsen/logrus"
)

// Processor is the only writer of the ticker state. Snapshots are applied in
// the order they arrive on in, which is the order their fetches resolved.
type Processor struct {
	state  *state.TickerState
	in     <-chan models.Snapshot
	logger *logrus.Logger
}

func New(st *state.TickerState, in <-chan models.Snapshot) *Processor {
	return &Processor{
		state:  st,
		in:     in,
		logger: logger.GetLogger(),
	}
}

// Start applies snapshots until ctx is cancelled, then closes the state so
// nothing arriving later can reach it.
func (p *Processor) Start(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.WithField("panic", r).Error("Processor panicked")
		}
	}()
	defer p.state.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case snap := <-p.in:
			p.apply(snap)
		}
	}
}

func (p *Processor) apply(snap models.Snapshot) {
	previous := p.state.Seq()

	switch result := p.state.Apply(snap); result {
	case state.Applied:
		metrics.SnapshotsApplied.Inc()
		metrics.SnapshotEntries.Set(float64(len(snap.Entries)))
		fields := logrus.Fields{"seq": snap.Seq, "entries": len(snap.Entries)}
		if snap.Seq < previous {
			p.logger.WithFields(fields).WithField("replaced_seq", previous).Debug("Applied snapshot issued before the displayed one")
			return
		}
		p.logger.WithFields(fields).Debug("Applied snapshot")
	default:
		metrics.SnapshotsDiscarded.WithLabelValues(result.String()).Inc()
		p.logger.WithFields(logrus.Fields{"seq": snap.Seq, "current_seq": previous, "reason": result.String()}).Debug("Discarded snapshot")
	}
}
