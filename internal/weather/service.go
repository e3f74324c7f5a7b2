package weather

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Fetcher is the opaque fetch operation the service drives. Calls block, time
// out internally, and every error is retryable.
type Fetcher interface {
	Fetch(coords Coordinates) (Forecast, error)
}

type commandKind int

const (
	cmdSetCoordinates commandKind = iota
	cmdStop
)

type command struct {
	kind   commandKind
	coords Coordinates
}

// ServiceConfig holds the tunables of the fetch loop. The retry bound and
// backoff base are configuration, not constants.
type ServiceConfig struct {
	RefreshInterval time.Duration
	MaxRetries      int
	InitialBackoff  time.Duration
}

// Service runs one background worker that keeps the forecast snapshot fresh.
// Consumers read Version without locking once per cycle and call Snapshot only
// when it advanced; a failed cycle keeps the previous snapshot available.
type Service struct {
	cfg     ServiceConfig
	fetcher Fetcher
	log     *zap.Logger
	notify  func()

	mu       sync.RWMutex
	forecast Forecast
	version  atomic.Uint64

	cmds      chan command
	done      chan struct{}
	closeOnce sync.Once
}

// Start spawns the worker with the given initial coordinates. notify, if
// non-nil, is invoked fire-and-forget after each successful publish.
func Start(cfg ServiceConfig, fetcher Fetcher, coords Coordinates, notify func(), log *zap.Logger) *Service {
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	s := &Service{
		cfg:      cfg,
		fetcher:  fetcher,
		log:      log,
		notify:   notify,
		forecast: NewForecast(),
		cmds:     make(chan command, 8),
		done:     make(chan struct{}),
	}
	go s.run(coords)
	return s
}

// Version returns the monotonic publish counter. Cheap change detection; no
// lock involved.
func (s *Service) Version() uint64 {
	return s.version.Load()
}

// Snapshot returns a clone of the latest published forecast.
func (s *Service) Snapshot() Forecast {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.forecast.Clone()
}

// SetCoordinates reconfigures the fetch target. If the worker is idle this
// triggers an immediate cycle; mid-retry, the in-flight attempt finishes with
// the old coordinates and the next cycle uses the new ones.
func (s *Service) SetCoordinates(coords Coordinates) {
	select {
	case s.cmds <- command{kind: cmdSetCoordinates, coords: coords}:
	case <-s.done:
	}
}

// Close stops the worker and waits for it to exit. Safe to call more than once.
func (s *Service) Close() {
	s.closeOnce.Do(func() {
		s.cmds <- command{kind: cmdStop}
	})
	<-s.done
}

func (s *Service) run(coords Coordinates) {
	defer close(s.done)

	for {
		s.cycle(coords)

		select {
		case cmd := <-s.cmds:
			switch cmd.kind {
			case cmdSetCoordinates:
				coords = cmd.coords
				continue
			case cmdStop:
				return
			}
		case <-time.After(s.cfg.RefreshInterval):
		}
	}
}

// cycle runs one fetch with bounded retries. On success the snapshot is
// swapped under the write lock and the version advances exactly once; on
// exhaustion the previous snapshot stays as-is.
func (s *Service) cycle(coords Coordinates) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.cfg.InitialBackoff
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxInterval = 10 * time.Minute
	bo.Reset()

	for attempt := 1; attempt <= s.cfg.MaxRetries; attempt++ {
		forecast, err := s.fetcher.Fetch(coords)
		if err == nil {
			s.mu.Lock()
			s.forecast = forecast
			s.mu.Unlock()
			s.version.Add(1)

			if s.notify != nil {
				s.notify()
			}
			s.log.Debug("forecast_published", zap.Uint64("version", s.version.Load()))
			return
		}

		s.log.Warn("forecast_fetch_failed",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", s.cfg.MaxRetries),
			zap.Error(err),
		)
		if attempt < s.cfg.MaxRetries {
			time.Sleep(bo.NextBackOff())
		}
	}

	s.log.Warn("forecast_update_exhausted_retries_keeping_previous")
}
