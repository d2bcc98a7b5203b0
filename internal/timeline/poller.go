package timeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/caseline/caseline/internal/events"
	"github.com/caseline/caseline/internal/logging"
)

// Poller errors.
var (
	ErrPollerAlreadyRunning = errors.New("poller already running")
	ErrPollerNotRunning     = errors.New("poller not running")
)

// PollerConfig contains configuration for the new-item poller.
type PollerConfig struct {
	// Interval is how often to ask the source for new items.
	// Default: 30s
	Interval time.Duration
}

// DefaultPollerConfig returns sensible defaults.
func DefaultPollerConfig() PollerConfig {
	return PollerConfig{Interval: 30 * time.Second}
}

// Poller periodically asks the item source whether anything newer than
// the last seen timestamp exists and publishes a new-items event when it
// does. It only concerns data acquisition; item processing stays
// synchronous and is triggered by whoever handles the event.
type Poller struct {
	config    PollerConfig
	source    Source
	publisher *events.Publisher
	logger    zerolog.Logger

	mu       sync.Mutex
	running  bool
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	lastSeen time.Time
}

// NewPoller creates a new Poller.
func NewPoller(config PollerConfig, source Source, publisher *events.Publisher) *Poller {
	if config.Interval <= 0 {
		config.Interval = DefaultPollerConfig().Interval
	}

	return &Poller{
		config:    config,
		source:    source,
		publisher: publisher,
		logger:    logging.Component("timeline-poller"),
		lastSeen:  time.Now().UTC(),
	}
}

// MarkSeen records the reference timestamp for subsequent checks,
// typically the newest creation date in the last fetch.
func (p *Poller) MarkSeen(t time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if t.After(p.lastSeen) {
		p.lastSeen = t
	}
}

// Start begins the polling loop.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return ErrPollerAlreadyRunning
	}

	p.ctx, p.cancel = context.WithCancel(ctx)
	p.running = true

	p.logger.Info().
		Dur("interval", p.config.Interval).
		Msg("timeline poller starting")

	p.wg.Add(1)
	go p.runLoop()

	return nil
}

// Stop halts the polling loop.
func (p *Poller) Stop() error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return ErrPollerNotRunning
	}

	p.logger.Info().Msg("timeline poller stopping")
	p.cancel()
	p.running = false
	p.mu.Unlock()

	p.wg.Wait()
	p.logger.Info().Msg("timeline poller stopped")
	return nil
}

// IsRunning returns true if the poller is running.
func (p *Poller) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// runLoop is the main polling loop.
func (p *Poller) runLoop() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.pollTick()
		}
	}
}

// pollTick performs one new-items check.
func (p *Poller) pollTick() {
	p.mu.Lock()
	since := p.lastSeen
	p.mu.Unlock()

	hasNew, err := p.source.HasNewSince(p.ctx, since)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		p.logger.Warn().Err(err).Msg("new-items check failed")
		return
	}

	if !hasNew {
		return
	}

	p.logger.Debug().Time("since", since).Msg("new timeline items available")
	if p.publisher != nil {
		p.publisher.Publish(events.Event{Type: events.TypeNewItems})
	}
}

// PollNow triggers an immediate check.
func (p *Poller) PollNow() error {
	p.mu.Lock()
	running := p.running
	p.mu.Unlock()

	if !running {
		return ErrPollerNotRunning
	}

	p.pollTick()
	return nil
}
