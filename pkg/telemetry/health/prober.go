package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Probe states.
const (
	StatusUnknown = "unknown"
	StatusUp      = "up"
	StatusDown    = "down"
)

// ErrNoProbe is returned by Start when no ProbeFunc is configured.
var ErrNoProbe = errors.New("no probe function configured")

// ProbeFunc checks a dependency. It returns nil when the dependency is up.
type ProbeFunc func(ctx context.Context) error

// Gauge receives every probe result.
type Gauge interface {
	SetUpstreamUp(up bool)
}

// Result is the outcome of the most recent probe.
type Result struct {
	Status    string        `json:"status"`
	Message   string        `json:"message,omitempty"`
	Duration  time.Duration `json:"duration_ns,omitempty"`
	CheckedAt time.Time     `json:"checked_at,omitempty"`
}

// ProberConfig configures a Prober.
type ProberConfig struct {
	// Schedule is a standard cron expression or descriptor. Empty disables
	// the prober.
	Schedule string

	// Timeout bounds a single probe. Defaults to 10 seconds.
	Timeout time.Duration

	// Probe is the check to run
	Probe ProbeFunc

	// Gauge receives results (optional)
	Gauge Gauge

	// Logger defaults to slog.Default()
	Logger *slog.Logger
}

// Prober runs a ProbeFunc on a cron schedule.
type Prober struct {
	config  ProberConfig
	cron    *cron.Cron
	logger  *slog.Logger
	mu      sync.Mutex
	running bool
	last    Result
}

// NewProber creates a prober. Call Start to begin probing.
func NewProber(cfg ProberConfig) *Prober {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Prober{
		config: cfg,
		cron:   cron.New(),
		logger: logger.With("component", "health.prober"),
		last:   Result{Status: StatusUnknown},
	}
}

// Start schedules the probe. If the schedule is empty the prober does
// nothing. The prober stops when ctx is cancelled.
func (p *Prober) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.config.Schedule == "" {
		p.logger.Info("probe schedule not configured, skipping prober")
		return nil
	}
	if p.config.Probe == nil {
		return ErrNoProbe
	}

	if _, err := cron.ParseStandard(p.config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", p.config.Schedule, err)
	}

	if _, err := p.cron.AddFunc(p.config.Schedule, func() {
		p.ProbeNow(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule probe: %w", err)
	}

	p.cron.Start()
	p.running = true

	p.logger.Info("upstream prober started", "schedule", p.config.Schedule)

	go func() {
		<-ctx.Done()
		p.Stop()
	}()

	return nil
}

// ProbeNow runs the probe once and records the result.
func (p *Prober) ProbeNow(ctx context.Context) Result {
	probeCtx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	start := time.Now()
	err := p.config.Probe(probeCtx)

	result := Result{
		Status:    StatusUp,
		Duration:  time.Since(start),
		CheckedAt: start,
	}
	if err != nil {
		result.Status = StatusDown
		result.Message = err.Error()
		p.logger.Warn("upstream probe failed", "error", err, "duration", result.Duration)
	} else {
		p.logger.Debug("upstream probe succeeded", "duration", result.Duration)
	}

	if p.config.Gauge != nil {
		p.config.Gauge.SetUpstreamUp(err == nil)
	}

	p.mu.Lock()
	p.last = result
	p.mu.Unlock()

	return result
}

// Last returns the most recent result.
func (p *Prober) Last() Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.last
}

// Stop stops the scheduler and waits for a running probe to finish.
func (p *Prober) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	<-p.cron.Stop().Done()
	p.logger.Info("upstream prober stopped")
}

// IsRunning reports whether the prober is scheduled.
func (p *Prober) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.running
}

// NextRun returns the next scheduled probe time, or nil when not running.
func (p *Prober) NextRun() *time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return nil
	}
	entries := p.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
