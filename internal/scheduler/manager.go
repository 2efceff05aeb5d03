package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/kanishk-2/climate-action-ai/internal/climate"
)

// ErrNoSnapshot is returned by RunSnapshot when there is nothing to carry forward
var ErrNoSnapshot = errors.New("no climate metrics snapshot recorded")

const defaultJobTimeout = time.Minute

// MetricsStore reads and appends climate metrics snapshots
type MetricsStore interface {
	LatestMetrics(ctx context.Context) (*climate.ClimateMetrics, error)
	RecordMetrics(ctx context.Context, in climate.InsertClimateMetrics) (*climate.ClimateMetrics, error)
}

// Manager runs the periodic snapshot job that carries the latest metrics
// forward so the series keeps one point per interval
type Manager struct {
	cron    *cron.Cron
	store   MetricsStore
	logger  *zap.Logger
	timeout time.Duration

	mu      sync.RWMutex
	entryID cron.EntryID
	running bool
}

// NewManager creates a new snapshot manager
func NewManager(store MetricsStore, logger *zap.Logger) *Manager {
	return &Manager{
		cron:    cron.New(),
		store:   store,
		logger:  logger,
		timeout: defaultJobTimeout,
	}
}

// Schedule registers the snapshot job with a five-field cron expression or a
// descriptor such as "@hourly". An empty expression leaves the job disabled.
func (m *Manager) Schedule(expr string) error {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		m.logger.Info("Snapshot scheduler disabled")
		return nil
	}
	if err := ValidateCronExpression(expr); err != nil {
		return fmt.Errorf("invalid snapshot schedule %q: %w", expr, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.entryID != 0 {
		m.cron.Remove(m.entryID)
	}
	entryID, err := m.cron.AddFunc(expr, m.runScheduled)
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}
	m.entryID = entryID

	m.logger.Info("Snapshot job scheduled", zap.String("cron", expr))
	return nil
}

// Start starts the cron runner
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return fmt.Errorf("snapshot scheduler already running")
	}
	m.running = true
	m.cron.Start()
	return nil
}

// Stop stops the cron runner and waits for a running job to finish
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	m.mu.Unlock()

	m.logger.Info("Stopping snapshot scheduler")
	<-m.cron.Stop().Done()
}

// NextRun returns the next scheduled run, or the zero time when disabled
func (m *Manager) NextRun() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.entryID == 0 {
		return time.Time{}
	}
	return m.cron.Entry(m.entryID).Next
}

func (m *Manager) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	snapshot, err := m.RunSnapshot(ctx)
	switch {
	case errors.Is(err, ErrNoSnapshot):
		m.logger.Debug("Snapshot job skipped, no metrics recorded yet")
	case err != nil:
		m.logger.Error("Snapshot job failed", zap.Error(err))
	default:
		m.logger.Info("Snapshot job completed", zap.String("metrics_id", snapshot.ID))
	}
}

// RunSnapshot appends a copy of the latest snapshot stamped with the current time
func (m *Manager) RunSnapshot(ctx context.Context) (*climate.ClimateMetrics, error) {
	latest, err := m.store.LatestMetrics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest metrics: %w", err)
	}
	if latest == nil {
		return nil, ErrNoSnapshot
	}

	return m.store.RecordMetrics(ctx, climate.InsertClimateMetrics{
		CO2Level:         latest.CO2Level,
		Temperature:      latest.Temperature,
		CreditsAllocated: latest.CreditsAllocated,
		PolicyScore:      latest.PolicyScore,
	})
}

// ValidateCronExpression validates a standard cron expression or descriptor
func ValidateCronExpression(expr string) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	_, err := parser.Parse(expr)
	return err
}
