package climate

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines data access for the dashboard entities. There is no
// update or delete operation for any entity.
type Repository interface {
	CreateClimateMetrics(ctx context.Context, in InsertClimateMetrics) (*ClimateMetrics, error)
	GetLatestClimateMetrics(ctx context.Context) (*ClimateMetrics, error)

	CreateCarbonCalculation(ctx context.Context, in InsertCarbonCalculation) (*CarbonCalculation, error)
	GetCarbonCalculation(ctx context.Context, id string) (*CarbonCalculation, error)

	GetCarbonCredits(ctx context.Context) ([]CarbonCredit, error)
	GetPolicyRecommendations(ctx context.Context) ([]PolicyRecommendation, error)

	CreateChatMessage(ctx context.Context, message, response string) (*ChatMessage, error)
	GetChatMessages(ctx context.Context) ([]ChatMessage, error)
}

// collection is an append-only map keyed by id that remembers insertion order
type collection[T any] struct {
	mu    sync.RWMutex
	byID  map[string]T
	order []string
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{byID: make(map[string]T)}
}

func (c *collection[T]) add(id string, v T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.byID[id] = v
	c.order = append(c.order, id)
}

func (c *collection[T]) get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.byID[id]
	return v, ok
}

// list returns a copy in insertion order
func (c *collection[T]) list() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// MemoryRepository keeps every entity in process memory. It is created once
// per process and seeded with the static catalogs on construction.
type MemoryRepository struct {
	metrics      *collection[ClimateMetrics]
	calculations *collection[CarbonCalculation]
	credits      *collection[CarbonCredit]
	policies     *collection[PolicyRecommendation]
	chat         *collection[ChatMessage]

	now   func() time.Time
	newID func() string
}

// MemoryOption configures a MemoryRepository
type MemoryOption func(*MemoryRepository)

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) MemoryOption {
	return func(r *MemoryRepository) { r.now = now }
}

// WithIDGenerator overrides the identifier source
func WithIDGenerator(newID func() string) MemoryOption {
	return func(r *MemoryRepository) { r.newID = newID }
}

// NewMemoryRepository creates a seeded in-memory repository
func NewMemoryRepository(opts ...MemoryOption) *MemoryRepository {
	r := &MemoryRepository{
		metrics:      newCollection[ClimateMetrics](),
		calculations: newCollection[CarbonCalculation](),
		credits:      newCollection[CarbonCredit](),
		policies:     newCollection[PolicyRecommendation](),
		chat:         newCollection[ChatMessage](),
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.seed()
	return r
}

func (r *MemoryRepository) seed() {
	m := seedMetrics
	m.ID = r.newID()
	m.RecordedAt = r.now()
	r.metrics.add(m.ID, m)

	for _, c := range seedCredits {
		c.ID = r.newID()
		r.credits.add(c.ID, c)
	}
	for _, p := range seedPolicies {
		p.ID = r.newID()
		r.policies.add(p.ID, p)
	}
}

// CreateClimateMetrics appends a new snapshot stamped with the current time
func (r *MemoryRepository) CreateClimateMetrics(ctx context.Context, in InsertClimateMetrics) (*ClimateMetrics, error) {
	m := ClimateMetrics{
		ID:               r.newID(),
		CO2Level:         in.CO2Level,
		Temperature:      in.Temperature,
		CreditsAllocated: in.CreditsAllocated,
		PolicyScore:      in.PolicyScore,
		RecordedAt:       r.now(),
	}
	r.metrics.add(m.ID, m)
	return &m, nil
}

// GetLatestClimateMetrics returns the snapshot with the greatest RecordedAt,
// or nil when there are none. Ties go to the later insertion.
func (r *MemoryRepository) GetLatestClimateMetrics(ctx context.Context) (*ClimateMetrics, error) {
	all := r.metrics.list()
	if len(all) == 0 {
		return nil, nil
	}
	latest := all[0]
	for _, m := range all[1:] {
		if !m.RecordedAt.Before(latest.RecordedAt) {
			latest = m
		}
	}
	return &latest, nil
}

// CreateCarbonCalculation derives the footprint and stores the calculation
func (r *MemoryRepository) CreateCarbonCalculation(ctx context.Context, in InsertCarbonCalculation) (*CarbonCalculation, error) {
	c := CarbonCalculation{
		ID:               r.newID(),
		OrganizationType: in.OrganizationType,
		EnergyUse:        in.EnergyUse,
		Transportation:   in.Transportation,
		WasteGeneration:  in.WasteGeneration,
		TotalFootprint:   Footprint(in),
		CalculatedAt:     r.now(),
	}
	r.calculations.add(c.ID, c)
	return &c, nil
}

// GetCarbonCalculation returns nil when no calculation has the id
func (r *MemoryRepository) GetCarbonCalculation(ctx context.Context, id string) (*CarbonCalculation, error) {
	c, ok := r.calculations.get(id)
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *MemoryRepository) GetCarbonCredits(ctx context.Context) ([]CarbonCredit, error) {
	return r.credits.list(), nil
}

func (r *MemoryRepository) GetPolicyRecommendations(ctx context.Context) ([]PolicyRecommendation, error) {
	return r.policies.list(), nil
}

// CreateChatMessage stores an exchange whose response was already generated
func (r *MemoryRepository) CreateChatMessage(ctx context.Context, message, response string) (*ChatMessage, error) {
	m := ChatMessage{
		ID:        r.newID(),
		Message:   message,
		Response:  response,
		CreatedAt: r.now(),
	}
	r.chat.add(m.ID, m)
	return &m, nil
}

// GetChatMessages returns the history ordered by CreatedAt ascending
func (r *MemoryRepository) GetChatMessages(ctx context.Context) ([]ChatMessage, error) {
	msgs := r.chat.list()
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
	return msgs, nil
}
