package climate

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedClock hands out the queued times in order, then keeps returning the last one
type scriptedClock struct {
	mu    sync.Mutex
	times []time.Time
}

func (c *scriptedClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.times[0]
	if len(c.times) > 1 {
		c.times = c.times[1:]
	}
	return t
}

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestFootprint(t *testing.T) {
	tests := []struct {
		name string
		in   InsertCarbonCalculation
		want float64
	}{
		{"reference", InsertCarbonCalculation{EnergyUse: 50000, Transportation: 25000, WasteGeneration: 12}, 42000},
		{"zero", InsertCarbonCalculation{}, 0},
		{"rounds half up", InsertCarbonCalculation{EnergyUse: 1.25}, 1},
		{"rounds fraction", InsertCarbonCalculation{EnergyUse: 3.9, Transportation: 0.1}, 2},
		{"negative inputs", InsertCarbonCalculation{EnergyUse: -1000, WasteGeneration: 0.5}, 100},
		{"negative half rounds up", InsertCarbonCalculation{EnergyUse: -6.25}, -2},
		{"negative fraction", InsertCarbonCalculation{Transportation: -6.5}, -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Footprint(tt.in))
		})
	}
}

func TestCreateCarbonCalculation(t *testing.T) {
	repo := NewMemoryRepository(WithClock(func() time.Time { return base }))
	ctx := context.Background()

	calc, err := repo.CreateCarbonCalculation(ctx, InsertCarbonCalculation{
		OrganizationType: "Manufacturing Company",
		EnergyUse:        50000,
		Transportation:   25000,
		WasteGeneration:  12,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, calc.ID)
	assert.Equal(t, 42000.0, calc.TotalFootprint)
	assert.Equal(t, base, calc.CalculatedAt)

	got, err := repo.GetCarbonCalculation(ctx, calc.ID)
	require.NoError(t, err)
	assert.Equal(t, calc, got)

	missing, err := repo.GetCarbonCalculation(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStoredCalculationIsNotAliased(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	calc, err := repo.CreateCarbonCalculation(ctx, InsertCarbonCalculation{EnergyUse: 10})
	require.NoError(t, err)
	calc.TotalFootprint = 999

	got, err := repo.GetCarbonCalculation(ctx, calc.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got.TotalFootprint)
}

func TestIdentifiersAreUnique(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	seen := make(map[string]bool)

	record := func(id string) {
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}

	for i := 0; i < 50; i++ {
		calc, err := repo.CreateCarbonCalculation(ctx, InsertCarbonCalculation{EnergyUse: float64(i)})
		require.NoError(t, err)
		record(calc.ID)

		msg, err := repo.CreateChatMessage(ctx, fmt.Sprintf("q%d", i), "a")
		require.NoError(t, err)
		record(msg.ID)

		m, err := repo.CreateClimateMetrics(ctx, InsertClimateMetrics{CO2Level: float64(i)})
		require.NoError(t, err)
		record(m.ID)
	}
	assert.Len(t, seen, 150)
}

func TestGetLatestClimateMetricsUsesRecordedAt(t *testing.T) {
	t1, t2, t3 := base.Add(time.Hour), base.Add(2*time.Hour), base.Add(3*time.Hour)
	// seed, then inserts out of chronological order: T3, T1, T2
	clock := &scriptedClock{times: []time.Time{base, t3, t1, t2}}
	repo := NewMemoryRepository(WithClock(clock.now))
	ctx := context.Background()

	_, err := repo.CreateClimateMetrics(ctx, InsertClimateMetrics{CO2Level: 3})
	require.NoError(t, err)
	_, err = repo.CreateClimateMetrics(ctx, InsertClimateMetrics{CO2Level: 1})
	require.NoError(t, err)
	_, err = repo.CreateClimateMetrics(ctx, InsertClimateMetrics{CO2Level: 2})
	require.NoError(t, err)

	latest, err := repo.GetLatestClimateMetrics(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 3.0, latest.CO2Level)
	assert.Equal(t, t3, latest.RecordedAt)
}

func TestGetLatestClimateMetricsSeeded(t *testing.T) {
	repo := NewMemoryRepository()

	latest, err := repo.GetLatestClimateMetrics(context.Background())

	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 421.3, latest.CO2Level)
	assert.Equal(t, 1.1, latest.Temperature)
	assert.Equal(t, 1200000.0, latest.CreditsAllocated)
	assert.Equal(t, 8.4, latest.PolicyScore)
}

func TestChatMessagesAscending(t *testing.T) {
	clock := &scriptedClock{times: []time.Time{base, base.Add(time.Second), base.Add(2 * time.Second), base.Add(3 * time.Second)}}
	repo := NewMemoryRepository(WithClock(clock.now))
	ctx := context.Background()

	for _, q := range []string{"M1", "M2", "M3"} {
		_, err := repo.CreateChatMessage(ctx, q, "answer to "+q)
		require.NoError(t, err)
	}

	msgs, err := repo.GetChatMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "M1", msgs[0].Message)
	assert.Equal(t, "M2", msgs[1].Message)
	assert.Equal(t, "M3", msgs[2].Message)
	assert.Equal(t, "answer to M2", msgs[1].Response)
}

func TestChatMessagesSameTimestampKeepCreationOrder(t *testing.T) {
	repo := NewMemoryRepository(WithClock(func() time.Time { return base }))
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := repo.CreateChatMessage(ctx, fmt.Sprintf("M%d", i), "")
		require.NoError(t, err)
	}

	msgs, err := repo.GetChatMessages(ctx)
	require.NoError(t, err)
	for i, m := range msgs {
		assert.Equal(t, fmt.Sprintf("M%d", i), m.Message)
	}
}

func TestSeedCatalogs(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	credits, err := repo.GetCarbonCredits(ctx)
	require.NoError(t, err)
	require.Len(t, credits, 3)
	assert.Equal(t, "Renewable Energy Credits", credits[0].ProjectType)
	assert.Equal(t, 450, credits[0].CreditsAmount)
	assert.Equal(t, 12600.0, credits[0].Cost)
	assert.Equal(t, ImpactHigh, credits[0].ImpactLevel)
	assert.Equal(t, "Forest Conservation", credits[1].ProjectType)
	assert.Equal(t, ImpactMedium, credits[1].ImpactLevel)
	assert.Equal(t, "Methane Capture", credits[2].ProjectType)
	assert.Equal(t, 497, credits[2].CreditsAmount)

	policies, err := repo.GetPolicyRecommendations(ctx)
	require.NoError(t, err)
	require.Len(t, policies, 3)
	assert.Equal(t, "Industrial Emissions Cap", policies[0].Title)
	assert.Equal(t, PriorityHigh, policies[0].Priority)
	assert.Equal(t, "EV Infrastructure Expansion", policies[1].Title)
	assert.Equal(t, "Urban Green Spaces", policies[2].Title)
	assert.Equal(t, "fas fa-seedling", policies[2].Icon)
}

func TestSeedCatalogsCannotBeMutatedThroughResults(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	credits, err := repo.GetCarbonCredits(ctx)
	require.NoError(t, err)
	credits[0].ProjectType = "tampered"
	credits = append(credits[:1], credits[2:]...)

	again, err := repo.GetCarbonCredits(ctx)
	require.NoError(t, err)
	require.Len(t, again, 3)
	assert.Equal(t, "Renewable Energy Credits", again[0].ProjectType)
	assert.Len(t, credits, 2)
}

func TestSeparateRepositoriesDoNotShareState(t *testing.T) {
	a := NewMemoryRepository()
	b := NewMemoryRepository()
	ctx := context.Background()

	_, err := a.CreateChatMessage(ctx, "only in a", "")
	require.NoError(t, err)

	msgs, err := b.GetChatMessages(ctx)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestConcurrentWrites(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = repo.CreateChatMessage(ctx, fmt.Sprintf("q%d", i), "a")
			_, _ = repo.CreateCarbonCalculation(ctx, InsertCarbonCalculation{EnergyUse: float64(i)})
			_, _ = repo.GetChatMessages(ctx)
			_, _ = repo.GetLatestClimateMetrics(ctx)
		}(i)
	}
	wg.Wait()

	msgs, err := repo.GetChatMessages(ctx)
	require.NoError(t, err)
	assert.Len(t, msgs, 32)
}
