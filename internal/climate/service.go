package climate

import (
	"context"
	"errors"
	"fmt"

	"github.com/kanishk-2/climate-action-ai/internal/advisor"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// Event types published to live dashboard clients
const (
	EventChatMessage     = "chat.message"
	EventCalculation     = "carbon.calculation"
	EventMetricsRecorded = "climate.metrics"
)

// Advisor generates text with an external model. Implementations absorb
// model failures and return fallback values instead.
type Advisor interface {
	GenerateClimateResponse(ctx context.Context, message string) string
	GenerateCarbonCreditRecommendations(ctx context.Context, footprint float64, organizationType string) advisor.CreditRecommendations
	UpdateAPIKey(ctx context.Context, apiKey string) error
}

// Publisher fans out domain events to interested listeners
type Publisher interface {
	Publish(eventType string, payload any)
}

type noopPublisher struct{}

func (noopPublisher) Publish(string, any) {}

// Service provides the dashboard's business operations
type Service struct {
	repo      Repository
	advisor   Advisor
	publisher Publisher
	logger    *zap.Logger
}

// NewService creates a new climate service. publisher may be nil.
func NewService(repo Repository, adv Advisor, publisher Publisher, logger *zap.Logger) *Service {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &Service{
		repo:      repo,
		advisor:   adv,
		publisher: publisher,
		logger:    logger,
	}
}

// LatestMetrics returns the most recent snapshot, or nil if none exist
func (s *Service) LatestMetrics(ctx context.Context) (*ClimateMetrics, error) {
	return s.repo.GetLatestClimateMetrics(ctx)
}

// RecordMetrics appends a new metrics snapshot
func (s *Service) RecordMetrics(ctx context.Context, in InsertClimateMetrics) (*ClimateMetrics, error) {
	m, err := s.repo.CreateClimateMetrics(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to record climate metrics: %w", err)
	}
	s.logger.Info("Climate metrics recorded", zap.String("metrics_id", m.ID))
	s.publisher.Publish(EventMetricsRecorded, m)
	return m, nil
}

// CalculateFootprint stores a calculation with its derived total
func (s *Service) CalculateFootprint(ctx context.Context, in InsertCarbonCalculation) (*CarbonCalculation, error) {
	calc, err := s.repo.CreateCarbonCalculation(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create calculation: %w", err)
	}
	s.logger.Info("Carbon footprint calculated",
		zap.String("calculation_id", calc.ID),
		zap.String("organization_type", calc.OrganizationType),
		zap.Float64("total_footprint", calc.TotalFootprint))
	s.publisher.Publish(EventCalculation, calc)
	return calc, nil
}

// GetCalculation looks up a calculation by id
func (s *Service) GetCalculation(ctx context.Context, id string) (*CarbonCalculation, error) {
	calc, err := s.repo.GetCarbonCalculation(ctx, id)
	if err != nil {
		return nil, err
	}
	if calc == nil {
		return nil, ErrNotFound
	}
	return calc, nil
}

func (s *Service) ListCredits(ctx context.Context) ([]CarbonCredit, error) {
	return s.repo.GetCarbonCredits(ctx)
}

func (s *Service) ListPolicies(ctx context.Context) ([]PolicyRecommendation, error) {
	return s.repo.GetPolicyRecommendations(ctx)
}

// RecommendCredits asks the advisor for a credit allocation
func (s *Service) RecommendCredits(ctx context.Context, req RecommendationRequest) advisor.CreditRecommendations {
	return s.advisor.GenerateCarbonCreditRecommendations(ctx, req.Footprint, req.OrganizationType)
}

// SendChatMessage generates a response for the message and stores the pair
func (s *Service) SendChatMessage(ctx context.Context, in InsertChatMessage) (*ChatMessage, error) {
	response := s.advisor.GenerateClimateResponse(ctx, in.Message)

	msg, err := s.repo.CreateChatMessage(ctx, in.Message, response)
	if err != nil {
		return nil, fmt.Errorf("failed to store chat message: %w", err)
	}
	s.publisher.Publish(EventChatMessage, msg)
	return msg, nil
}

// ChatHistory returns every exchange, oldest first
func (s *Service) ChatHistory(ctx context.Context) ([]ChatMessage, error) {
	return s.repo.GetChatMessages(ctx)
}

// ClimateData returns a copy of the chart bundle
func (s *Service) ClimateData() ClimateData {
	return ClimateData{
		CO2Levels:            climateData.CO2Levels.clone(),
		TemperatureAnomalies: climateData.TemperatureAnomalies.clone(),
		EmissionsBySection:   climateData.EmissionsBySection.clone(),
	}
}

func (c ChartSeries) clone() ChartSeries {
	return ChartSeries{
		Labels: append([]string(nil), c.Labels...),
		Data:   append([]float64(nil), c.Data...),
	}
}

// UpdateAPIKey swaps the advisor credential once it passes validation
func (s *Service) UpdateAPIKey(ctx context.Context, apiKey string) error {
	return s.advisor.UpdateAPIKey(ctx, apiKey)
}
