package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// DefaultModel is used when no model is configured
const DefaultModel = openai.GPT4o

var (
	// ErrCredentialRejected is returned when a candidate API key fails the trial call
	ErrCredentialRejected = errors.New("api key rejected by model provider")
	errEmptyCompletion    = errors.New("model returned no content")
)

// Call outcomes reported to a Recorder
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Operation names reported to a Recorder
const (
	OpClimateResponse     = "climate_response"
	OpCreditRecommend     = "credit_recommendations"
	OpPolicyRecommend     = "policy_recommendations"
	OpCredentialCheck     = "credential_check"
	credentialCheckTokens = 5
)

// Recorder observes outbound model calls
type Recorder interface {
	ObserveAICall(operation, outcome string)
}

// Config configures the model endpoint
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Advisor adapts the dashboard's text-generation needs to a chat-completions
// endpoint. Public methods never fail: errors become fixed fallback values.
type Advisor struct {
	mu     sync.RWMutex
	client *openai.Client

	model    string
	baseURL  string
	logger   *zap.Logger
	recorder Recorder
}

// Option configures an Advisor
type Option func(*Advisor)

// WithRecorder attaches a call recorder
func WithRecorder(r Recorder) Option {
	return func(a *Advisor) { a.recorder = r }
}

// New creates an Advisor using cfg.APIKey as the initial credential
func New(cfg Config, logger *zap.Logger, opts ...Option) *Advisor {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	a := &Advisor{
		model:   model,
		baseURL: strings.TrimSpace(cfg.BaseURL),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.client = a.newClient(cfg.APIKey)
	return a
}

func (a *Advisor) newClient(apiKey string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if a.baseURL != "" {
		cfg.BaseURL = a.baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

// currentClient captures the active credential for the duration of one call
func (a *Advisor) currentClient() *openai.Client {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.client
}

// UpdateAPIKey replaces the credential after a live trial call succeeds.
// When the trial fails the previous credential stays in effect.
func (a *Advisor) UpdateAPIKey(ctx context.Context, apiKey string) error {
	candidate := a.newClient(apiKey)
	_, err := candidate.CreateChatCompletion(context.WithoutCancel(ctx), openai.ChatCompletionRequest{
		Model:     a.model,
		Messages:  []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: "test"}},
		MaxTokens: credentialCheckTokens,
	})
	a.observe(OpCredentialCheck, err)
	if err != nil {
		a.logger.Warn("API key validation failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrCredentialRejected, err)
	}

	a.mu.Lock()
	a.client = candidate
	a.mu.Unlock()

	a.logger.Info("API key updated")
	return nil
}

// GenerateClimateResponse answers a free-text climate question
func (a *Advisor) GenerateClimateResponse(ctx context.Context, message string) string {
	text, err := a.climateResponse(context.WithoutCancel(ctx), message)
	a.observe(OpClimateResponse, err)
	switch {
	case errors.Is(err, errEmptyCompletion):
		return EmptyChatResponse
	case err != nil:
		a.logger.Error("Climate response generation failed", zap.Error(err))
		return FallbackChatResponse
	}
	return text
}

func (a *Advisor) climateResponse(ctx context.Context, message string) (string, error) {
	return a.complete(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: climateExpertPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
	})
}

// GenerateCarbonCreditRecommendations suggests a credit allocation for a footprint
func (a *Advisor) GenerateCarbonCreditRecommendations(ctx context.Context, footprint float64, organizationType string) CreditRecommendations {
	recs, err := a.creditRecommendations(context.WithoutCancel(ctx), footprint, organizationType)
	a.observe(OpCreditRecommend, err)
	if err != nil {
		a.logger.Error("Credit recommendation generation failed", zap.Error(err))
		return EmptyCreditRecommendations()
	}
	return recs
}

func (a *Advisor) creditRecommendations(ctx context.Context, footprint float64, organizationType string) (CreditRecommendations, error) {
	var out CreditRecommendations
	err := a.completeJSON(ctx, creditExpertPrompt, creditRequestPrompt(footprint, organizationType), &out)
	if err != nil {
		return CreditRecommendations{}, err
	}
	if out.Recommendations == nil {
		out.Recommendations = []CreditRecommendation{}
	}
	return out, nil
}

// GeneratePolicyRecommendations drafts policy suggestions for a region. It is
// not routed; the served policy list is the static catalog.
func (a *Advisor) GeneratePolicyRecommendations(ctx context.Context, region string) PolicySuggestions {
	if strings.TrimSpace(region) == "" {
		region = "general"
	}
	var out PolicySuggestions
	err := a.completeJSON(context.WithoutCancel(ctx), policyExpertPrompt, policyRequestPrompt(region), &out)
	a.observe(OpPolicyRecommend, err)
	if err != nil {
		a.logger.Error("Policy recommendation generation failed", zap.Error(err))
		return EmptyPolicySuggestions()
	}
	if out.Policies == nil {
		out.Policies = []PolicySuggestion{}
	}
	return out
}

func (a *Advisor) completeJSON(ctx context.Context, system, user string, dst any) error {
	content, err := a.complete(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(content), dst); err != nil {
		return fmt.Errorf("decode model output: %w", err)
	}
	return nil
}

// complete makes exactly one outbound request
func (a *Advisor) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	resp, err := a.currentClient().CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

func (a *Advisor) observe(operation string, err error) {
	if a.recorder == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	a.recorder.ObserveAICall(operation, outcome)
}
