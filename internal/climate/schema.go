package climate

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Field error codes
const (
	CodeRequired  = "required"
	CodeType      = "invalid_type"
	CodeEmpty     = "empty"
	CodeForbidden = "forbidden"
	CodeRange     = "out_of_range"
)

// FieldError describes a single rejected field of an input payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ValidationError is returned when a payload does not match an input shape
type ValidationError struct {
	Fields []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// payload walks a raw JSON object and accumulates field errors
type payload struct {
	raw  map[string]any
	errs []FieldError
}

func newPayload(raw map[string]any) *payload {
	if raw == nil {
		raw = map[string]any{}
	}
	return &payload{raw: raw}
}

func (p *payload) fail(field, code, message string) {
	p.errs = append(p.errs, FieldError{Field: field, Message: message, Code: code})
}

func (p *payload) number(field string) float64 {
	v, ok := p.raw[field]
	if !ok || v == nil {
		p.fail(field, CodeRequired, field+" is required")
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err == nil {
			return f
		}
	}
	p.fail(field, CodeType, field+" must be a number")
	return 0
}

func (p *payload) str(field string, allowEmpty bool) string {
	v, ok := p.raw[field]
	if !ok || v == nil {
		p.fail(field, CodeRequired, field+" is required")
		return ""
	}
	s, ok := v.(string)
	if !ok {
		p.fail(field, CodeType, field+" must be a string")
		return ""
	}
	if !allowEmpty && strings.TrimSpace(s) == "" {
		p.fail(field, CodeEmpty, field+" must not be empty")
	}
	return s
}

// forbid rejects fields that only the server may set
func (p *payload) forbid(field string) {
	if _, ok := p.raw[field]; ok {
		p.fail(field, CodeForbidden, field+" is assigned by the server")
	}
}

// footprintRange rejects inputs whose derived footprint is not a finite number
func (p *payload) footprintRange(in InsertCarbonCalculation) {
	if len(p.errs) > 0 {
		return
	}
	terms := []struct {
		field string
		value float64
	}{
		{"energyUse", in.EnergyUse * EnergyEmissionFactor},
		{"transportation", in.Transportation * TransportEmissionFactor},
		{"wasteGeneration", in.WasteGeneration * WasteEmissionFactor},
	}
	for _, t := range terms {
		if !isFinite(t.value) {
			p.fail(t.field, CodeRange, t.field+" is too large")
		}
	}
	if len(p.errs) == 0 && !isFinite(Footprint(in)) {
		p.fail("totalFootprint", CodeRange, "inputs produce a footprint that is too large")
	}
}

func (p *payload) err() error {
	if len(p.errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: p.errs}
}

// ParseInsertClimateMetrics validates a raw metrics snapshot payload.
// id and recordedAt are ignored if present.
func ParseInsertClimateMetrics(raw map[string]any) (InsertClimateMetrics, error) {
	p := newPayload(raw)
	in := InsertClimateMetrics{
		CO2Level:         p.number("co2Level"),
		Temperature:      p.number("temperature"),
		CreditsAllocated: p.number("creditsAllocated"),
		PolicyScore:      p.number("policyScore"),
	}
	if err := p.err(); err != nil {
		return InsertClimateMetrics{}, err
	}
	return in, nil
}

// ParseInsertCarbonCalculation validates a raw calculation payload. The total
// footprint is always derived, so supplying it is an error, as are inputs
// large enough to overflow it.
func ParseInsertCarbonCalculation(raw map[string]any) (InsertCarbonCalculation, error) {
	p := newPayload(raw)
	in := InsertCarbonCalculation{
		OrganizationType: p.str("organizationType", true),
		EnergyUse:        p.number("energyUse"),
		Transportation:   p.number("transportation"),
		WasteGeneration:  p.number("wasteGeneration"),
	}
	p.forbid("totalFootprint")
	p.footprintRange(in)
	if err := p.err(); err != nil {
		return InsertCarbonCalculation{}, err
	}
	return in, nil
}

// ParseInsertChatMessage validates a raw chat payload. Empty and
// whitespace-only messages are rejected. The response is produced by the
// assistant and cannot be supplied.
func ParseInsertChatMessage(raw map[string]any) (InsertChatMessage, error) {
	p := newPayload(raw)
	in := InsertChatMessage{Message: p.str("message", false)}
	p.forbid("response")
	if err := p.err(); err != nil {
		return InsertChatMessage{}, err
	}
	return in, nil
}

// ParseRecommendationRequest validates a credit recommendation request
func ParseRecommendationRequest(raw map[string]any) (RecommendationRequest, error) {
	p := newPayload(raw)
	in := RecommendationRequest{
		Footprint:        p.number("footprint"),
		OrganizationType: p.str("organizationType", true),
	}
	if err := p.err(); err != nil {
		return RecommendationRequest{}, err
	}
	return in, nil
}

// ParseAPIKeyUpdate validates a credential replacement request
func ParseAPIKeyUpdate(raw map[string]any) (APIKeyUpdate, error) {
	p := newPayload(raw)
	in := APIKeyUpdate{APIKey: p.str("apiKey", false)}
	if err := p.err(); err != nil {
		return APIKeyUpdate{}, err
	}
	return in, nil
}
