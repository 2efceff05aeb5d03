package climate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	names := make([]string, len(verr.Fields))
	for i, f := range verr.Fields {
		names[i] = f.Field
	}
	return names
}

func TestParseInsertCarbonCalculation(t *testing.T) {
	in, err := ParseInsertCarbonCalculation(map[string]any{
		"organizationType": "Manufacturing Company",
		"energyUse":        50000.0,
		"transportation":   25000.0,
		"wasteGeneration":  12.0,
		"id":               "caller-chosen",
		"calculatedAt":     "2020-01-01T00:00:00Z",
	})

	require.NoError(t, err)
	assert.Equal(t, InsertCarbonCalculation{
		OrganizationType: "Manufacturing Company",
		EnergyUse:        50000,
		Transportation:   25000,
		WasteGeneration:  12,
	}, in)
}

func TestParseInsertCarbonCalculationMissingWaste(t *testing.T) {
	_, err := ParseInsertCarbonCalculation(map[string]any{
		"organizationType": "Individual",
		"energyUse":        1.0,
		"transportation":   2.0,
	})

	assert.Equal(t, []string{"wasteGeneration"}, fieldNames(t, err))
	assert.Contains(t, err.Error(), "wasteGeneration")
}

func TestParseInsertCarbonCalculationRejectsTotalFootprint(t *testing.T) {
	_, err := ParseInsertCarbonCalculation(map[string]any{
		"organizationType": "Individual",
		"energyUse":        1.0,
		"transportation":   2.0,
		"wasteGeneration":  3.0,
		"totalFootprint":   1.0,
	})

	assert.Equal(t, []string{"totalFootprint"}, fieldNames(t, err))
}

func TestParseInsertCarbonCalculationCollectsAllErrors(t *testing.T) {
	_, err := ParseInsertCarbonCalculation(map[string]any{
		"organizationType": 7.0,
		"energyUse":        "lots",
		"transportation":   nil,
	})

	assert.ElementsMatch(t,
		[]string{"organizationType", "energyUse", "transportation", "wasteGeneration"},
		fieldNames(t, err))
}

func TestParseInsertCarbonCalculationAcceptsJSONNumber(t *testing.T) {
	in, err := ParseInsertCarbonCalculation(map[string]any{
		"organizationType": "Government Agency",
		"energyUse":        json.Number("10"),
		"transportation":   0,
		"wasteGeneration":  -1,
	})

	require.NoError(t, err)
	assert.Equal(t, 10.0, in.EnergyUse)
	assert.Equal(t, -1.0, in.WasteGeneration)
}

func TestParseInsertCarbonCalculationRejectsOverflow(t *testing.T) {
	_, err := ParseInsertCarbonCalculation(map[string]any{
		"organizationType": "Individual",
		"energyUse":        1.0,
		"transportation":   1.0,
		"wasteGeneration":  1e306,
	})
	assert.Equal(t, []string{"wasteGeneration"}, fieldNames(t, err))

	_, err = ParseInsertCarbonCalculation(map[string]any{
		"organizationType": "Individual",
		"energyUse":        1e308,
		"transportation":   1e308,
		"wasteGeneration":  0.0,
	})
	assert.Equal(t, []string{"totalFootprint"}, fieldNames(t, err))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, CodeRange, verr.Fields[0].Code)
}

func TestParseInsertChatMessage(t *testing.T) {
	in, err := ParseInsertChatMessage(map[string]any{"message": "How do offsets work?"})
	require.NoError(t, err)
	assert.Equal(t, "How do offsets work?", in.Message)

	_, err = ParseInsertChatMessage(map[string]any{"message": ""})
	assert.Equal(t, []string{"message"}, fieldNames(t, err))

	_, err = ParseInsertChatMessage(map[string]any{"message": "   "})
	assert.Equal(t, []string{"message"}, fieldNames(t, err))

	_, err = ParseInsertChatMessage(nil)
	assert.Equal(t, []string{"message"}, fieldNames(t, err))
}

func TestParseInsertChatMessageRejectsResponse(t *testing.T) {
	_, err := ParseInsertChatMessage(map[string]any{
		"message":  "hi",
		"response": "I wrote this myself",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "response", verr.Fields[0].Field)
	assert.Equal(t, CodeForbidden, verr.Fields[0].Code)
}

func TestParseInsertClimateMetrics(t *testing.T) {
	in, err := ParseInsertClimateMetrics(map[string]any{
		"co2Level":         422.0,
		"temperature":      1.2,
		"creditsAllocated": 10.0,
		"policyScore":      7.5,
	})
	require.NoError(t, err)
	assert.Equal(t, 422.0, in.CO2Level)

	_, err = ParseInsertClimateMetrics(map[string]any{"co2Level": 1.0})
	assert.ElementsMatch(t, []string{"temperature", "creditsAllocated", "policyScore"}, fieldNames(t, err))
}

func TestParseRecommendationRequest(t *testing.T) {
	req, err := ParseRecommendationRequest(map[string]any{"footprint": 42.0, "organizationType": "Individual"})
	require.NoError(t, err)
	assert.Equal(t, RecommendationRequest{Footprint: 42, OrganizationType: "Individual"}, req)

	_, err = ParseRecommendationRequest(map[string]any{"footprint": "42"})
	assert.ElementsMatch(t, []string{"footprint", "organizationType"}, fieldNames(t, err))
}

func TestParseAPIKeyUpdate(t *testing.T) {
	in, err := ParseAPIKeyUpdate(map[string]any{"apiKey": "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, "sk-test", in.APIKey)

	_, err = ParseAPIKeyUpdate(map[string]any{"apiKey": 12.0})
	assert.Equal(t, []string{"apiKey"}, fieldNames(t, err))
}
