package climate

import "time"

// ImpactLevel grades the emission-reduction impact of a carbon credit project
type ImpactLevel string

const (
	ImpactHigh   ImpactLevel = "High Impact"
	ImpactMedium ImpactLevel = "Medium Impact"
	ImpactLow    ImpactLevel = "Low Impact"
)

// Priority ranks a policy recommendation
type Priority string

const (
	PriorityHigh   Priority = "High Priority"
	PriorityMedium Priority = "Medium Priority"
	PriorityLow    Priority = "Low Priority"
)

// ClimateMetrics is a single timestamped snapshot of aggregate climate metrics
type ClimateMetrics struct {
	ID               string    `json:"id"`
	CO2Level         float64   `json:"co2Level"`    // ppm
	Temperature      float64   `json:"temperature"` // °C anomaly
	CreditsAllocated float64   `json:"creditsAllocated"`
	PolicyScore      float64   `json:"policyScore"` // 0-10
	RecordedAt       time.Time `json:"recordedAt"`
}

// CarbonCalculation is an organization's footprint estimate. TotalFootprint is
// derived at creation and never changes afterwards.
type CarbonCalculation struct {
	ID               string    `json:"id"`
	OrganizationType string    `json:"organizationType"`
	EnergyUse        float64   `json:"energyUse"`       // kWh/yr
	Transportation   float64   `json:"transportation"`  // miles/yr
	WasteGeneration  float64   `json:"wasteGeneration"` // tons/yr
	TotalFootprint   float64   `json:"totalFootprint"`  // kg CO2e/yr
	CalculatedAt     time.Time `json:"calculatedAt"`
}

// CarbonCredit is an entry of the static credit catalog
type CarbonCredit struct {
	ID            string      `json:"id"`
	ProjectType   string      `json:"projectType"`
	CreditsAmount int         `json:"creditsAmount"`
	Cost          float64     `json:"cost"`
	ImpactLevel   ImpactLevel `json:"impactLevel"`
	Description   string      `json:"description"`
}

// PolicyRecommendation is an entry of the static policy catalog
type PolicyRecommendation struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Category           string   `json:"category"`
	Priority           Priority `json:"priority"`
	Description        string   `json:"description"`
	ProjectedImpact    string   `json:"projectedImpact"`
	ImplementationCost string   `json:"implementationCost"`
	Timeline           string   `json:"timeline"`
	Icon               string   `json:"icon"`
}

// ChatMessage pairs a user question with the assistant's answer
type ChatMessage struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"createdAt"`
}

// InsertClimateMetrics is the caller-supplied part of a metrics snapshot
type InsertClimateMetrics struct {
	CO2Level         float64 `json:"co2Level"`
	Temperature      float64 `json:"temperature"`
	CreditsAllocated float64 `json:"creditsAllocated"`
	PolicyScore      float64 `json:"policyScore"`
}

// InsertCarbonCalculation is the caller-supplied part of a footprint calculation
type InsertCarbonCalculation struct {
	OrganizationType string  `json:"organizationType"`
	EnergyUse        float64 `json:"energyUse"`
	Transportation   float64 `json:"transportation"`
	WasteGeneration  float64 `json:"wasteGeneration"`
}

// InsertChatMessage is the caller-supplied part of a chat exchange
type InsertChatMessage struct {
	Message string `json:"message"`
}

// RecommendationRequest asks for a credit allocation for a footprint
type RecommendationRequest struct {
	Footprint        float64 `json:"footprint"`
	OrganizationType string  `json:"organizationType"`
}

// APIKeyUpdate carries a replacement credential for the AI service
type APIKeyUpdate struct {
	APIKey string `json:"apiKey"`
}

// ChartSeries is a labelled series for the dashboard charts
type ChartSeries struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// ClimateData groups the chart series shown on the dashboard
type ClimateData struct {
	CO2Levels            ChartSeries `json:"co2Levels"`
	TemperatureAnomalies ChartSeries `json:"temperatureAnomalies"`
	EmissionsBySection   ChartSeries `json:"emissionsBySection"`
}
