package advisor

// CreditRecommendation is one suggested credit purchase
type CreditRecommendation struct {
	ProjectType   string  `json:"projectType"`
	CreditsAmount float64 `json:"creditsAmount"`
	Cost          float64 `json:"cost"`
	ImpactLevel   string  `json:"impactLevel"`
	Description   string  `json:"description"`
}

// CreditRecommendations is the bundle returned for a footprint
type CreditRecommendations struct {
	Recommendations []CreditRecommendation `json:"recommendations"`
	TotalCredits    float64                `json:"totalCredits"`
	TotalCost       float64                `json:"totalCost"`
}

// PolicySuggestion mirrors the policy catalog shape without an id
type PolicySuggestion struct {
	Title              string `json:"title"`
	Category           string `json:"category"`
	Priority           string `json:"priority"`
	Description        string `json:"description"`
	ProjectedImpact    string `json:"projectedImpact"`
	ImplementationCost string `json:"implementationCost"`
	Timeline           string `json:"timeline"`
	Icon               string `json:"icon"`
}

// PolicySuggestions is the bundle returned for a region
type PolicySuggestions struct {
	Policies []PolicySuggestion `json:"policies"`
}

// Fallback values returned when the model call fails
const (
	FallbackChatResponse = "I'm having trouble connecting to my knowledge base right now. Please try again later."
	EmptyChatResponse    = "I apologize, but I couldn't generate a response at this time."
)

// EmptyCreditRecommendations is the fallback recommendation bundle
func EmptyCreditRecommendations() CreditRecommendations {
	return CreditRecommendations{Recommendations: []CreditRecommendation{}}
}

// EmptyPolicySuggestions is the fallback policy bundle
func EmptyPolicySuggestions() PolicySuggestions {
	return PolicySuggestions{Policies: []PolicySuggestion{}}
}
