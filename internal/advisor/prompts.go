package advisor

import "fmt"

const climateExpertPrompt = "You are an AI climate expert assistant. Provide helpful, accurate information about climate change, " +
	"carbon emissions, sustainability, and environmental policies. Keep responses informative but concise, " +
	"and always be encouraging about climate action."

const creditExpertPrompt = `You are a carbon credit optimization expert. Based on the carbon footprint and organization type, ` +
	`recommend specific carbon credit allocations. Respond with JSON in this format: ` +
	`{ "recommendations": [{"projectType": "string", "creditsAmount": number, "cost": number, ` +
	`"impactLevel": "High Impact|Medium Impact|Low Impact", "description": "string"}], "totalCredits": number, "totalCost": number }`

const policyExpertPrompt = `You are a climate policy expert. Generate evidence-based policy recommendations for climate action. ` +
	`Respond with JSON in this format: { "policies": [{"title": "string", "category": "string", ` +
	`"priority": "High Priority|Medium Priority|Low Priority", "description": "string", "projectedImpact": "string", ` +
	`"implementationCost": "string", "timeline": "string", "icon": "fas fa-icon-name"}] }`

func creditRequestPrompt(footprint float64, organizationType string) string {
	return fmt.Sprintf("Organization type: %s, Carbon footprint: %g tons CO2e/year. Recommend carbon credit allocation.",
		organizationType, footprint)
}

func policyRequestPrompt(region string) string {
	return fmt.Sprintf("Generate climate policy recommendations for %s region focusing on practical, implementable solutions.", region)
}
