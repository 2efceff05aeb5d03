package climate

// Seed catalogs loaded once when the repository is constructed. IDs and
// timestamps are assigned at load time.

var seedMetrics = ClimateMetrics{
	CO2Level:         421.3,
	Temperature:      1.1,
	CreditsAllocated: 1200000,
	PolicyScore:      8.4,
}

var seedCredits = []CarbonCredit{
	{
		ProjectType:   "Renewable Energy Credits",
		CreditsAmount: 450,
		Cost:          12600,
		ImpactLevel:   ImpactHigh,
		Description:   "Wind and solar project investments for direct emission reduction",
	},
	{
		ProjectType:   "Forest Conservation",
		CreditsAmount: 300,
		Cost:          7200,
		ImpactLevel:   ImpactMedium,
		Description:   "Reforestation and forest protection initiatives",
	},
	{
		ProjectType:   "Methane Capture",
		CreditsAmount: 497,
		Cost:          14910,
		ImpactLevel:   ImpactHigh,
		Description:   "Agricultural and landfill methane reduction programs",
	},
}

var seedPolicies = []PolicyRecommendation{
	{
		Title:              "Industrial Emissions Cap",
		Category:           "Industry",
		Priority:           PriorityHigh,
		Description:        "Implement mandatory emissions reduction targets for heavy industry with graduated penalties and incentives.",
		ProjectedImpact:    "-15% emissions",
		ImplementationCost: "$2.1B",
		Timeline:           "18 months",
		Icon:               "fas fa-industry",
	},
	{
		Title:              "EV Infrastructure Expansion",
		Category:           "Transportation",
		Priority:           PriorityMedium,
		Description:        "Accelerate electric vehicle adoption through public charging infrastructure investment and purchase incentives.",
		ProjectedImpact:    "-8% transport emissions",
		ImplementationCost: "$850M",
		Timeline:           "24 months",
		Icon:               "fas fa-car-side",
	},
	{
		Title:              "Urban Green Spaces",
		Category:           "Urban Planning",
		Priority:           PriorityLow,
		Description:        "Expand urban forestry and green infrastructure to improve air quality and carbon sequestration.",
		ProjectedImpact:    "-3% urban emissions",
		ImplementationCost: "$425M",
		Timeline:           "36 months",
		Icon:               "fas fa-seedling",
	},
}

// climateData is the fixed chart bundle served to the dashboard
var climateData = ClimateData{
	CO2Levels: ChartSeries{
		Labels: []string{"2019", "2020", "2021", "2022", "2023", "2024 (Proj.)"},
		Data:   []float64{411.5, 413.2, 416.4, 418.9, 421.3, 423.1},
	},
	TemperatureAnomalies: ChartSeries{
		Labels: []string{"2019", "2020", "2021", "2022", "2023", "2024 (Proj.)"},
		Data:   []float64{0.95, 1.02, 1.14, 1.06, 1.1, 1.15},
	},
	EmissionsBySection: ChartSeries{
		Labels: []string{"Energy", "Transportation", "Industry", "Agriculture", "Buildings", "Other"},
		Data:   []float64{25, 24, 21, 18, 8, 4},
	},
}
