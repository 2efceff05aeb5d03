package climate

import "math"

// Emission factors in kg CO2e per unit of activity
const (
	EnergyEmissionFactor    = 0.4    // per kWh
	TransportEmissionFactor = 0.4    // per mile
	WasteEmissionFactor     = 1000.0 // per ton of waste
)

// Footprint returns the annual footprint in kg CO2e rounded to the nearest
// integer, halves toward positive infinity. Inputs are not range checked;
// zero and negative values flow through the arithmetic.
func Footprint(in InsertCarbonCalculation) float64 {
	total := in.EnergyUse*EnergyEmissionFactor +
		in.Transportation*TransportEmissionFactor +
		in.WasteGeneration*WasteEmissionFactor
	return math.Floor(total + 0.5)
}

func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
