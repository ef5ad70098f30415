package optimizer

// Thresholds and multipliers for the HVAC efficiency heuristic
const (
	LowOccupancy       = 0.3
	LowOccupancyFactor = 0.7

	CoolTemperature = 26.0
	CoolFactor      = 0.9

	HotTemperature = 30.0
	HotFactor      = 1.1
)

// EfficiencyFactor returns the multiplier applied to historical usage.
// Occupancy and temperature adjustments are independent; temperatures in
// [26,30] leave the factor unchanged.
func EfficiencyFactor(occupancy, temperature float64) float64 {
	factor := 1.0
	if occupancy < LowOccupancy {
		factor *= LowOccupancyFactor
	}

	if temperature < CoolTemperature {
		factor *= CoolFactor
	} else if temperature > HotTemperature {
		factor *= HotFactor
	}

	return factor
}

// Optimize returns the adjusted kWh for an hour
func Optimize(occupancy, temperature, historicalUsage float64) float64 {
	return historicalUsage * EfficiencyFactor(occupancy, temperature)
}
