package sizing

import (
	"errors"
	"math"
)

// Fixed physical assumptions of the sizing model.
const (
	GasConstant          = 10.73 // psia·ft³/(lbmol·°R)
	StandardTemperatureR = 520.0
	GasMolecularWeight   = 18.0
	GasHeatCapacityRatio = 1.3

	WaterDensity       = 62.4 // lb/ft³
	FallbackOilDensity = 53.0 // lb/ft³, used when no API gravity is given
	BarrelToCubicFeet  = 5.615
	SecondsPerDay      = 86400.0

	MixtureVelocity    = 125.0 // ft/s
	MixingChamberRatio = 2.0
)

// ErrNoValidInput is returned when no stream contributes to the aggregate.
var ErrNoValidInput = errors.New("no valid input provided: enter valid flow and pressure values")

// ErrZeroDensity is returned when the included streams average to zero density,
// which happens when every included stream is gas at zero pressure.
var ErrZeroDensity = errors.New("average density is zero: gas streams need a positive pressure")

// ErrInvalidResult is returned when the streams produce a non-finite or
// non-positive throat area, e.g. an API gravity at or below -131.5.
var ErrInvalidResult = errors.New("streams do not yield a valid throat area: check API gravity and pressure values")

// Result is the output of one sizing calculation.
type Result struct {
	TotalMassFlow         float64 `json:"total_mass_flow_lbm_day"`
	AverageDensity        float64 `json:"average_density_lb_ft3"`
	ThroatDiameter        float64 `json:"throat_diameter_in"`
	MixingChamberDiameter float64 `json:"mixing_chamber_diameter_in"`
	IncludedStreams       int     `json:"included_streams"`
}

// Contribution is the density and daily mass flow one stream adds to the aggregate.
type Contribution struct {
	Density  float64
	MassFlow float64 // lbm/day
}

// GasDensity returns the ideal-gas density in lb/ft³ at the given pressure.
func GasDensity(pressure float64) float64 {
	return pressure * GasMolecularWeight / (GasConstant * StandardTemperatureR)
}

// GasMassFlow converts a standard gas rate in MMSCFD to lbm/day.
func GasMassFlow(mmscfd float64) float64 {
	lbmol := mmscfd * 1e6 / (GasConstant * StandardTemperatureR)
	return lbmol * GasMolecularWeight
}

// OilDensity converts API gravity to lb/ft³. A nil or zero API falls back to
// FallbackOilDensity.
func OilDensity(api *float64) float64 {
	if api == nil || *api == 0 {
		return FallbackOilDensity
	}
	return 141.5 / (*api + 131.5) * WaterDensity
}

// LiquidMassFlow converts a liquid rate in BPD to lbm/day.
func LiquidMassFlow(bpd, density float64) float64 {
	return bpd * BarrelToCubicFeet * density
}

// GasSonicVelocity returns the reference sonic velocity in ft/s for the fixed
// gas properties. Calculate does not use it.
func GasSonicVelocity() float64 {
	return math.Sqrt(GasHeatCapacityRatio * GasConstant * StandardTemperatureR * 144 / GasMolecularWeight)
}

// Contribute returns the stream's density and mass flow. ok is false when the
// stream has no positive flow and must be left out of the aggregate.
func Contribute(rec StreamRecord) (c Contribution, ok bool) {
	if rec.Flow <= 0 {
		return Contribution{}, false
	}
	switch rec.Fluid {
	case Gas:
		c.Density = GasDensity(rec.Pressure)
		c.MassFlow = GasMassFlow(rec.Flow)
	case Oil:
		c.Density = OilDensity(rec.API)
		c.MassFlow = LiquidMassFlow(rec.Flow, c.Density)
	case Water:
		c.Density = WaterDensity
		c.MassFlow = LiquidMassFlow(rec.Flow, c.Density)
	default:
		return Contribution{}, false
	}
	return c, true
}

// Calculate sizes the ejector for the given streams. Streams with flow <= 0
// are skipped; if none remain, ErrNoValidInput is returned.
func Calculate(records []StreamRecord) (Result, error) {
	var total float64
	densities := make([]float64, 0, len(records))

	for _, rec := range records {
		c, ok := Contribute(rec)
		if !ok {
			continue
		}
		total += c.MassFlow
		densities = append(densities, c.Density)
	}

	if total == 0 || len(densities) == 0 {
		return Result{}, ErrNoValidInput
	}

	var sum float64
	for _, d := range densities {
		sum += d
	}
	avg := sum / float64(len(densities))
	if avg <= 0 {
		return Result{}, ErrZeroDensity
	}

	rate := total / SecondsPerDay
	area := rate / (avg * MixtureVelocity)
	if !finite(total) || !finite(avg) || !finite(area) || area <= 0 {
		return Result{}, ErrInvalidResult
	}
	throatFt := 2 * math.Sqrt(area/math.Pi)
	throatIn := throatFt * 12

	return Result{
		TotalMassFlow:         total,
		AverageDensity:        avg,
		ThroatDiameter:        throatIn,
		MixingChamberDiameter: MixingChamberRatio * throatIn,
		IncludedStreams:       len(densities),
	}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
