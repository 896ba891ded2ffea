package severity

import (
	"math"
	"strings"
)

// Intensity es la intensidad reportada por el paciente.
// @Enum none, mild, severe
type Intensity string

const (
	IntensityNone   Intensity = "none"
	IntensityMild   Intensity = "mild"
	IntensitySevere Intensity = "severe"
)

const (
	seniorAgeAbove = 60

	seniorFactor  = 1.3
	chronicFactor = 1.2
)

var intensityFactors = map[Intensity]float64{
	IntensityNone:   1.0,
	IntensityMild:   0.8,
	IntensitySevere: 1.4,
}

// ParseIntensity normaliza la intensidad; cualquier valor desconocido es none.
func ParseIntensity(s string) Intensity {
	i := Intensity(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := intensityFactors[i]; ok {
		return i
	}
	return IntensityNone
}

// Adjust aplica los modificadores de contexto a la severidad base
// y redondea a 2 decimales.
func Adjust(base float64, age int, chronic bool, intensity Intensity) float64 {
	s := base

	if age > seniorAgeAbove {
		s *= seniorFactor
	}
	if chronic {
		s *= chronicFactor
	}
	if f, ok := intensityFactors[intensity]; ok {
		s *= f
	}

	return math.Round(s*100) / 100
}
