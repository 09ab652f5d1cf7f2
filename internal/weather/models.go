package weather

import (
	"math"
	"time"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown      Condition = "unknown"
	ConditionClear        Condition = "clear"
	ConditionPartlyCloudy Condition = "partly-cloudy"
	ConditionOvercast     Condition = "overcast"
	ConditionRain         Condition = "rain"
	ConditionSnow         Condition = "snow"
	ConditionFog          Condition = "fog"
	ConditionThunderstorm Condition = "thunderstorm"
)

// Reading is one normalized weather observation for one city at one instant.
// Treated as immutable once constructed; the cache and the history store hand
// out copies by value.
type Reading struct {
	City        string    `json:"city"`
	Temperature float64   `json:"temperature"` // °C, rounded to 1 decimal
	Humidity    float64   `json:"humidity"`    // percent, rounded to 1 decimal
	Wind        float64   `json:"wind"`        // km/h, rounded to 1 decimal
	Condition   Condition `json:"condition"`
	Timestamp   time.Time `json:"timestamp"` // always UTC; fetch/generation time, not the provider's
}

// TempPoint is one point of a temperature-over-time series.
type TempPoint struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
}

// Round1 rounds to one decimal place, the precision every reading field is
// normalized to.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
