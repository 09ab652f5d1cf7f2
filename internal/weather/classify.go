package weather

import (
	"strings"

	"github.com/citywatch/weatherstation/internal/common"
)

// ClassifyConditionText maps a provider's free-text condition description to a
// normalized Condition. Order matters: categories overlap in keywords, so the
// first match wins. Returns ConditionUnknown when no keyword matches; callers
// should log the unmatched text.
func ClassifyConditionText(text string) Condition {
	s := strings.ToLower(text)
	switch {
	case strings.Contains(s, "thunder"):
		return ConditionThunderstorm
	case common.HasAny(s, "rain", "drizzle", "shower"):
		return ConditionRain
	case common.HasAny(s, "snow", "ice", "sleet"):
		return ConditionSnow
	case common.HasAny(s, "fog", "mist", "haze"):
		return ConditionFog
	case strings.Contains(s, "clear") && !strings.Contains(s, "cloud"):
		return ConditionClear
	case common.HasAny(s, "partly cloudy", "scattered clouds"):
		return ConditionPartlyCloudy
	case common.HasAny(s, "cloud", "overcast"):
		return ConditionOvercast
	default:
		return ConditionUnknown
	}
}

// ClassifyConditionNumeric derives a condition from temperature and humidity
// alone. Used for simulated readings where no provider text exists; it only
// ever yields clear, rain or partly-cloudy.
func ClassifyConditionNumeric(tempC, humidityPct float64) Condition {
	switch {
	case tempC > 30 && humidityPct < 50:
		return ConditionClear
	case humidityPct > 80:
		return ConditionRain
	default:
		return ConditionPartlyCloudy
	}
}
