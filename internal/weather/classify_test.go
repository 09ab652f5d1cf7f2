package weather

import "testing"

func TestClassifyConditionText(t *testing.T) {
	cases := []struct {
		text string
		want Condition
	}{
		{"Thunderstorms likely", ConditionThunderstorm},
		{"Light rain showers", ConditionRain},
		{"Snow and ice", ConditionSnow},
		{"Fog patches", ConditionFog},
		{"Clear", ConditionClear},
		{"Partly cloudy", ConditionPartlyCloudy},
		{"Overcast", ConditionOvercast},
		{"Clouds increasing", ConditionOvercast},
		{"Sunny spells", ConditionUnknown},
		{"", ConditionUnknown},
	}

	for _, tc := range cases {
		if got := ClassifyConditionText(tc.text); got != tc.want {
			t.Errorf("ClassifyConditionText(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

// Priority order is load-bearing: categories overlap in keywords and the
// first match must win.
func TestClassifyConditionTextPriority(t *testing.T) {
	cases := []struct {
		text string
		want Condition
	}{
		// thunder outranks rain and cloud
		{"Thunderstorm with heavy rain and clouds", ConditionThunderstorm},
		// rain outranks partly-cloudy
		{"Partly cloudy with a chance of rain", ConditionRain},
		// snow outranks fog
		{"Snow with freezing fog", ConditionSnow},
		// fog outranks clear
		{"Clear with morning mist", ConditionFog},
		// "clear" only matches without "cloud" present
		{"Clearing clouds", ConditionOvercast},
		// partly-cloudy outranks the generic cloud bucket
		{"Scattered clouds", ConditionPartlyCloudy},
	}

	for _, tc := range cases {
		if got := ClassifyConditionText(tc.text); got != tc.want {
			t.Errorf("ClassifyConditionText(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestClassifyConditionNumeric(t *testing.T) {
	cases := []struct {
		temp, humidity float64
		want           Condition
	}{
		{32, 40, ConditionClear},
		{20, 85, ConditionRain},
		{20, 60, ConditionPartlyCloudy},
		// boundary values fall through to partly-cloudy
		{30, 40, ConditionPartlyCloudy},
		{32, 50, ConditionPartlyCloudy},
		{20, 80, ConditionPartlyCloudy},
	}

	for _, tc := range cases {
		if got := ClassifyConditionNumeric(tc.temp, tc.humidity); got != tc.want {
			t.Errorf("ClassifyConditionNumeric(%v, %v) = %q, want %q", tc.temp, tc.humidity, got, tc.want)
		}
	}
}
