package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/citywatch/weatherstation/internal/weather"
)

// Visual Crossing reports wind speed in mph; readings are normalized to km/h.
const mphToKmh = 1.60934

// VisualCrossingProvider implements the weather.Provider interface for the
// Visual Crossing timeline API.
type VisualCrossingProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewVisualCrossingProvider(client *http.Client, apiKey string) *VisualCrossingProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "visualcrossing",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		IsSuccessful: func(err error) bool {
			// Rate limiting, auth rejections and malformed bodies are
			// application-level outcomes, not upstream outages; only
			// transport failures may trip the breaker.
			return err == nil || !errors.Is(err, weather.ErrTransport)
		},
	})

	return &VisualCrossingProvider{
		name:    "visualcrossing",
		apiKey:  apiKey,
		baseURL: "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline",
		client:  client,
		circuit: cb,
	}
}

func (p *VisualCrossingProvider) Name() string {
	return p.name
}

// Fetch retrieves current conditions for city and normalizes them into a
// Reading. The reading's timestamp is the fetch time, not the provider's own
// observation time.
func (p *VisualCrossingProvider) Fetch(ctx context.Context, city string) (weather.Reading, error) {
	if p.apiKey == "" {
		return weather.Reading{}, fmt.Errorf("%w: visualcrossing api key is not configured", weather.ErrAuthentication)
	}

	values := url.Values{}
	values.Set("unitGroup", "metric")
	values.Set("key", p.apiKey)
	values.Set("contentType", "json")

	u := fmt.Sprintf("%s/%s?%s", p.baseURL, url.PathEscape(city), values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return weather.Reading{}, err
	}

	resp, err := p.do(req)
	if err != nil {
		return weather.Reading{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		CurrentConditions *struct {
			Temp       *float64 `json:"temp"`
			Humidity   float64  `json:"humidity"`
			Windspeed  float64  `json:"windspeed"` // mph
			Conditions string   `json:"conditions"`
		} `json:"currentConditions"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Reading{}, fmt.Errorf("%w: %v", weather.ErrMalformedResponse, err)
	}
	cur := payload.CurrentConditions
	if cur == nil || cur.Temp == nil {
		return weather.Reading{}, fmt.Errorf("%w: missing currentConditions", weather.ErrMalformedResponse)
	}

	cond := weather.ClassifyConditionText(cur.Conditions)
	if cond == weather.ConditionUnknown {
		log.Printf("visualcrossing: unmatched condition text %q for %s", cur.Conditions, city)
	}

	return weather.Reading{
		City:        city,
		Temperature: weather.Round1(*cur.Temp),
		Humidity:    weather.Round1(cur.Humidity),
		Wind:        weather.Round1(cur.Windspeed * mphToKmh),
		Condition:   cond,
		Timestamp:   time.Now().UTC(),
	}, nil
}

// do executes the request through the circuit breaker and maps HTTP outcomes
// onto the weather error taxonomy.
func (p *VisualCrossingProvider) do(req *http.Request) (*http.Response, error) {
	result, err := p.circuit.Execute(func() (interface{}, error) {
		resp, execErr := p.client.Do(req)
		if execErr != nil {
			return nil, fmt.Errorf("%w: %v", weather.ErrTransport, execErr)
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			resp.Body.Close()
			return nil, weather.ErrRateLimited
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			resp.Body.Close()
			return nil, weather.ErrAuthentication
		case resp.StatusCode >= 500:
			resp.Body.Close()
			return nil, fmt.Errorf("%w: status %d", weather.ErrTransport, resp.StatusCode)
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			resp.Body.Close()
			return nil, fmt.Errorf("%w: unexpected status %d", weather.ErrMalformedResponse, resp.StatusCode)
		}

		return resp, nil
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: circuit breaker open", weather.ErrTransport)
		}
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected result type from circuit breaker", weather.ErrTransport)
	}
	return resp, nil
}
