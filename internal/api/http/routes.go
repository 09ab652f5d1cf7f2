package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/citywatch/weatherstation/internal/store"
	"github.com/citywatch/weatherstation/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the dashboard feed handlers into the Fiber app. The
// feed serves whatever the polling loop has put into the store; it performs
// no fetching of its own.
func RegisterRoutes(app *fiber.App, st weather.Store) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		city, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		reading, err := st.GetLatest(city)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather data for requested city")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
		}

		return c.JSON(reading)
	})

	v1.Get("/weather/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		readings, err := st.GetRange(req.City, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather history")
		}

		return c.JSON(fiber.Map{
			"city":     req.City,
			"from":     req.From,
			"to":       req.To,
			"readings": readings,
		})
	})

	// Temperature series feeding the chart: everything currently retained
	// for the city, oldest first.
	v1.Get("/weather/chart", func(c *fiber.Ctx) error {
		city, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		readings, err := st.GetRange(city, time.Time{}, time.Now().UTC())
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather data for requested city")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch chart data")
		}

		points := make([]weather.TempPoint, 0, len(readings))
		for _, r := range readings {
			points = append(points, weather.TempPoint{
				Timestamp:   r.Timestamp,
				Temperature: r.Temperature,
			})
		}

		return c.JSON(fiber.Map{
			"city":   city,
			"points": points,
		})
	})
}

// cityQuery holds the query parameter identifying a city.
type cityQuery struct {
	City string `validate:"required"`
}

func parseCityQuery(c *fiber.Ctx) (string, error) {
	q := cityQuery{City: c.Query("city")}
	if err := validate.Struct(q); err != nil {
		return "", err
	}
	return q.City, nil
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	City string    `validate:"required"`
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	city, err := parseCityQuery(c)
	if err != nil {
		return err
	}
	h.City = city

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
