package app

import (
	"context"
	"strings"
	"time"

	"concierge/internal/domain"
)

var conditions = []string{
	"sunny", "partly cloudy", "cloudy", "light rain",
	"heavy rain", "thunderstorm", "snow", "foggy",
}

var alertTypes = []string{
	"Severe Thunderstorm Warning",
	"Heavy Rain Advisory",
	"High Wind Warning",
	"Heat Advisory",
	"Winter Weather Advisory",
}

var severities = []string{"Minor", "Moderate", "Severe"}

type climate struct{ base, variation float64 }

// cities is ordered so the first substring match is stable.
var cities = []struct {
	name string
	climate
}{
	{"new york", climate{15, 15}},
	{"miami", climate{25, 8}},
	{"denver", climate{10, 20}},
	{"chicago", climate{12, 18}},
	{"los angeles", climate{22, 10}},
	{"seattle", climate{13, 12}},
	{"phoenix", climate{30, 15}},
	{"boston", climate{14, 16}},
	{"san francisco", climate{18, 8}},
	{"atlanta", climate{20, 12}},
}

var defaultClimate = climate{20, 15}

const (
	alertProbability = 0.2
	MinForecastDays  = 1
	MaxForecastDays  = 7
)

type WeatherService struct {
	rnd   domain.Rand
	clock domain.Clock
}

func NewWeatherService(rnd domain.Rand, clock domain.Clock) *WeatherService {
	return &WeatherService{rnd: rnd, clock: clock}
}

func climateFor(location string) climate {
	loc := strings.ToLower(location)
	for _, c := range cities {
		if strings.Contains(loc, c.name) {
			return c.climate
		}
	}
	return defaultClimate
}

// seasonModifier shifts the base temperature by meteorological season.
func seasonModifier(month time.Month) float64 {
	switch month {
	case time.December, time.January, time.February:
		return -8
	case time.March, time.April, time.May:
		return 2
	case time.June, time.July, time.August:
		return 8
	default:
		return -2
	}
}

func (s *WeatherService) temperature(location string, modifier float64) int {
	c := climateFor(location)
	return int(c.base + modifier + uniform(s.rnd, -c.variation, c.variation))
}

func fahrenheit(c int) int { return int(float64(c)*9/5 + 32) }

func isRain(condition string) bool { return strings.Contains(condition, "rain") }

func (s *WeatherService) Current(ctx context.Context, location string) (domain.WeatherSnapshot, error) {
	now := s.clock.Now()
	w := domain.WeatherSnapshot{
		Location:     location,
		Timestamp:    now.Format(domain.TimestampLayout),
		TemperatureC: s.temperature(location, seasonModifier(now.Month())),
		Condition:    pick(s.rnd, conditions),
		Humidity:     between(s.rnd, 30, 90),
		WindSpeedKmh: between(s.rnd, 0, 40),
		VisibilityKm: between(s.rnd, 5, 20),
		UVIndex:      between(s.rnd, 1, 11),
	}
	w.TemperatureF = fahrenheit(w.TemperatureC)
	switch {
	case isRain(w.Condition):
		w.PrecipitationMM = between(s.rnd, 1, 15)
	case w.Condition == "snow":
		w.PrecipitationMM = between(s.rnd, 2, 25)
	}
	return w, nil
}

func (s *WeatherService) Forecast(ctx context.Context, location string, days int) (domain.Forecast, error) {
	if days < MinForecastDays || days > MaxForecastDays {
		return domain.Forecast{}, domain.Invalid("Forecast days must be between 1 and 7")
	}
	now := s.clock.Now()
	modifier := seasonModifier(now.Month())

	entries := make([]domain.ForecastDay, 0, days)
	for d := 0; d < days; d++ {
		date := now.AddDate(0, 0, d)
		daily := uniform(s.rnd, -3, 3)

		e := domain.ForecastDay{
			Date:                date.Format(domain.DateLayout),
			DayOfWeek:           date.Weekday().String(),
			HighC:               s.temperature(location, modifier+daily+3),
			LowC:                s.temperature(location, modifier+daily-3),
			Condition:           pick(s.rnd, conditions),
			Humidity:            between(s.rnd, 30, 90),
			WindSpeedKmh:        between(s.rnd, 0, 35),
			PrecipitationChance: between(s.rnd, 0, 100),
		}
		e.HighF = fahrenheit(e.HighC)
		e.LowF = fahrenheit(e.LowC)
		if e.PrecipitationChance > 60 {
			switch {
			case isRain(e.Condition):
				e.PrecipitationMM = between(s.rnd, 1, 12)
			case e.Condition == "snow":
				e.PrecipitationMM = between(s.rnd, 2, 20)
			}
		}
		entries = append(entries, e)
	}

	return domain.Forecast{
		Location:    location,
		Days:        days,
		GeneratedAt: now.Format(domain.TimestampLayout),
		Entries:     entries,
	}, nil
}

func (s *WeatherService) Alerts(ctx context.Context, location string) (domain.AlertReport, error) {
	report := domain.AlertReport{Location: location, Alerts: []domain.Alert{}}
	if s.rnd.Float64() < alertProbability {
		now := s.clock.Now()
		report.Alerts = append(report.Alerts, domain.Alert{
			Type:        pick(s.rnd, alertTypes),
			Severity:    pick(s.rnd, severities),
			IssuedAt:    now.Format(domain.TimestampLayout),
			ExpiresAt:   now.Add(time.Duration(between(s.rnd, 6, 48)) * time.Hour).Format(domain.TimestampLayout),
			Description: "Weather advisory for " + location + " area. Please take appropriate precautions.",
		})
	}
	report.AlertCount = len(report.Alerts)
	return report, nil
}
