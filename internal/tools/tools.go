// Package tools declares the closed set of operations the assistant can call,
// their parameter schemas and the text each one renders.
package tools

import (
	"context"
	"errors"
	"fmt"

	"concierge/internal/domain"
)

type Kind string

const (
	SearchHotels       Kind = "search_hotels"
	BookHotel          Kind = "book_hotel"
	GetHotel           Kind = "get_hotel"
	GetBooking         Kind = "get_booking"
	GetCurrentWeather  Kind = "get_current_weather"
	GetWeatherForecast Kind = "get_weather_forecast"
	GetWeatherAlerts   Kind = "get_weather_alerts"
)

var kinds = []Kind{
	SearchHotels, BookHotel, GetHotel, GetBooking,
	GetCurrentWeather, GetWeatherForecast, GetWeatherAlerts,
}

var ErrUnknownKind = errors.New("unknown tool")

// Kinds returns every supported tool in listing order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

func ParseKind(name string) (Kind, error) {
	for _, k := range kinds {
		if string(k) == name {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

func (k Kind) String() string { return string(k) }

// Backend is the set of domain operations the tools front.
type Backend interface {
	SearchHotels(ctx context.Context, req domain.SearchRequest) (domain.SearchResult, error)
	BookHotel(ctx context.Context, req domain.BookRequest) (domain.Booking, error)
	GetBooking(ctx context.Context, id string) (domain.Booking, error)
	FindHotel(ctx context.Context, name string) (domain.Hotel, error)
	CurrentWeather(ctx context.Context, location string) (domain.WeatherSnapshot, error)
	WeatherForecast(ctx context.Context, location string, days int) (domain.Forecast, error)
	WeatherAlerts(ctx context.Context, location string) (domain.AlertReport, error)
}
