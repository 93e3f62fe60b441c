package app

import (
	"context"

	"concierge/internal/domain"
)

// Services bundles the hotel and weather services behind the operations the tools expose.
type Services struct {
	Hotels  *HotelService
	Weather *WeatherService
}

func NewServices(h *HotelService, w *WeatherService) *Services {
	return &Services{Hotels: h, Weather: w}
}

func (s *Services) SearchHotels(ctx context.Context, req domain.SearchRequest) (domain.SearchResult, error) {
	return s.Hotels.Search(ctx, req)
}

func (s *Services) BookHotel(ctx context.Context, req domain.BookRequest) (domain.Booking, error) {
	return s.Hotels.Book(ctx, req)
}

func (s *Services) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	return s.Hotels.GetBooking(ctx, id)
}

func (s *Services) FindHotel(ctx context.Context, name string) (domain.Hotel, error) {
	return s.Hotels.FindHotel(ctx, name)
}

func (s *Services) CurrentWeather(ctx context.Context, location string) (domain.WeatherSnapshot, error) {
	return s.Weather.Current(ctx, location)
}

func (s *Services) WeatherForecast(ctx context.Context, location string, days int) (domain.Forecast, error) {
	return s.Weather.Forecast(ctx, location, days)
}

func (s *Services) WeatherAlerts(ctx context.Context, location string) (domain.AlertReport, error) {
	return s.Weather.Alerts(ctx, location)
}
