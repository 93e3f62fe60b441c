package tools

import (
	"context"
	"fmt"

	"concierge/internal/domain"
)

// Invoke decodes params for k, runs it against b and renders the result.
// Service errors are returned untouched so callers can present them.
func Invoke(ctx context.Context, b Backend, k Kind, params map[string]any) (string, error) {
	switch k {
	case SearchHotels:
		var p SearchHotelsParams
		if err := decode(params, &p); err != nil {
			return "", err
		}
		res, err := b.SearchHotels(ctx, domain.SearchRequest{
			Location: p.Location, CheckIn: p.CheckIn, CheckOut: p.CheckOut, Guests: p.Guests,
		})
		if err != nil {
			return "", err
		}
		return FormatSearch(res), nil

	case BookHotel:
		var p BookHotelParams
		if err := decode(params, &p); err != nil {
			return "", err
		}
		bk, err := b.BookHotel(ctx, domain.BookRequest{
			HotelID: p.HotelID, CheckIn: p.CheckIn, CheckOut: p.CheckOut, Guests: p.Guests,
			GuestName: p.GuestName, GuestEmail: p.GuestEmail,
		})
		if err != nil {
			return "", err
		}
		return FormatConfirmation(bk), nil

	case GetHotel:
		var p GetHotelParams
		if err := decode(params, &p); err != nil {
			return "", err
		}
		h, err := b.FindHotel(ctx, p.Name)
		if err != nil {
			return "", err
		}
		return FormatHotel(h), nil

	case GetBooking:
		var p GetBookingParams
		if err := decode(params, &p); err != nil {
			return "", err
		}
		bk, err := b.GetBooking(ctx, p.BookingID)
		if err != nil {
			return "", err
		}
		return FormatBooking(bk), nil

	case GetCurrentWeather:
		var p LocationParams
		if err := decode(params, &p); err != nil {
			return "", err
		}
		w, err := b.CurrentWeather(ctx, p.Location)
		if err != nil {
			return "", err
		}
		return FormatCurrent(w), nil

	case GetWeatherForecast:
		p := ForecastParams{Days: DefaultForecastDays}
		if err := decode(params, &p); err != nil {
			return "", err
		}
		f, err := b.WeatherForecast(ctx, p.Location, p.Days)
		if err != nil {
			return "", err
		}
		return FormatForecast(f), nil

	case GetWeatherAlerts:
		var p LocationParams
		if err := decode(params, &p); err != nil {
			return "", err
		}
		r, err := b.WeatherAlerts(ctx, p.Location)
		if err != nil {
			return "", err
		}
		return FormatAlerts(r), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
}
