package tools

import (
	"github.com/mitchellh/mapstructure"

	"concierge/internal/domain"
)

// DefaultForecastDays applies when a forecast call leaves days out.
const DefaultForecastDays = 5

type SearchHotelsParams struct {
	Location string `mapstructure:"location"`
	CheckIn  string `mapstructure:"check_in"`
	CheckOut string `mapstructure:"check_out"`
	Guests   int    `mapstructure:"guests"`
}

type BookHotelParams struct {
	HotelID    string `mapstructure:"hotel_id"`
	CheckIn    string `mapstructure:"check_in"`
	CheckOut   string `mapstructure:"check_out"`
	Guests     int    `mapstructure:"guests"`
	GuestName  string `mapstructure:"guest_name"`
	GuestEmail string `mapstructure:"guest_email"`
}

type GetHotelParams struct {
	Name string `mapstructure:"name"`
}

type GetBookingParams struct {
	BookingID string `mapstructure:"booking_id"`
}

type LocationParams struct {
	Location string `mapstructure:"location"`
}

type ForecastParams struct {
	Location string `mapstructure:"location"`
	Days     int    `mapstructure:"days"`
}

// decode fills out from the loose argument map. Inputs are weakly typed so "2", 2 and
// 2.0 all decode to an int field; unknown keys are ignored.
func decode(raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return domain.Invalid("Invalid parameters: " + err.Error())
	}
	return nil
}
