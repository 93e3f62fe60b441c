package domain

import "time"

// DateLayout is the only accepted stay date format.
const DateLayout = "2006-01-02"

// TimestampLayout formats booking and weather timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

type Hotel struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Location       string   `json:"location"`
	PricePerNight  float64  `json:"price_per_night"`
	Rating         float64  `json:"rating"`
	Amenities      []string `json:"amenities"`
	AvailableRooms int      `json:"available_rooms"`
}

// HotelOffer is a search hit priced for the requested stay.
type HotelOffer struct {
	Hotel
	TotalPrice     float64 `json:"total_price"`
	Nights         int     `json:"nights"`
	PriceBreakdown string  `json:"price_breakdown"`
}

type SearchRequest struct {
	Location string `json:"location"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Guests   int    `json:"guests"`
}

type SearchResult struct {
	Location    string       `json:"location"`
	CheckIn     string       `json:"check_in"`
	CheckOut    string       `json:"check_out"`
	Guests      int          `json:"guests"`
	Nights      int          `json:"nights"`
	HotelsFound int          `json:"hotels_found"`
	Hotels      []HotelOffer `json:"hotels"`
}

type BookRequest struct {
	HotelID    string `json:"hotel_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Guests     int    `json:"guests"`
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
}

// BookingStatusConfirmed is the only status a booking ever carries.
const BookingStatusConfirmed = "confirmed"

type Booking struct {
	BookingID     string    `json:"booking_id"`
	HotelID       string    `json:"hotel_id"`
	HotelName     string    `json:"hotel_name"`
	HotelLocation string    `json:"hotel_location"`
	CheckIn       string    `json:"check_in"`
	CheckOut      string    `json:"check_out"`
	Nights        int       `json:"nights"`
	Guests        int       `json:"guests"`
	GuestName     string    `json:"guest_name"`
	GuestEmail    string    `json:"guest_email"`
	TotalPrice    float64   `json:"total_price"`
	PricePerNight float64   `json:"price_per_night"`
	BookingDate   string    `json:"booking_date"`
	CreatedAt     time.Time `json:"-"`
	Status        string    `json:"status"`
}
