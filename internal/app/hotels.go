package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"concierge/internal/domain"
)

// availabilityFailRate is the share of matching hotels hidden from a search at random.
const availabilityFailRate = 0.1

const secondsPerDay = 24 * 60 * 60

type HotelService struct {
	inventory domain.HotelInventory
	bookings  domain.BookingStore
	rnd       domain.Rand
	clock     domain.Clock
	newID     func() string
}

func NewHotelService(inv domain.HotelInventory, bookings domain.BookingStore, rnd domain.Rand, clock domain.Clock) *HotelService {
	return &HotelService{inventory: inv, bookings: bookings, rnd: rnd, clock: clock, newID: bookingID}
}

// bookingID is the first 8 hex digits of a random UUID, upper-cased.
func bookingID() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

// stay parses the dates and returns the number of nights. Both dates are UTC midnights,
// so whole days are counted from Unix seconds; a Duration would overflow past ~292 years.
func stay(checkIn, checkOut string) (int, error) {
	in, err := time.Parse(domain.DateLayout, checkIn)
	if err != nil {
		return 0, domain.Invalid("Invalid date format. Use YYYY-MM-DD: " + err.Error())
	}
	out, err := time.Parse(domain.DateLayout, checkOut)
	if err != nil {
		return 0, domain.Invalid("Invalid date format. Use YYYY-MM-DD: " + err.Error())
	}
	if !out.After(in) {
		return 0, domain.Invalid("Check-out date must be after check-in date")
	}
	return int((out.Unix() - in.Unix()) / secondsPerDay), nil
}

func (s *HotelService) Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResult, error) {
	nights, err := stay(req.CheckIn, req.CheckOut)
	if err != nil {
		return domain.SearchResult{}, err
	}

	all, err := s.inventory.All(ctx)
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("search failed: %w", err)
	}

	loc := strings.ToLower(req.Location)
	offers := make([]domain.HotelOffer, 0, len(all))
	for _, h := range all {
		if !strings.Contains(strings.ToLower(h.Location), loc) {
			continue
		}
		// the random roll is drawn only for hotels that have the rooms
		if h.AvailableRooms < req.Guests || s.rnd.Float64() <= availabilityFailRate {
			continue
		}
		offers = append(offers, domain.HotelOffer{
			Hotel:          h,
			TotalPrice:     h.PricePerNight * float64(nights),
			Nights:         nights,
			PriceBreakdown: fmt.Sprintf("$%.2f/night x %d nights", h.PricePerNight, nights),
		})
	}

	log.Debug().
		Str("location", req.Location).
		Int("guests", req.Guests).
		Int("nights", nights).
		Int("found", len(offers)).
		Msg("hotel search")

	return domain.SearchResult{
		Location:    req.Location,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		Guests:      req.Guests,
		Nights:      nights,
		HotelsFound: len(offers),
		Hotels:      offers,
	}, nil
}

func (s *HotelService) Book(ctx context.Context, req domain.BookRequest) (domain.Booking, error) {
	// unknown hotel wins over bad dates
	if _, err := s.inventory.Get(ctx, req.HotelID); err != nil {
		return domain.Booking{}, err
	}
	nights, err := stay(req.CheckIn, req.CheckOut)
	if err != nil {
		return domain.Booking{}, err
	}

	h, err := s.inventory.Reserve(ctx, req.HotelID, req.Guests)
	if err != nil {
		return domain.Booking{}, err
	}

	now := s.clock.Now()
	b := domain.Booking{
		BookingID:     s.newID(),
		HotelID:       h.ID,
		HotelName:     h.Name,
		HotelLocation: h.Location,
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		Nights:        nights,
		Guests:        req.Guests,
		GuestName:     req.GuestName,
		GuestEmail:    req.GuestEmail,
		TotalPrice:    h.PricePerNight * float64(nights),
		PricePerNight: h.PricePerNight,
		BookingDate:   now.Format(domain.TimestampLayout),
		CreatedAt:     now,
		Status:        domain.BookingStatusConfirmed,
	}
	if err := s.bookings.Save(ctx, b); err != nil {
		return domain.Booking{}, fmt.Errorf("save booking: %w", err)
	}

	log.Info().
		Str("booking_id", b.BookingID).
		Str("hotel_id", h.ID).
		Int("rooms_left", h.AvailableRooms).
		Msg("booking confirmed")
	return b, nil
}

func (s *HotelService) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	return s.bookings.Get(ctx, id)
}

// FindHotel returns the first hotel whose name contains name, case-insensitively.
func (s *HotelService) FindHotel(ctx context.Context, name string) (domain.Hotel, error) {
	all, err := s.inventory.All(ctx)
	if err != nil {
		return domain.Hotel{}, err
	}
	q := strings.ToLower(name)
	for _, h := range all {
		if strings.Contains(strings.ToLower(h.Name), q) {
			return h, nil
		}
	}
	return domain.Hotel{}, domain.NotFound("Hotel not found")
}
