package memory

import "concierge/internal/domain"

// SeedHotels returns a fresh copy of the demo hotel list.
// Two entries share the id hotel_005; lookups by id resolve to the first one.
func SeedHotels() []domain.Hotel {
	return []domain.Hotel{
		{
			ID: "hotel_001", Name: "Grand Plaza Hotel", Location: "New York",
			PricePerNight: 299.99, Rating: 4.5,
			Amenities:      []string{"WiFi", "Pool", "Gym", "Room Service"},
			AvailableRooms: 15,
		},
		{
			ID: "hotel_002", Name: "Sunset Beach Resort", Location: "Miami",
			PricePerNight: 199.99, Rating: 4.2,
			Amenities:      []string{"Beach Access", "WiFi", "Pool", "Spa"},
			AvailableRooms: 8,
		},
		{
			ID: "hotel_003", Name: "Mountain View Lodge", Location: "Denver",
			PricePerNight: 149.99, Rating: 4.0,
			Amenities:      []string{"WiFi", "Fireplace", "Hiking Trails"},
			AvailableRooms: 12,
		},
		{
			ID: "hotel_004", Name: "City Center Inn", Location: "Chicago",
			PricePerNight: 179.99, Rating: 3.8,
			Amenities:      []string{"WiFi", "Business Center", "Parking"},
			AvailableRooms: 20,
		},
		{
			ID: "hotel_005", Name: "Luxury Suites", Location: "Los Angeles",
			PricePerNight: 399.99, Rating: 4.8,
			Amenities:      []string{"WiFi", "Pool", "Spa", "Concierge", "Valet"},
			AvailableRooms: 5,
		},
		{
			ID: "hotel_005", Name: "Marriot Hotel", Location: "New York",
			PricePerNight: 399.99, Rating: 4.7,
			Amenities:      []string{"WiFi", "Gym", "Room Service"},
			AvailableRooms: 15,
		},
	}
}
