package tools

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"concierge/internal/domain"
)

// titled upper-cases each word. A Caser keeps state, so one is built per call.
func titled(s string) string { return cases.Title(language.English).String(s) }

func money(v float64) string { return fmt.Sprintf("$%.2f", v) }

var severityMarks = map[string]string{"Minor": "🟡", "Moderate": "🟠", "Severe": "🔴"}

func FormatSearch(r domain.SearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d hotels in %s:\n\n", r.HotelsFound, r.Location)
	for _, h := range r.Hotels {
		fmt.Fprintf(&b, "🏨 **%s**\n", h.Name)
		fmt.Fprintf(&b, "   📍 %s\n", h.Location)
		fmt.Fprintf(&b, "   💰 %s/night (Total: %s for %d nights)\n", money(h.PricePerNight), money(h.TotalPrice), h.Nights)
		fmt.Fprintf(&b, "   ⭐ Rating: %.1f/5\n", h.Rating)
		fmt.Fprintf(&b, "   🛏️ Available rooms: %d\n", h.AvailableRooms)
		fmt.Fprintf(&b, "   🎯 Hotel ID: %s\n", h.ID)
		fmt.Fprintf(&b, "   ✨ Amenities: %s\n\n", strings.Join(h.Amenities, ", "))
	}
	return b.String()
}

func FormatHotel(h domain.Hotel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏨 **%s**\n\n", h.Name)
	fmt.Fprintf(&b, "🎯 **Hotel ID:** %s\n", h.ID)
	fmt.Fprintf(&b, "📍 **Location:** %s\n", h.Location)
	fmt.Fprintf(&b, "💰 **Price:** %s/night\n", money(h.PricePerNight))
	fmt.Fprintf(&b, "⭐ **Rating:** %.1f/5\n", h.Rating)
	fmt.Fprintf(&b, "🛏️ **Available rooms:** %d\n", h.AvailableRooms)
	fmt.Fprintf(&b, "✨ **Amenities:** %s\n", strings.Join(h.Amenities, ", "))
	return b.String()
}

func FormatConfirmation(bk domain.Booking) string {
	var b strings.Builder
	b.WriteString("🎉 **Booking Confirmed!**\n\n")
	fmt.Fprintf(&b, "📋 **Booking ID:** %s\n", bk.BookingID)
	fmt.Fprintf(&b, "🏨 **Hotel:** %s\n", bk.HotelName)
	fmt.Fprintf(&b, "📍 **Location:** %s\n", bk.HotelLocation)
	fmt.Fprintf(&b, "📅 **Check-in:** %s\n", bk.CheckIn)
	fmt.Fprintf(&b, "📅 **Check-out:** %s\n", bk.CheckOut)
	fmt.Fprintf(&b, "🌙 **Nights:** %d\n", bk.Nights)
	fmt.Fprintf(&b, "👥 **Guests:** %d\n", bk.Guests)
	fmt.Fprintf(&b, "👤 **Guest Name:** %s\n", bk.GuestName)
	fmt.Fprintf(&b, "📧 **Email:** %s\n", bk.GuestEmail)
	fmt.Fprintf(&b, "💰 **Total Price:** %s\n", money(bk.TotalPrice))
	return b.String()
}

func FormatBooking(bk domain.Booking) string {
	var b strings.Builder
	b.WriteString("📋 **Booking Details**\n\n")
	fmt.Fprintf(&b, "🆔 **Booking ID:** %s\n", bk.BookingID)
	fmt.Fprintf(&b, "🏨 **Hotel:** %s\n", bk.HotelName)
	fmt.Fprintf(&b, "📍 **Location:** %s\n", bk.HotelLocation)
	fmt.Fprintf(&b, "📅 **Check-in:** %s\n", bk.CheckIn)
	fmt.Fprintf(&b, "📅 **Check-out:** %s\n", bk.CheckOut)
	fmt.Fprintf(&b, "💰 **Total Price:** %s\n", money(bk.TotalPrice))
	return b.String()
}

func FormatCurrent(w domain.WeatherSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌤️ **Current Weather in %s**\n\n", w.Location)
	fmt.Fprintf(&b, "🌡️ **Temperature:** %d°C (%d°F)\n", w.TemperatureC, w.TemperatureF)
	fmt.Fprintf(&b, "☁️ **Condition:** %s\n", titled(w.Condition))
	fmt.Fprintf(&b, "💧 **Humidity:** %d%%\n", w.Humidity)
	fmt.Fprintf(&b, "💨 **Wind Speed:** %d km/h\n", w.WindSpeedKmh)
	if w.PrecipitationMM > 0 {
		fmt.Fprintf(&b, "🌧️ **Precipitation:** %d mm\n", w.PrecipitationMM)
	}
	return b.String()
}

func FormatForecast(f domain.Forecast) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📅 **%d-Day Weather Forecast for %s**\n\n", f.Days, f.Location)
	for _, d := range f.Entries {
		fmt.Fprintf(&b, "📆 **%s, %s**\n", d.DayOfWeek, d.Date)
		fmt.Fprintf(&b, "   🌡️ High: %d°C (%d°F)\n", d.HighC, d.HighF)
		fmt.Fprintf(&b, "   🌡️ Low: %d°C (%d°F)\n", d.LowC, d.LowF)
		fmt.Fprintf(&b, "   ☁️ Condition: %s\n", titled(d.Condition))
		fmt.Fprintf(&b, "   🌧️ Rain Chance: %d%%\n\n", d.PrecipitationChance)
	}
	return b.String()
}

func FormatAlerts(r domain.AlertReport) string {
	if r.AlertCount == 0 {
		return fmt.Sprintf("✅ **No Weather Alerts** for %s\n\nAll clear!", r.Location)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "⚠️ **Weather Alerts for %s** (%d active)\n\n", r.Location, r.AlertCount)
	for _, a := range r.Alerts {
		mark, ok := severityMarks[a.Severity]
		if !ok {
			mark = "⚠️"
		}
		fmt.Fprintf(&b, "%s **%s** (%s)\n", mark, a.Type, a.Severity)
		fmt.Fprintf(&b, "   📄 %s\n\n", a.Description)
	}
	return b.String()
}
