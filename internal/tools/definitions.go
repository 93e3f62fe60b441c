package tools

// Definition is the listing entry for one tool: name, description and a JSON schema
// of its arguments.
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

type prop struct {
	typ, desc string
	min, max  int
	def       any
}

func schema(required []string, props map[string]prop) map[string]any {
	ps := make(map[string]any, len(props))
	for name, p := range props {
		m := map[string]any{"type": p.typ}
		if p.desc != "" {
			m["description"] = p.desc
		}
		if p.min != 0 {
			m["minimum"] = p.min
		}
		if p.max != 0 {
			m["maximum"] = p.max
		}
		if p.def != nil {
			m["default"] = p.def
		}
		ps[name] = m
	}
	if required == nil {
		required = []string{}
	}
	return map[string]any{"type": "object", "properties": ps, "required": required}
}

var (
	str   = prop{typ: "string"}
	date  = prop{typ: "string", desc: "Date YYYY-MM-DD"}
	place = prop{typ: "string", desc: "city or location"}
)

func describe(p prop, desc string) prop { p.desc = desc; return p }

// Describe returns the definition of k.
func Describe(k Kind) Definition {
	switch k {
	case SearchHotels:
		return Definition{
			Name:        string(k),
			Description: "Search for available hotels in a location for specific dates",
			InputSchema: schema([]string{"location", "check_in", "check_out", "guests"}, map[string]prop{
				"location":  place,
				"check_in":  describe(date, "Check-in date YYYY-MM-DD"),
				"check_out": describe(date, "Check-out date YYYY-MM-DD"),
				"guests":    {typ: "integer", desc: "number of guests", min: 1},
			}),
		}
	case BookHotel:
		return Definition{
			Name:        string(k),
			Description: "Book a hotel room",
			InputSchema: schema([]string{"hotel_id", "check_in", "check_out", "guests", "guest_name", "guest_email"}, map[string]prop{
				"hotel_id":    str,
				"check_in":    describe(date, "Check-in date YYYY-MM-DD"),
				"check_out":   describe(date, "Check-out date YYYY-MM-DD"),
				"guests":      {typ: "integer", min: 1},
				"guest_name":  str,
				"guest_email": str,
			}),
		}
	case GetHotel:
		return Definition{
			Name:        string(k),
			Description: "Look up a hotel by name",
			InputSchema: schema([]string{"name"}, map[string]prop{
				"name": describe(str, "hotel name or part of it"),
			}),
		}
	case GetBooking:
		return Definition{
			Name:        string(k),
			Description: "Retrieve booking by ID",
			InputSchema: schema([]string{"booking_id"}, map[string]prop{"booking_id": str}),
		}
	case GetCurrentWeather:
		return Definition{
			Name:        string(k),
			Description: "Get current weather for a location",
			InputSchema: schema([]string{"location"}, map[string]prop{"location": place}),
		}
	case GetWeatherForecast:
		return Definition{
			Name:        string(k),
			Description: "Weather forecast for a location for given number of days. Defaults to 5 days.",
			InputSchema: schema([]string{"location"}, map[string]prop{
				"location": place,
				"days":     {typ: "integer", desc: "Number of days of forecast needed", min: 1, max: 7, def: DefaultForecastDays},
			}),
		}
	case GetWeatherAlerts:
		return Definition{
			Name:        string(k),
			Description: "Weather alerts for a location",
			InputSchema: schema([]string{"location"}, map[string]prop{"location": place}),
		}
	}
	return Definition{Name: string(k)}
}

// Definitions lists every tool.
func Definitions() []Definition {
	out := make([]Definition, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, Describe(k))
	}
	return out
}

// Required names the parameters k cannot run without.
func Required(k Kind) []string {
	req, _ := Describe(k).InputSchema["required"].([]string)
	return req
}
