package domain

type WeatherSnapshot struct {
	Location        string `json:"location"`
	Timestamp       string `json:"timestamp"`
	TemperatureC    int    `json:"temperature_celsius"`
	TemperatureF    int    `json:"temperature_fahrenheit"`
	Condition       string `json:"condition"`
	Humidity        int    `json:"humidity"`
	WindSpeedKmh    int    `json:"wind_speed_kmh"`
	VisibilityKm    int    `json:"visibility_km"`
	UVIndex         int    `json:"uv_index"`
	PrecipitationMM int    `json:"precipitation_mm"`
}

type ForecastDay struct {
	Date                string `json:"date"`
	DayOfWeek           string `json:"day_of_week"`
	HighC               int    `json:"temperature_high_celsius"`
	LowC                int    `json:"temperature_low_celsius"`
	HighF               int    `json:"temperature_high_fahrenheit"`
	LowF                int    `json:"temperature_low_fahrenheit"`
	Condition           string `json:"condition"`
	Humidity            int    `json:"humidity"`
	WindSpeedKmh        int    `json:"wind_speed_kmh"`
	PrecipitationChance int    `json:"precipitation_chance"`
	PrecipitationMM     int    `json:"precipitation_mm"`
}

type Forecast struct {
	Location    string        `json:"location"`
	Days        int           `json:"forecast_days"`
	GeneratedAt string        `json:"generated_at"`
	Entries     []ForecastDay `json:"forecast"`
}

type Alert struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	IssuedAt    string `json:"issued_at"`
	ExpiresAt   string `json:"expires_at"`
	Description string `json:"description"`
}

type AlertReport struct {
	Location   string  `json:"location"`
	AlertCount int     `json:"alert_count"`
	Alerts     []Alert `json:"alerts"`
}
