package models

// WeatherSnapshot is the fully-populated weather view for a city. Callers
// never see a partial snapshot; a failed fetch substitutes a complete
// synthetic one.
type WeatherSnapshot struct {
	Temp      int    `json:"temp"` // °C
	Condition string `json:"condition"`
	Humidity  int    `json:"humidity"`  // 0-100
	WindSpeed int    `json:"windSpeed"` // km/h
	Icon      string `json:"icon"`
	City      string `json:"city"`
}
