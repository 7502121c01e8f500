// Package format turns a decoded API response into the two display strings.
package format

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Asad-28/weather-app/internal/modules/weather/types"
	"github.com/Asad-28/weather-app/internal/openweather"
)

const (
	kelvinOffset = 273.15
	clockLayout  = "03:04:05 PM"
)

// sunOffset is subtracted from every sunrise/sunset timestamp. It is a fixed
// six hours and ignores the city's real timezone.
const sunOffset = 6 * time.Hour

var symbols = map[string]string{
	"Clear":        "☀️",
	"Clouds":       "☁️",
	"Rain":         "🌧️",
	"Thunderstorm": "⛈️",
	"Snow":         "❄️",
	"Mist":         "🌫️",
	"Smoke":        "🌫️",
	"Haze":         "🌫️",
	"Dust":         "🌫️",
	"Fog":          "🌫️",
}

// Symbol returns the pictograph for a condition, or "" for one not in the table.
func Symbol(condition string) string {
	return symbols[condition]
}

// Celsius converts Kelvin and truncates toward zero.
func Celsius(kelvin float64) int {
	return int(kelvin - kelvinOffset)
}

// ClockTime renders a Unix timestamp, shifted back by six hours, as hh:mm:ss AM/PM.
func ClockTime(epoch int64) string {
	return time.Unix(epoch, 0).UTC().Add(-sunOffset).Format(clockLayout)
}

// Wind prints a speed with the fewest digits that still round-trip.
func Wind(speed float64) string {
	return strconv.FormatFloat(speed, 'f', -1, 64)
}

func Reading(c *openweather.Current) types.Reading {
	return types.Reading{
		Condition: c.Condition,
		Temp:      Celsius(c.Temp),
		TempMin:   Celsius(c.TempMin),
		TempMax:   Celsius(c.TempMax),
		Pressure:  int(c.Pressure),
		Humidity:  int(c.Humidity),
		Wind:      c.WindSpeed,
		Sunrise:   ClockTime(c.Sunrise),
		Sunset:    ClockTime(c.Sunset),
	}
}

// Summary is the large label: symbol, condition and temperature.
// The separating space stays even when the symbol is empty.
func Summary(r types.Reading) string {
	return fmt.Sprintf("%s %s\n%d°C", Symbol(r.Condition), r.Condition, r.Temp)
}

// Details is the small label. It starts with a newline.
func Details(r types.Reading) string {
	return fmt.Sprintf("\nMin Temp: %d°C\nMax Temp: %d°C\nPressure: %d\nHumidity: %d\nWind Speed: %s\nSunrise: %s\nSunset: %s",
		r.TempMin, r.TempMax, r.Pressure, r.Humidity, Wind(r.Wind), r.Sunrise, r.Sunset)
}
