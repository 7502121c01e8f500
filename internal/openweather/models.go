package openweather

import "fmt"

// Current holds the fields of a current-weather response that the app shows.
// Temperatures are in Kelvin; sunrise and sunset are Unix seconds.
type Current struct {
	Condition string
	Temp      float64
	TempMin   float64
	TempMax   float64
	Pressure  float64
	Humidity  float64
	WindSpeed float64
	Sunrise   int64
	Sunset    int64
}

// currentPayload mirrors the wire shape. Pointers distinguish a missing key
// from a zero value.
type currentPayload struct {
	Weather []struct {
		Main *string `json:"main"`
	} `json:"weather"`
	Main *struct {
		Temp     *float64 `json:"temp"`
		TempMin  *float64 `json:"temp_min"`
		TempMax  *float64 `json:"temp_max"`
		Pressure *float64 `json:"pressure"`
		Humidity *float64 `json:"humidity"`
	} `json:"main"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Sys *struct {
		Sunrise *int64 `json:"sunrise"`
		Sunset  *int64 `json:"sunset"`
	} `json:"sys"`

	// Error responses carry these instead of the fields above.
	Cod     any    `json:"cod"`
	Message string `json:"message"`
}

func (p *currentPayload) current() (*Current, error) {
	missing := func(key string) error {
		if p.Message != "" {
			return fmt.Errorf("%w: missing %s (api: %s)", ErrCityNotFound, key, p.Message)
		}
		return fmt.Errorf("%w: missing %s", ErrCityNotFound, key)
	}

	switch {
	case len(p.Weather) == 0 || p.Weather[0].Main == nil:
		return nil, missing("weather[0].main")
	case p.Main == nil:
		return nil, missing("main")
	case p.Main.Temp == nil:
		return nil, missing("main.temp")
	case p.Main.TempMin == nil:
		return nil, missing("main.temp_min")
	case p.Main.TempMax == nil:
		return nil, missing("main.temp_max")
	case p.Main.Pressure == nil:
		return nil, missing("main.pressure")
	case p.Main.Humidity == nil:
		return nil, missing("main.humidity")
	case p.Wind == nil || p.Wind.Speed == nil:
		return nil, missing("wind.speed")
	case p.Sys == nil || p.Sys.Sunrise == nil:
		return nil, missing("sys.sunrise")
	case p.Sys.Sunset == nil:
		return nil, missing("sys.sunset")
	}

	return &Current{
		Condition: *p.Weather[0].Main,
		Temp:      *p.Main.Temp,
		TempMin:   *p.Main.TempMin,
		TempMax:   *p.Main.TempMax,
		Pressure:  *p.Main.Pressure,
		Humidity:  *p.Main.Humidity,
		WindSpeed: *p.Wind.Speed,
		Sunrise:   *p.Sys.Sunrise,
		Sunset:    *p.Sys.Sunset,
	}, nil
}
