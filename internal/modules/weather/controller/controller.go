package controller

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Asad-28/weather-app/internal/httpapi"
	"github.com/Asad-28/weather-app/internal/modules/weather/types"
	"github.com/Asad-28/weather-app/internal/modules/weather/viewstate"
)

// WeatherService is what the handlers need from the service layer.
type WeatherService interface {
	Lookup(ctx context.Context, q types.Query) (viewstate.State, error)
	RecentLookups(ctx context.Context, city string, limit int) ([]types.Lookup, error)
}

type WeatherController interface {
	RegisterRoutes(r chi.Router)
}

type weatherControllerImpl struct {
	service WeatherService
}

func NewWeatherController(service WeatherService) WeatherController {
	return &weatherControllerImpl{service: service}
}

// RegisterRoutes mounts the window and the API. Lookups carry no deadline of
// their own; everything else is bounded by httpapi.RequestTimeout.
func (c *weatherControllerImpl) RegisterRoutes(r chi.Router) {
	bounded := middleware.Timeout(httpapi.RequestTimeout)

	r.With(bounded).Get("/", c.handleIndex)
	r.Post("/weather", c.handleWeather)
	r.With(bounded).Post("/clear", c.handleClear)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/weather", c.handleWeatherJSON)
		r.With(bounded).Get("/lookups", c.handleLookups)
	})
}
