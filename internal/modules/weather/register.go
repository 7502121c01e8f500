package weather

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/Asad-28/weather-app/internal/modules/weather/controller"
	"github.com/Asad-28/weather-app/internal/modules/weather/repository"
	"github.com/Asad-28/weather-app/internal/modules/weather/service"
)

// RegisterFeature mounts the weather window and its JSON API on r.
// publisher may be a nil interface when MQTT is disabled.
func RegisterFeature(r chi.Router, db *sql.DB, fetcher service.Fetcher, publisher service.Publisher, outcomes *slog.Logger) {
	weatherRepository := repository.NewRepository(db)
	weatherService := service.NewService(fetcher, weatherRepository, publisher, outcomes)
	weatherController := controller.NewWeatherController(weatherService)
	weatherController.RegisterRoutes(r)
}
