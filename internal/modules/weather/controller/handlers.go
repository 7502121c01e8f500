package controller

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/Asad-28/weather-app/internal/modules/weather/types"
	"github.com/Asad-28/weather-app/internal/modules/weather/viewstate"
	"github.com/Asad-28/weather-app/internal/modules/weather/views"
	"github.com/Asad-28/weather-app/internal/utils"
)

func (c *weatherControllerImpl) handleIndex(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, viewstate.New())
}

func (c *weatherControllerImpl) handleWeather(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid form")
		return
	}
	// the city goes out exactly as typed
	city := r.PostForm.Get("city")

	state, err := c.service.Lookup(r.Context(), types.Query{City: city})
	if err != nil {
		slog.Error("weather lookup failed", "city", city, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to fetch weather")
		return
	}
	c.render(w, r, state)
}

func (c *weatherControllerImpl) handleClear(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, viewstate.New().Cleared())
}

func (c *weatherControllerImpl) handleWeatherJSON(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("city") {
		utils.WriteError(w, http.StatusBadRequest, "missing 'city'")
		return
	}
	city := q.Get("city")

	state, err := c.service.Lookup(r.Context(), types.Query{City: city})
	if err != nil {
		slog.Error("weather lookup failed", "city", city, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to fetch weather")
		return
	}
	utils.WriteJSON(w, http.StatusOK, state)
}

func (c *weatherControllerImpl) handleLookups(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	lookups, err := c.service.RecentLookups(r.Context(), r.URL.Query().Get("city"), limit)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, lookups)
}

// render answers htmx swaps with the window partial and everything else with
// the full page. Output is buffered so a template error can still become a 500.
func (c *weatherControllerImpl) render(w http.ResponseWriter, r *http.Request, state viewstate.State) {
	data := views.NewPageData(state)

	var buf bytes.Buffer
	renderFn := views.RenderPage
	if utils.IsHTMX(r) {
		renderFn = views.RenderWindowPartial
	}
	if err := renderFn(&buf, data); err != nil {
		slog.Error("weather template render failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("write page", "error", err)
	}
}
