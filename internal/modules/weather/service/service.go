package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Asad-28/weather-app/internal/modules/weather/format"
	"github.com/Asad-28/weather-app/internal/modules/weather/repository"
	"github.com/Asad-28/weather-app/internal/modules/weather/types"
	"github.com/Asad-28/weather-app/internal/modules/weather/viewstate"
	"github.com/Asad-28/weather-app/internal/openweather"
)

type Fetcher interface {
	Current(ctx context.Context, city string) (*openweather.Current, error)
}

type Publisher interface {
	PublishReading(ctx context.Context, city string, r types.Reading) error
}

type Service struct {
	fetcher   Fetcher
	journal   repository.LookupRepository
	publisher Publisher
	outcomes  *slog.Logger
	tracer    trace.Tracer
	newID     func() string
	now       func() time.Time
}

// NewService wires the lookup flow. journal and publisher may be nil; pass a
// nil interface, not a typed nil pointer. A nil outcomes logger discards.
func NewService(fetcher Fetcher, journal repository.LookupRepository, publisher Publisher, outcomes *slog.Logger) *Service {
	if outcomes == nil {
		outcomes = slog.New(slog.DiscardHandler)
	}
	return &Service{
		fetcher:   fetcher,
		journal:   journal,
		publisher: publisher,
		outcomes:  outcomes,
		tracer:    otel.Tracer("weather"),
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// Lookup fetches the weather for q.City and returns the resulting window
// state. Connection failures and unknown cities become error states; any
// other failure is returned as an error and nothing is recorded.
func (s *Service) Lookup(ctx context.Context, q types.Query) (viewstate.State, error) {
	ctx, span := s.tracer.Start(ctx, "weather: lookup")
	defer span.End()
	span.SetAttributes(attribute.String("city", q.City))

	state := viewstate.New().WithInput(q.City)

	cur, err := s.fetcher.Current(ctx, q.City)
	var reading types.Reading
	switch {
	case err == nil:
		reading = format.Reading(cur)
		state = state.WithReading(reading)
		s.outcomes.Info("Weather retrieved successfully for " + q.City)
	case errors.Is(err, openweather.ErrConnection):
		state = state.WithConnectionError()
		s.outcomes.Error("Connection Error occurred: " + viewstate.ConnectionErrorText)
	case errors.Is(err, openweather.ErrCityNotFound):
		state = state.WithNotFound()
		s.outcomes.Error("Invalid city or missing weather data: " + viewstate.NotFoundText)
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
		return viewstate.State{}, fmt.Errorf("lookup %q: %w", q.City, err)
	}
	if err != nil {
		slog.Debug("weather lookup recovered", "city", q.City, "status", state.Status, "cause", err)
	}
	span.SetAttributes(attribute.String("status", string(state.Status)))

	// the window already shows the outcome; keep recording it if the client goes away
	bg := context.WithoutCancel(ctx)
	s.record(bg, q.City, state)
	if state.Status == viewstate.StatusOK {
		s.publish(bg, q.City, reading)
	}

	span.SetStatus(codes.Ok, "")
	return state, nil
}

// RecentLookups lists journal rows newest first, optionally for one city.
func (s *Service) RecentLookups(ctx context.Context, city string, limit int) ([]types.Lookup, error) {
	if s.journal == nil {
		return []types.Lookup{}, nil
	}
	if city == "" {
		return s.journal.GetRecentLookups(ctx, limit)
	}
	return s.journal.GetLookupsByCity(ctx, city, limit)
}

func (s *Service) record(ctx context.Context, city string, state viewstate.State) {
	if s.journal == nil {
		return
	}
	outcome, ok := state.Outcome()
	if !ok {
		return
	}
	l := types.Lookup{
		ID:      s.newID(),
		City:    city,
		Outcome: outcome,
		Summary: state.Summary,
		Details: state.Details,
		Time:    s.now(),
	}
	if err := s.journal.InsertLookup(ctx, l); err != nil {
		slog.Error("failed to journal lookup", "city", city, "outcome", outcome, "error", err)
	}
}

func (s *Service) publish(ctx context.Context, city string, r types.Reading) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishReading(ctx, city, r); err != nil {
		slog.Warn("failed to publish reading", "city", city, "error", err)
	}
}
