// Package viewstate holds what the weather window shows. Every transition
// returns a new State; nothing is mutated in place.
package viewstate

import (
	"github.com/Asad-28/weather-app/internal/modules/weather/format"
	"github.com/Asad-28/weather-app/internal/modules/weather/types"
)

type Status string

const (
	StatusEmpty           Status = "empty"
	StatusOK              Status = "ok"
	StatusConnectionError Status = "connection_error"
	StatusNotFound        Status = "not_found"
)

const (
	ConnectionErrorText = "⚠️ Connection Error: Please check your internet connection."
	NotFoundText        = "⚠️ City not found. Please enter a valid city name."
)

type State struct {
	Input   string `json:"input"`
	Summary string `json:"summary"`
	Details string `json:"details"`
	Status  Status `json:"status"`
}

func New() State {
	return State{Status: StatusEmpty}
}

func (s State) WithInput(city string) State {
	s.Input = city
	return s
}

func (s State) WithReading(r types.Reading) State {
	s.Summary = format.Summary(r)
	s.Details = format.Details(r)
	s.Status = StatusOK
	return s
}

func (s State) WithConnectionError() State {
	s.Summary = ConnectionErrorText
	s.Details = ""
	s.Status = StatusConnectionError
	return s
}

func (s State) WithNotFound() State {
	s.Summary = NotFoundText
	s.Details = ""
	s.Status = StatusNotFound
	return s
}

// Cleared empties the input and both labels whatever the prior state was.
func (s State) Cleared() State {
	return New()
}

// SmallSummary reports whether the summary label uses the small font.
func (s State) SmallSummary() bool {
	return s.Status == StatusConnectionError || s.Status == StatusNotFound
}

// Outcome maps the status to the journal outcome. Empty has none.
func (s State) Outcome() (types.Outcome, bool) {
	switch s.Status {
	case StatusOK:
		return types.OutcomeOK, true
	case StatusConnectionError:
		return types.OutcomeConnectionError, true
	case StatusNotFound:
		return types.OutcomeNotFound, true
	}
	return "", false
}
