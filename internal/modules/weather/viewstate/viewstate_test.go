package viewstate

import (
	"strings"
	"testing"

	"github.com/Asad-28/weather-app/internal/modules/weather/types"
)

var clearReading = types.Reading{
	Condition: "Clear",
	Temp:      20,
	TempMin:   18,
	TempMax:   22,
	Pressure:  1013,
	Humidity:  40,
	Wind:      3.6,
	Sunrise:   "04:13:20 PM",
	Sunset:    "01:23:20 AM",
}

func TestNew(t *testing.T) {
	s := New()
	if s.Input != "" || s.Summary != "" || s.Details != "" {
		t.Errorf("New() = %+v; want empty labels", s)
	}
	if s.Status != StatusEmpty {
		t.Errorf("Status = %q; want %q", s.Status, StatusEmpty)
	}
	if s.SmallSummary() {
		t.Error("empty state must use the large font")
	}
}

func TestWithReading(t *testing.T) {
	s := New().WithInput("Lima").WithReading(clearReading)

	if s.Input != "Lima" {
		t.Errorf("Input = %q; want Lima", s.Input)
	}
	if s.Summary != "☀️ Clear\n20°C" {
		t.Errorf("Summary = %q", s.Summary)
	}
	if !strings.HasPrefix(s.Details, "\nMin Temp: 18°C\n") {
		t.Errorf("Details = %q; want min temp first", s.Details)
	}
	if s.Status != StatusOK || s.SmallSummary() {
		t.Errorf("Status = %q small=%v; want ok with large font", s.Status, s.SmallSummary())
	}
}

func TestErrorStatesClearDetails(t *testing.T) {
	tests := []struct {
		name       string
		apply      func(State) State
		wantText   string
		wantStatus Status
	}{
		{name: "connection", apply: State.WithConnectionError, wantText: ConnectionErrorText, wantStatus: StatusConnectionError},
		{name: "not found", apply: State.WithNotFound, wantText: NotFoundText, wantStatus: StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := New().WithInput("Lima").WithReading(clearReading)
			s := tt.apply(prev)

			if s.Summary != tt.wantText {
				t.Errorf("Summary = %q; want %q", s.Summary, tt.wantText)
			}
			if s.Details != "" {
				t.Errorf("Details = %q; want empty", s.Details)
			}
			if s.Status != tt.wantStatus {
				t.Errorf("Status = %q; want %q", s.Status, tt.wantStatus)
			}
			if !s.SmallSummary() {
				t.Error("error text must use the small font")
			}
			if s.Input != "Lima" {
				t.Errorf("Input = %q; error must keep what was typed", s.Input)
			}
			if prev.Status != StatusOK {
				t.Error("transition mutated the previous state")
			}
		})
	}
}

func TestCleared(t *testing.T) {
	for _, s := range []State{
		New(),
		New().WithInput("Oslo"),
		New().WithInput("Oslo").WithReading(clearReading),
		New().WithInput("Atlantis").WithNotFound(),
		New().WithInput("Oslo").WithConnectionError(),
	} {
		got := s.Cleared()
		if got != New() {
			t.Errorf("%+v.Cleared() = %+v; want %+v", s, got, New())
		}
		if got.SmallSummary() {
			t.Error("cleared state must reset the font")
		}
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		state  State
		want   types.Outcome
		wantOK bool
	}{
		{state: New(), wantOK: false},
		{state: New().WithReading(clearReading), want: types.OutcomeOK, wantOK: true},
		{state: New().WithConnectionError(), want: types.OutcomeConnectionError, wantOK: true},
		{state: New().WithNotFound(), want: types.OutcomeNotFound, wantOK: true},
	}
	for _, tt := range tests {
		got, ok := tt.state.Outcome()
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Outcome(%q) = (%q, %v); want (%q, %v)", tt.state.Status, got, ok, tt.want, tt.wantOK)
		}
	}
}
