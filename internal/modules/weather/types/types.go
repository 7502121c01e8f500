package types

import "time"

// Query is what the user submitted; the city is used exactly as typed.
type Query struct {
	City string
}

// Reading is the display-ready projection of one API response.
type Reading struct {
	Condition string  `json:"condition"`
	Temp      int     `json:"temp"`
	TempMin   int     `json:"tempMin"`
	TempMax   int     `json:"tempMax"`
	Pressure  int     `json:"pressure"`
	Humidity  int     `json:"humidity"`
	Wind      float64 `json:"wind"`
	Sunrise   string  `json:"sunrise"`
	Sunset    string  `json:"sunset"`
}

type Outcome string

const (
	OutcomeOK              Outcome = "ok"
	OutcomeConnectionError Outcome = "connection_error"
	OutcomeNotFound        Outcome = "not_found"
)

// Lookup is one journal row: what was asked and what the window showed.
type Lookup struct {
	ID      string    `json:"id"`
	City    string    `json:"city"`
	Outcome Outcome   `json:"outcome"`
	Summary string    `json:"summary"`
	Details string    `json:"details"`
	Time    time.Time `json:"time"`
}
