package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func Test_parseLimit(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    int
		wantErr string
	}{
		{name: "default", query: "", want: defaultLookupsLimit},
		{name: "explicit", query: "?limit=5", want: 5},
		{name: "max", query: "?limit=100", want: 100},
		{name: "not a number", query: "?limit=abc", wantErr: "invalid 'limit' (expected integer)"},
		{name: "zero", query: "?limit=0", wantErr: "'limit' must be > 0"},
		{name: "negative", query: "?limit=-3", wantErr: "'limit' must be > 0"},
		{name: "too large", query: "?limit=101", wantErr: "'limit' must be <= 100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/lookups"+tt.query, nil)
			got, err := parseLimit(req)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("parseLimit() err = %v; want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLimit() err = %v; want nil", err)
			}
			if got != tt.want {
				t.Errorf("parseLimit() = %d; want %d", got, tt.want)
			}
		})
	}
}
