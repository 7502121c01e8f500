package controller

import (
	"errors"
	"net/http"
	"strconv"
)

const (
	defaultLookupsLimit = 20
	maxLookupsLimit     = 100
)

func parseLimit(r *http.Request) (int, error) {
	s := r.URL.Query().Get("limit")
	if s == "" {
		return defaultLookupsLimit, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("invalid 'limit' (expected integer)")
	}
	if n <= 0 {
		return 0, errors.New("'limit' must be > 0")
	}
	if n > maxLookupsLimit {
		return 0, errors.New("'limit' must be <= 100")
	}
	return n, nil
}
