package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const maxBodyBytes = 1 << 20

var (
	// ErrConnection reports that the API could not be reached or the
	// response could not be read off the wire.
	ErrConnection = errors.New("openweather: connection failed")
	// ErrCityNotFound reports a response that does not carry every field
	// the app displays. Unknown cities and rejected API keys both end here.
	ErrCityNotFound = errors.New("openweather: city not found")
)

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client queries the current-weather endpoint. It never retries.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	tracer     trace.Tracer
}

// NewClient builds a Client. A nil httpClient gets a traced client with no
// timeout of its own; deadlines come from the request context.
func NewClient(apiKey, baseURL string, httpClient HTTPDoer) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		tracer:     otel.Tracer("openweather"),
	}
}

// Current performs one GET for city and returns the decoded reading.
func (c *Client) Current(ctx context.Context, city string) (*Current, error) {
	ctx, span := c.tracer.Start(ctx, "openweather: current")
	defer span.End()
	span.SetAttributes(attribute.String("city", city))

	u, err := url.Parse(c.baseURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "bad base url")
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create request")
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			span.SetStatus(codes.Error, "cancelled")
			return nil, fmt.Errorf("execute request: %w", ctxErr)
		}
		span.SetStatus(codes.Error, "connection failed")
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	defer func() { _ = resp.Body.Close() }()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		span.RecordError(err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			span.SetStatus(codes.Error, "cancelled")
			return nil, fmt.Errorf("read response: %w", ctxErr)
		}
		span.SetStatus(codes.Error, "connection failed")
		return nil, fmt.Errorf("%w: read response: %w", ErrConnection, err)
	}

	var payload currentPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "undecodable response")
		return nil, fmt.Errorf("%w: decode response (HTTP %d): %w", ErrCityNotFound, resp.StatusCode, err)
	}

	cur, err := payload.current()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "city not found")
		return nil, err
	}

	span.SetAttributes(attribute.String("condition", cur.Condition))
	span.SetStatus(codes.Ok, "")
	return cur, nil
}
