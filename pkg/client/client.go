package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"

	"github.com/hackforla/map-service/pkg/types"
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

//go:generate moq -rm -out client_mock.go . MapServiceClient

type MapServiceClient interface {
	Clusters(ctx context.Context, q types.ClustersQuery) ([]types.Cluster, error)
	Pins(ctx context.Context, q types.ClustersQuery) (types.PinsResult, error)
	Heatmap(ctx context.Context, q types.HeatmapQuery) ([]types.Coordinate, error)
}

type mapServiceClient struct {
	url        string
	httpClient http.Client
}

var tracer = otel.Tracer("map-service-client")

func New(mapServiceURL string) MapServiceClient {
	return &mapServiceClient{
		url: strings.TrimSuffix(mapServiceURL, "/"),
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *mapServiceClient) Clusters(ctx context.Context, q types.ClustersQuery) ([]types.Cluster, error) {
	var err error
	ctx, span := tracer.Start(ctx, "get-clusters")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)
	log.Debug().Msgf("requesting clusters at zoom %d", q.Zoom)

	clusters := []types.Cluster{}
	err = c.post(ctx, "/api/v0/map/clusters", q, &clusters)
	if err != nil {
		return nil, err
	}

	return clusters, nil
}

// Pins decodes the response as neighborhood council aggregates when the query
// zoom asks for an overview.
func (c *mapServiceClient) Pins(ctx context.Context, q types.ClustersQuery) (types.PinsResult, error) {
	var err error
	ctx, span := tracer.Start(ctx, "get-pins")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	result := types.PinsResult{Overview: q.Zoom <= -1}

	if result.Overview {
		result.Aggregates = []types.NCAggregate{}
		err = c.post(ctx, "/api/v0/map/pins", q, &result.Aggregates)
	} else {
		result.Pins = []types.PinRecord{}
		err = c.post(ctx, "/api/v0/map/pins", q, &result.Pins)
	}

	if err != nil {
		return types.PinsResult{}, err
	}

	return result, nil
}

func (c *mapServiceClient) Heatmap(ctx context.Context, q types.HeatmapQuery) ([]types.Coordinate, error) {
	var err error
	ctx, span := tracer.Start(ctx, "get-heatmap")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	coords := []types.Coordinate{}
	err = c.post(ctx, "/api/v0/map/heatmap", q, &coords)
	if err != nil {
		return nil, err
	}

	return coords, nil
}

func (c *mapServiceClient) post(ctx context.Context, path string, body, result any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+path, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post to %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, path, resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	err = json.Unmarshal(respBody, result)
	if err != nil {
		return fmt.Errorf("failed to unmarshal response body: %w", err)
	}

	return nil
}
