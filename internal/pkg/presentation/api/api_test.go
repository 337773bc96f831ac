package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"
	"github.com/paulmach/orb/geojson"

	"github.com/hackforla/map-service/internal/pkg/application/mapservice"
	"github.com/hackforla/map-service/internal/pkg/infrastructure/storage"
	"github.com/hackforla/map-service/pkg/types"
)

func TestHealth(t *testing.T) {
	is, server, _ := testSetup(t)
	defer server.Close()

	resp, _ := testRequest(is, server, http.MethodGet, "/health", "")
	is.Equal(resp.StatusCode, http.StatusNoContent)
}

func TestClustersHandler(t *testing.T) {
	is, server, svc := testSetup(t)
	defer server.Close()

	resp, body := testRequest(is, server, http.MethodPost, "/api/v0/map/clusters", clustersQueryJSON)

	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(resp.Header.Get("Content-Type"), "application/json")
	is.Equal(body, `[{"id":0,"count":1,"latitude":34.05,"longitude":-118.24,"srnumber":"1-001","requesttype":"Bulky Items"},{"id":37,"count":3,"latitude":34.1,"longitude":-118.3,"expansion_zoom":12}]`)

	is.Equal(len(svc.ClustersCalls()), 1)
	q := svc.ClustersCalls()[0].Q
	is.Equal(q.Zoom, 10)
	is.Equal(q.RequestTypes, []string{"Bulky Items"})
	is.Equal(*q.Bounds.North, 34.2)
	is.True(q.Bounds.South == nil)
	is.Equal(*q.Options.Radius, 40.0)
}

func TestClustersHandlerAsGeoJSON(t *testing.T) {
	is, server, _ := testSetup(t)
	defer server.Close()

	resp, body := testRequest(is, server, http.MethodPost, "/api/v0/map/clusters?format=geojson", clustersQueryJSON)

	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(resp.Header.Get("Content-Type"), "application/geo+json")

	fc, err := geojson.UnmarshalFeatureCollection([]byte(body))
	is.NoErr(err)
	is.Equal(len(fc.Features), 2)
	is.Equal(fc.Features[0].Properties["srnumber"], "1-001")
	is.Equal(fc.Features[0].Properties["cluster"], false)
	is.Equal(fc.Features[1].Properties["cluster"], true)
	is.Equal(fc.Features[1].Properties["point_count"], 3.0)
	is.Equal(fc.Features[1].Properties["expansion_zoom"], 12.0)
}

func TestClustersHandlerWithBadBody(t *testing.T) {
	is, server, svc := testSetup(t)
	defer server.Close()

	resp, _ := testRequest(is, server, http.MethodPost, "/api/v0/map/clusters", "{not json")

	is.Equal(resp.StatusCode, http.StatusBadRequest)
	is.Equal(len(svc.ClustersCalls()), 0)
}

func TestClustersHandlerWithFailingService(t *testing.T) {
	is := is.New(t)

	svc := &mapservice.MapServiceMock{
		ClustersFunc: func(ctx context.Context, q types.ClustersQuery) ([]types.Cluster, error) {
			return nil, errors.New("database is down")
		},
	}
	server := httptest.NewServer(RegisterHandlers(context.Background(), chi.NewRouter(), svc))
	defer server.Close()

	resp, _ := testRequest(is, server, http.MethodPost, "/api/v0/map/clusters", clustersQueryJSON)
	is.Equal(resp.StatusCode, http.StatusInternalServerError)
}

func TestThatRejectedQueriesAreBadRequests(t *testing.T) {
	is := is.New(t)

	svc := &mapservice.MapServiceMock{
		ClustersFunc: func(ctx context.Context, q types.ClustersQuery) ([]types.Cluster, error) {
			return nil, fmt.Errorf("%w: max zoom 40 is outside 0-30", mapservice.ErrInvalidOptions)
		},
		HeatmapFunc: func(ctx context.Context, q types.HeatmapQuery) ([]types.Coordinate, error) {
			return nil, fmt.Errorf("%w: end date bad created date", storage.ErrInvalidCondition)
		},
	}
	server := httptest.NewServer(RegisterHandlers(context.Background(), chi.NewRouter(), svc))
	defer server.Close()

	resp, _ := testRequest(is, server, http.MethodPost, "/api/v0/map/clusters", `{"zoom":0,"options":{"max_zoom":40}}`)
	is.Equal(resp.StatusCode, http.StatusBadRequest)

	resp, _ = testRequest(is, server, http.MethodPost, "/api/v0/map/heatmap", `{"endDate":"last tuesday"}`)
	is.Equal(resp.StatusCode, http.StatusBadRequest)
}

func TestPinsHandler(t *testing.T) {
	is, server, svc := testSetup(t)
	defer server.Close()

	resp, body := testRequest(is, server, http.MethodPost, "/api/v0/map/pins", `{"startDate":"2020-01-01","endDate":"2020-12-31","zoom":5}`)
	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(body, `[{"srnumber":"1-001","requesttype":"Bulky Items","latitude":34.05,"longitude":-118.24,"count":1}]`)

	resp, body = testRequest(is, server, http.MethodPost, "/api/v0/map/pins", `{"startDate":"2020-01-01","endDate":"2020-12-31","zoom":-1}`)
	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(body, `[{"id":"52","count":2,"latitude":34.05,"longitude":-118.24,"expansion_zoom":14}]`)

	is.Equal(len(svc.PinsCalls()), 2)
}

func TestHeatmapHandler(t *testing.T) {
	is, server, svc := testSetup(t)
	defer server.Close()

	resp, body := testRequest(is, server, http.MethodPost, "/api/v0/map/heatmap", `{"startDate":"2020-01-01","endDate":"2020-12-31","ncList":["52"]}`)
	is.Equal(resp.StatusCode, http.StatusOK)
	is.Equal(body, `[[34.05,-118.24],[34.06,-118.25]]`)

	is.Equal(svc.HeatmapCalls()[0].Q.NCList, []string{"52"})
}

func TestMetricsAreExposed(t *testing.T) {
	is, server, _ := testSetup(t)
	defer server.Close()

	resp, body := testRequest(is, server, http.MethodGet, "/metrics", "")
	is.Equal(resp.StatusCode, http.StatusOK)
	is.True(strings.Contains(body, "go_goroutines"))
}

func TestThatClusterFeaturesAreValidGeoJSON(t *testing.T) {
	is := is.New(t)

	zoom := 3
	fc := NewFeatureCollectionWithClusters([]types.Cluster{{ID: 99, Count: 10, Latitude: 1, Longitude: 2, ExpansionZoom: &zoom}})

	b, err := fc.MarshalJSON()
	is.NoErr(err)

	var v map[string]any
	is.NoErr(json.Unmarshal(b, &v))
	is.Equal(v["type"], "FeatureCollection")
}

func testSetup(t *testing.T) (*is.I, *httptest.Server, *mapservice.MapServiceMock) {
	is := is.New(t)

	expansionZoom := 12

	svc := &mapservice.MapServiceMock{
		ClustersFunc: func(ctx context.Context, q types.ClustersQuery) ([]types.Cluster, error) {
			return []types.Cluster{
				{ID: 0, Count: 1, Latitude: 34.05, Longitude: -118.24, SRNumber: "1-001", RequestType: "Bulky Items"},
				{ID: 37, Count: 3, Latitude: 34.1, Longitude: -118.3, ExpansionZoom: &expansionZoom},
			}, nil
		},
		PinsFunc: func(ctx context.Context, q types.ClustersQuery) (types.PinsResult, error) {
			if q.Zoom > -1 {
				return types.PinsResult{Pins: []types.PinRecord{
					{SRNumber: "1-001", RequestType: "Bulky Items", Latitude: 34.05, Longitude: -118.24, Count: 1},
				}}, nil
			}
			return types.PinsResult{Overview: true, Aggregates: []types.NCAggregate{
				{ID: "52", Count: 2, Latitude: 34.05, Longitude: -118.24, ExpansionZoom: 14},
			}}, nil
		},
		HeatmapFunc: func(ctx context.Context, q types.HeatmapQuery) ([]types.Coordinate, error) {
			return []types.Coordinate{{34.05, -118.24}, {34.06, -118.25}}, nil
		},
	}

	r := RegisterHandlers(context.Background(), chi.NewRouter(), svc)

	return is, httptest.NewServer(r), svc
}

func testRequest(is *is.I, ts *httptest.Server, method, path string, body string) (*http.Response, string) {
	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	is.NoErr(err)

	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	is.NoErr(err)

	return resp, string(respBody)
}

const clustersQueryJSON string = `{
	"startDate": "2020-01-01",
	"endDate": "2020-12-31",
	"requestTypes": ["Bulky Items"],
	"zoom": 10,
	"bounds": {"north": 34.2, "east": -118.1, "west": -118.6},
	"options": {"radius": 40}
}`
