package mapservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/hackforla/map-service/internal/pkg/application/centroids"
	"github.com/hackforla/map-service/internal/pkg/infrastructure/cache"
	"github.com/hackforla/map-service/internal/pkg/infrastructure/kdbush"
	"github.com/hackforla/map-service/internal/pkg/infrastructure/storage"
	"github.com/hackforla/map-service/internal/pkg/infrastructure/supercluster"
	"github.com/hackforla/map-service/pkg/types"
)

var tracer = otel.Tracer("map-service/mapservice")

var ErrInvalidOptions = errors.New("invalid cluster options")

// OverviewExpansionZoom is the zoom at which a council aggregate is replaced by
// the pins inside it.
const OverviewExpansionZoom int = 14

//go:generate moq -rm -out mapservice_mock.go . MapService

type MapService interface {
	Clusters(ctx context.Context, q types.ClustersQuery) ([]types.Cluster, error)
	Pins(ctx context.Context, q types.ClustersQuery) (types.PinsResult, error)
	Heatmap(ctx context.Context, q types.HeatmapQuery) ([]types.Coordinate, error)
}

type Config struct {
	MinZoom int     `yaml:"minZoom"`
	MaxZoom int     `yaml:"maxZoom"`
	Radius  float64 `yaml:"radius"`
	Extent  int     `yaml:"extent"`
}

func DefaultConfig() Config {
	opts := supercluster.DefaultOptions()
	return Config{
		MinZoom: opts.MinZoom,
		MaxZoom: opts.MaxZoom,
		Radius:  opts.Radius,
		Extent:  opts.Extent,
	}
}

func (c Config) Validate() error {
	if err := c.options().Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidOptions, err.Error())
	}
	return nil
}

func (c Config) options() supercluster.Options {
	return supercluster.Options{
		MinZoom:  c.MinZoom,
		MaxZoom:  c.MaxZoom,
		Radius:   c.Radius,
		Extent:   c.Extent,
		NodeSize: kdbush.DefaultNodeSize,
	}
}

type mapService struct {
	store     storage.Store
	cache     cache.Cache
	centroids *centroids.Dataset
	defaults  supercluster.Options
}

func New(s storage.Store, c cache.Cache, centroids *centroids.Dataset, cfg Config) MapService {
	return &mapService{
		store:     s,
		cache:     c,
		centroids: centroids,
		defaults:  cfg.options(),
	}
}

func (m *mapService) Clusters(ctx context.Context, q types.ClustersQuery) (clusters []types.Cluster, err error) {
	ctx, span := tracer.Start(ctx, "get-clusters")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	opts := ResolveOptions(q.Options, m.defaults)
	if err = opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOptions, err.Error())
	}

	pins, err := GetPins(ctx, m.store, m.cache, q.Filter())
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("pins", len(pins)), attribute.Int("zoom", q.Zoom))

	return GetClusters(pins, q.Zoom, q.Bounds.Box(), opts)
}

// Pins returns every pin matching the query when zoom is above -1 and one
// aggregate per neighborhood council with a known centroid otherwise.
func (m *mapService) Pins(ctx context.Context, q types.ClustersQuery) (result types.PinsResult, err error) {
	ctx, span := tracer.Start(ctx, "get-pins")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	f := q.Filter()

	if q.Zoom > -1 {
		pins, err := GetPins(ctx, m.store, m.cache, f)
		if err != nil {
			return types.PinsResult{}, err
		}

		return types.PinsResult{
			Pins: lo.Map(pins, func(p types.Pin, _ int) types.PinRecord {
				return types.PinRecord{
					SRNumber:    p.SRNumber,
					RequestType: p.RequestType,
					Latitude:    p.Latitude,
					Longitude:   p.Longitude,
					Count:       1,
				}
			}),
		}, nil
	}

	aggregates, err := m.councilAggregates(ctx, f)
	if err != nil {
		return types.PinsResult{}, err
	}

	return types.PinsResult{Overview: true, Aggregates: aggregates}, nil
}

// TODO: cache council aggregates under a key derived from the filter, like pins
func (m *mapService) councilAggregates(ctx context.Context, f types.Filter) ([]types.NCAggregate, error) {
	counts, err := m.store.CountByNC(ctx, storage.WithFilter(f)...)
	if err != nil {
		return nil, err
	}

	aggregates := make([]types.NCAggregate, 0, len(counts))
	dropped := 0

	for _, c := range counts {
		centroid, ok := m.centroids.Get(c.NC)
		if !ok {
			dropped++
			continue
		}

		aggregates = append(aggregates, types.NCAggregate{
			ID:            c.NC,
			Count:         c.Count,
			Latitude:      centroid.Latitude,
			Longitude:     centroid.Longitude,
			ExpansionZoom: OverviewExpansionZoom,
		})
	}

	if dropped > 0 {
		log := logging.GetFromContext(ctx)
		log.Debug().Int("dropped", dropped).Msg("councils without centroid left out of overview")
	}

	return aggregates, nil
}

// Heatmap returns the position of every pin matching the query. Cached pins are
// reused, but positions queried on a miss are not cached since they are not
// complete pins.
func (m *mapService) Heatmap(ctx context.Context, q types.HeatmapQuery) (coords []types.Coordinate, err error) {
	ctx, span := tracer.Start(ctx, "get-heatmap")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	f := q.Filter()

	if pins, ok := cachedPins(ctx, m.cache, PinsKey(f)); ok {
		return lo.Map(pins, func(p types.Pin, _ int) types.Coordinate {
			return types.NewCoordinate(p.Latitude, p.Longitude)
		}), nil
	}

	coords, err = m.store.QueryCoordinates(ctx, storage.WithFilter(f)...)
	if err != nil {
		return nil, err
	}

	if coords == nil {
		coords = []types.Coordinate{}
	}

	return coords, nil
}
