package mapservice

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/samber/lo"

	"github.com/hackforla/map-service/internal/pkg/infrastructure/supercluster"
	"github.com/hackforla/map-service/pkg/types"
)

var clusterBuildDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: "map_service",
		Subsystem: "clusters",
		Name:      "build_seconds",
		Help:      "time spent indexing pins and extracting clusters",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
	},
)

// GetClusters groups the pins into the clusters visible inside box at zoom.
// A cluster of a single pin carries that pin's identity and no expansion zoom.
func GetClusters(pins []types.Pin, zoom int, box types.Box, opts supercluster.Options) ([]types.Cluster, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOptions, err.Error())
	}

	if len(pins) == 0 {
		return []types.Cluster{}, nil
	}

	start := time.Now()
	defer func() { clusterBuildDuration.Observe(time.Since(start).Seconds()) }()

	idx := supercluster.New[types.Pin](opts)

	err := idx.Load(lo.Map(pins, func(p types.Pin, _ int) supercluster.Point[types.Pin] {
		return supercluster.Point[types.Pin]{Lng: p.Longitude, Lat: p.Latitude, Data: p}
	}))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOptions, err.Error())
	}

	found := idx.GetClusters(box.West, box.South, box.East, box.North, zoom)
	clusters := make([]types.Cluster, 0, len(found))

	for _, c := range found {
		if !c.IsCluster {
			clusters = append(clusters, types.Cluster{
				ID:          c.ID,
				Count:       1,
				Latitude:    c.Lat,
				Longitude:   c.Lng,
				SRNumber:    c.Data.SRNumber,
				RequestType: c.Data.RequestType,
			})
			continue
		}

		expansionZoom, err := idx.GetClusterExpansionZoom(c.ID)
		if err != nil {
			return nil, err
		}

		clusters = append(clusters, types.Cluster{
			ID:            c.ID,
			Count:         c.Count,
			Latitude:      c.Lat,
			Longitude:     c.Lng,
			ExpansionZoom: &expansionZoom,
		})
	}

	return clusters, nil
}

// ResolveOptions fills in the options missing from a request with defaults.
func ResolveOptions(requested types.ClusterOptions, defaults supercluster.Options) supercluster.Options {
	opts := defaults

	if requested.MinZoom != nil {
		opts.MinZoom = *requested.MinZoom
	}
	if requested.MaxZoom != nil {
		opts.MaxZoom = *requested.MaxZoom
	}
	if requested.Radius != nil {
		opts.Radius = *requested.Radius
	}
	if requested.Extent != nil {
		opts.Extent = *requested.Extent
	}

	return opts
}
