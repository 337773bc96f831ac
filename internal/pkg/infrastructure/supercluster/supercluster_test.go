package supercluster

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/matryer/is"
)

func TestThatASinglePointIsReturnedAsIs(t *testing.T) {
	is := is.New(t)

	idx := New[string](DefaultOptions())
	is.NoErr(idx.Load([]Point[string]{{Lng: -118.24, Lat: 34.05, Data: "sr-1"}}))

	clusters := idx.GetClusters(-180, -90, 180, 90, 5)

	is.Equal(len(clusters), 1)
	is.True(!clusters[0].IsCluster)
	is.Equal(clusters[0].Count, 1)
	is.Equal(clusters[0].ID, 0)
	is.Equal(clusters[0].Data, "sr-1")
	is.Equal(clusters[0].Lng, -118.24)
	is.Equal(clusters[0].Lat, 34.05)
}

func TestThatIdenticalPointsFormOneCluster(t *testing.T) {
	is := is.New(t)

	opts := DefaultOptions()
	idx := New[int](opts)

	points := make([]Point[int], 5)
	for i := range points {
		points[i] = Point[int]{Lng: -118.24, Lat: 34.05, Data: i}
	}
	is.NoErr(idx.Load(points))

	clusters := idx.GetClusters(-180, -90, 180, 90, 3)
	is.Equal(len(clusters), 1)
	is.True(clusters[0].IsCluster)
	is.Equal(clusters[0].Count, 5)
	is.True(math.Abs(clusters[0].Lat-34.05) < 1e-9)
	is.True(math.Abs(clusters[0].Lng+118.24) < 1e-9)

	expansionZoom, err := idx.GetClusterExpansionZoom(clusters[0].ID)
	is.NoErr(err)
	is.Equal(expansionZoom, opts.MaxZoom+1)

	leaves, err := idx.GetLeaves(clusters[0].ID, 10, 0)
	is.NoErr(err)
	is.Equal(len(leaves), 5)
}

func TestThatClustersSplitAtTheirExpansionZoom(t *testing.T) {
	is := is.New(t)

	idx := New[string](DefaultOptions())
	is.NoErr(idx.Load([]Point[string]{
		{Lng: -118.24, Lat: 34.05, Data: "los angeles"},
		{Lng: -122.42, Lat: 37.77, Data: "san francisco"},
	}))

	clusters := idx.GetClusters(-180, -90, 180, 90, 0)
	is.Equal(len(clusters), 1)
	is.Equal(clusters[0].Count, 2)

	children, err := idx.GetChildren(clusters[0].ID)
	is.NoErr(err)
	is.Equal(len(children), 2)

	expansionZoom, err := idx.GetClusterExpansionZoom(clusters[0].ID)
	is.NoErr(err)
	is.True(expansionZoom > 0)

	is.Equal(len(idx.GetClusters(-180, -90, 180, 90, expansionZoom-1)), 1)
	is.Equal(len(idx.GetClusters(-180, -90, 180, 90, expansionZoom)), 2)
}

func TestGetClustersAcrossTheAntimeridian(t *testing.T) {
	is := is.New(t)

	idx := New[string](DefaultOptions())
	is.NoErr(idx.Load([]Point[string]{
		{Lng: 179, Lat: 0, Data: "east"},
		{Lng: -179, Lat: 0, Data: "west"},
		{Lng: 0, Lat: 0, Data: "greenwich"},
	}))

	clusters := idx.GetClusters(170, -10, -170, 10, 18)
	is.Equal(len(clusters), 2)

	clusters = idx.GetClusters(-170, -10, 170, 10, 18)
	is.Equal(len(clusters), 1)
	is.Equal(clusters[0].Data, "greenwich")

	clusters = idx.GetClusters(-200, -10, 200, 10, 18)
	is.Equal(len(clusters), 3)
}

func TestThatClusteringIsDeterministic(t *testing.T) {
	is := is.New(t)

	r := rand.New(rand.NewSource(7))
	points := make([]Point[int], 1000)
	for i := range points {
		points[i] = Point[int]{Lng: -118.7 + r.Float64(), Lat: 33.7 + r.Float64(), Data: i}
	}

	first := New[int](DefaultOptions())
	is.NoErr(first.Load(points))
	second := New[int](DefaultOptions())
	is.NoErr(second.Load(points))

	for zoom := 0; zoom <= 18; zoom++ {
		is.Equal(first.GetClusters(-180, -90, 180, 90, zoom), second.GetClusters(-180, -90, 180, 90, zoom))
	}
}

func TestThatEveryPointIsCountedOncePerZoom(t *testing.T) {
	is := is.New(t)

	r := rand.New(rand.NewSource(11))
	points := make([]Point[int], 500)
	for i := range points {
		points[i] = Point[int]{Lng: -118.7 + r.Float64(), Lat: 33.7 + r.Float64(), Data: i}
	}

	idx := New[int](DefaultOptions())
	is.NoErr(idx.Load(points))

	for zoom := 0; zoom <= 18; zoom++ {
		total := 0
		for _, c := range idx.GetClusters(-180, -90, 180, 90, zoom) {
			total += c.Count
		}
		is.Equal(total, len(points))
	}
}

func TestUnknownClusterID(t *testing.T) {
	is := is.New(t)

	idx := New[int](DefaultOptions())
	is.NoErr(idx.Load([]Point[int]{{Lng: 1, Lat: 1}}))

	_, err := idx.GetChildren(12345)
	is.True(errors.Is(err, ErrClusterNotFound))
}

func TestLoadRejectsInvalidZoomRange(t *testing.T) {
	is := is.New(t)

	idx := New[int](Options{MinZoom: 5, MaxZoom: 2, Radius: 40, Extent: 512})
	is.True(idx.Load(nil) != nil)
}

func TestLoadRejectsOptionsOutsideTheSupportedRange(t *testing.T) {
	is := is.New(t)

	invalid := []Options{
		{MinZoom: 0, MaxZoom: MaxZoom + 1, Radius: 40, Extent: 512},
		{MinZoom: 0, MaxZoom: 1000000, Radius: 40, Extent: 512},
		{MinZoom: -1, MaxZoom: 17, Radius: 40, Extent: 512},
		{MinZoom: 0, MaxZoom: 17, Radius: -1, Extent: 512},
		{MinZoom: 0, MaxZoom: 17, Radius: math.NaN(), Extent: 512},
		{MinZoom: 0, MaxZoom: 17, Radius: 40, Extent: 0},
		{MinZoom: 0, MaxZoom: 17, Radius: 40, Extent: -512},
	}

	for _, opts := range invalid {
		idx := New[int](opts)
		err := idx.Load([]Point[int]{{Lng: 1, Lat: 1}})
		is.True(errors.Is(err, ErrInvalidOptions))
	}
}

func TestClusterIDsAtTheMostDetailedZoom(t *testing.T) {
	is := is.New(t)

	opts := DefaultOptions()
	opts.MaxZoom = MaxZoom

	points := make([]Point[int], 0, 40)
	for i := 0; i < 40; i++ {
		points = append(points, Point[int]{Lng: -118.24 + float64(i)*0.0001, Lat: 34.05, Data: i})
	}

	idx := New[int](opts)
	is.NoErr(idx.Load(points))

	for _, zoom := range []int{0, 10, 30, 31, 35} {
		total := 0
		for _, c := range idx.GetClusters(-180, -90, 180, 90, zoom) {
			total += c.Count
			if c.IsCluster {
				_, err := idx.GetClusterExpansionZoom(c.ID)
				is.NoErr(err)
			}
		}
		is.Equal(total, len(points))
	}
}
