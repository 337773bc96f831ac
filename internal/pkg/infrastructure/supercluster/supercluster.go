// Package supercluster implements hierarchical greedy clustering of geographic
// points. One KD-tree is built per zoom level, from the most detailed level down
// to the least detailed, each level clustering the output of the level above it.
package supercluster

import (
	"errors"
	"fmt"
	"math"

	"github.com/hackforla/map-service/internal/pkg/infrastructure/kdbush"
)

var (
	ErrClusterNotFound = errors.New("cluster not found")
	ErrInvalidOptions  = errors.New("invalid options")
)

// MaxZoom is the most detailed zoom level an index can be built for. Cluster
// ids keep the originating zoom in five bits.
const MaxZoom int = 30

type Options struct {
	MinZoom  int
	MaxZoom  int
	Radius   float64
	Extent   int
	NodeSize int
}

func DefaultOptions() Options {
	return Options{
		MinZoom:  0,
		MaxZoom:  17,
		Radius:   200,
		Extent:   512,
		NodeSize: kdbush.DefaultNodeSize,
	}
}

// Validate checks that the zoom range is within [0, MaxZoom], that the radius is
// not negative and that the extent is positive.
func (o Options) Validate() error {
	if o.MinZoom < 0 || o.MaxZoom > MaxZoom {
		return fmt.Errorf("%w: zoom range %d-%d is outside 0-%d", ErrInvalidOptions, o.MinZoom, o.MaxZoom, MaxZoom)
	}
	if o.MaxZoom < o.MinZoom {
		return fmt.Errorf("%w: max zoom %d is below min zoom %d", ErrInvalidOptions, o.MaxZoom, o.MinZoom)
	}
	if o.Radius < 0 || math.IsNaN(o.Radius) || math.IsInf(o.Radius, 0) {
		return fmt.Errorf("%w: radius must be a non negative number, got %v", ErrInvalidOptions, o.Radius)
	}
	if o.Extent <= 0 {
		return fmt.Errorf("%w: extent must be positive, got %d", ErrInvalidOptions, o.Extent)
	}
	return nil
}

// Point is an input point. Data travels with the point through the index and is
// handed back for clusters that consist of this point only.
type Point[T any] struct {
	Lng, Lat float64
	Data     T
}

// Cluster is an element of a query result. For an aggregate IsCluster is true and
// Count is the number of points below it. For a single point ID is the position of
// the point in the loaded slice and Data is its payload.
type Cluster[T any] struct {
	ID        int
	Lng, Lat  float64
	Count     int
	IsCluster bool
	Data      T
}

type node struct {
	x, y      float64
	zoom      int
	index     int
	id        int
	parentID  int
	numPoints int
}

func (n *node) isCluster() bool {
	return n.numPoints > 0
}

func (n *node) weight() int {
	if n.numPoints > 0 {
		return n.numPoints
	}
	return 1
}

type Index[T any] struct {
	opts   Options
	points []Point[T]
	trees  []*kdbush.KDBush[*node]
}

func New[T any](opts Options) *Index[T] {
	if opts.NodeSize <= 0 {
		opts.NodeSize = kdbush.DefaultNodeSize
	}
	return &Index[T]{opts: opts}
}

// Load replaces any previously loaded points and builds the trees for every
// zoom level between MinZoom and MaxZoom+1.
func (idx *Index[T]) Load(points []Point[T]) error {
	if err := idx.opts.Validate(); err != nil {
		return err
	}

	idx.points = points
	idx.trees = make([]*kdbush.KDBush[*node], idx.opts.MaxZoom+2-idx.opts.MinZoom)

	nodes := make([]*node, 0, len(points))
	for i, p := range points {
		nodes = append(nodes, &node{
			x:        lngX(p.Lng),
			y:        latY(p.Lat),
			zoom:     math.MaxInt,
			index:    i,
			id:       -1,
			parentID: -1,
		})
	}

	idx.setTree(idx.opts.MaxZoom+1, nodes)

	for z := idx.opts.MaxZoom; z >= idx.opts.MinZoom; z-- {
		nodes = idx.cluster(nodes, z)
		idx.setTree(z, nodes)
	}

	return nil
}

// GetClusters returns the clusters and points inside the bounding box at the
// given zoom. Longitudes wrap, so a box with west > east crosses the antimeridian.
func (idx *Index[T]) GetClusters(west, south, east, north float64, zoom int) []Cluster[T] {
	minLng := math.Mod(math.Mod(west+180, 360)+360, 360) - 180
	minLat := math.Max(-90, math.Min(90, south))
	maxLng := 180.0
	if east != 180 {
		maxLng = math.Mod(math.Mod(east+180, 360)+360, 360) - 180
	}
	maxLat := math.Max(-90, math.Min(90, north))

	if east-west >= 360 {
		minLng = -180
		maxLng = 180
	} else if minLng > maxLng {
		eastern := idx.GetClusters(minLng, minLat, 180, maxLat, zoom)
		western := idx.GetClusters(-180, minLat, maxLng, maxLat, zoom)
		return append(eastern, western...)
	}

	tree := idx.tree(idx.limitZoom(zoom))
	if tree == nil {
		return []Cluster[T]{}
	}

	ids := tree.Range(lngX(minLng), latY(maxLat), lngX(maxLng), latY(minLat))
	result := make([]Cluster[T], 0, len(ids))
	for _, id := range ids {
		result = append(result, idx.toCluster(tree.Points[id].Data))
	}

	return result
}

// GetChildren returns the clusters and points one zoom level below the cluster.
func (idx *Index[T]) GetChildren(clusterID int) ([]Cluster[T], error) {
	originIdx := idx.originIdx(clusterID)
	originZoom := idx.originZoom(clusterID)

	tree := idx.tree(originZoom)
	if tree == nil || originIdx < 0 || originIdx >= tree.Len() {
		return nil, fmt.Errorf("%w: %d", ErrClusterNotFound, clusterID)
	}

	origin := tree.Points[originIdx].Data
	r := idx.opts.Radius / (float64(idx.opts.Extent) * math.Pow(2, float64(originZoom-1)))

	children := []Cluster[T]{}
	for _, id := range tree.Within(origin.x, origin.y, r) {
		n := tree.Points[id].Data
		if n.parentID == clusterID {
			children = append(children, idx.toCluster(n))
		}
	}

	if len(children) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrClusterNotFound, clusterID)
	}

	return children, nil
}

// GetLeaves returns up to limit of the points below the cluster, skipping offset.
func (idx *Index[T]) GetLeaves(clusterID, limit, offset int) ([]Point[T], error) {
	leaves := []Point[T]{}
	_, err := idx.appendLeaves(&leaves, clusterID, limit, offset, 0)
	return leaves, err
}

// GetClusterExpansionZoom returns the zoom at which the cluster splits into more
// than one child.
func (idx *Index[T]) GetClusterExpansionZoom(clusterID int) (int, error) {
	expansionZoom := idx.originZoom(clusterID) - 1

	for expansionZoom <= idx.opts.MaxZoom {
		children, err := idx.GetChildren(clusterID)
		if err != nil {
			return 0, err
		}

		expansionZoom++
		if len(children) != 1 || !children[0].IsCluster {
			break
		}
		clusterID = children[0].ID
	}

	return expansionZoom, nil
}

func (idx *Index[T]) appendLeaves(result *[]Point[T], clusterID, limit, offset, skipped int) (int, error) {
	children, err := idx.GetChildren(clusterID)
	if err != nil {
		return skipped, err
	}

	for _, child := range children {
		if child.IsCluster {
			if skipped+child.Count <= offset {
				skipped += child.Count
			} else {
				skipped, err = idx.appendLeaves(result, child.ID, limit, offset, skipped)
				if err != nil {
					return skipped, err
				}
			}
		} else if skipped < offset {
			skipped++
		} else {
			*result = append(*result, idx.points[child.ID])
		}

		if len(*result) == limit {
			break
		}
	}

	return skipped, nil
}

func (idx *Index[T]) cluster(nodes []*node, zoom int) []*node {
	clusters := make([]*node, 0, len(nodes))
	r := idx.opts.Radius / (float64(idx.opts.Extent) * math.Pow(2, float64(zoom)))
	tree := idx.tree(zoom + 1)

	for i, p := range nodes {
		if p.zoom <= zoom {
			continue
		}
		p.zoom = zoom

		neighbors := tree.Within(p.x, p.y, r)

		numPointsOrigin := p.weight()
		numPoints := numPointsOrigin
		for _, id := range neighbors {
			b := tree.Points[id].Data
			if b.zoom > zoom {
				numPoints += b.weight()
			}
		}

		if numPoints == numPointsOrigin {
			clusters = append(clusters, p)
			continue
		}

		wx := p.x * float64(numPointsOrigin)
		wy := p.y * float64(numPointsOrigin)

		// the id encodes the seed position and the zoom of the tree it was found in
		id := (i << 5) + (zoom + 1) + len(idx.points)

		for _, nid := range neighbors {
			b := tree.Points[nid].Data
			if b.zoom <= zoom {
				continue
			}
			b.zoom = zoom

			w := float64(b.weight())
			wx += b.x * w
			wy += b.y * w
			b.parentID = id
		}

		p.parentID = id
		clusters = append(clusters, &node{
			x:         wx / float64(numPoints),
			y:         wy / float64(numPoints),
			zoom:      math.MaxInt,
			index:     -1,
			id:        id,
			parentID:  -1,
			numPoints: numPoints,
		})
	}

	return clusters
}

func (idx *Index[T]) toCluster(n *node) Cluster[T] {
	if n.isCluster() {
		return Cluster[T]{
			ID:        n.id,
			Lng:       xLng(n.x),
			Lat:       yLat(n.y),
			Count:     n.numPoints,
			IsCluster: true,
		}
	}

	p := idx.points[n.index]
	return Cluster[T]{
		ID:    n.index,
		Lng:   p.Lng,
		Lat:   p.Lat,
		Count: 1,
		Data:  p.Data,
	}
}

func (idx *Index[T]) setTree(zoom int, nodes []*node) {
	points := make([]kdbush.Point[*node], len(nodes))
	for i, n := range nodes {
		points[i] = kdbush.Point[*node]{X: n.x, Y: n.y, Data: n}
	}
	idx.trees[zoom-idx.opts.MinZoom] = kdbush.New(points, idx.opts.NodeSize)
}

func (idx *Index[T]) tree(zoom int) *kdbush.KDBush[*node] {
	i := zoom - idx.opts.MinZoom
	if i < 0 || i >= len(idx.trees) {
		return nil
	}
	return idx.trees[i]
}

func (idx *Index[T]) limitZoom(zoom int) int {
	if zoom > idx.opts.MaxZoom+1 {
		zoom = idx.opts.MaxZoom + 1
	}
	if zoom < idx.opts.MinZoom {
		zoom = idx.opts.MinZoom
	}
	return zoom
}

func (idx *Index[T]) originIdx(clusterID int) int {
	return (clusterID - len(idx.points)) >> 5
}

func (idx *Index[T]) originZoom(clusterID int) int {
	return (clusterID - len(idx.points)) % 32
}
