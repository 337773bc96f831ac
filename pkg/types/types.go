package types

import "encoding/json"

// Filter restricts a map query. RequestTypes and NCList are sets, an empty set
// does not restrict the query on that dimension.
type Filter struct {
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	RequestTypes []string `json:"requestTypes"`
	NCList       []string `json:"ncList"`
}

// NewFilter copies requestTypes and ncList into slices owned by the returned
// filter, so callers never share backing arrays through a Filter.
func NewFilter(startDate, endDate string, requestTypes, ncList []string) Filter {
	f := Filter{
		StartDate:    startDate,
		EndDate:      endDate,
		RequestTypes: make([]string, 0, len(requestTypes)),
		NCList:       make([]string, 0, len(ncList)),
	}

	f.RequestTypes = append(f.RequestTypes, requestTypes...)
	f.NCList = append(f.NCList, ncList...)

	return f
}

type Pin struct {
	SRNumber    string  `json:"srnumber"`
	RequestType string  `json:"requesttype"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Cluster is either a single pin (Count == 1, SRNumber and RequestType set,
// no ExpansionZoom) or an aggregate of pins.
type Cluster struct {
	ID            int     `json:"id"`
	Count         int     `json:"count"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	ExpansionZoom *int    `json:"expansion_zoom,omitempty"`
	SRNumber      string  `json:"srnumber,omitempty"`
	RequestType   string  `json:"requesttype,omitempty"`
}

func (c Cluster) IsAggregate() bool {
	return c.Count > 1
}

type PinRecord struct {
	SRNumber    string  `json:"srnumber"`
	RequestType string  `json:"requesttype"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Count       int     `json:"count"`
}

type NCAggregate struct {
	ID            string  `json:"id"`
	Count         int     `json:"count"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	ExpansionZoom int     `json:"expansion_zoom"`
}

// PinsResult is either a list of individual pins or, in overview mode, a list of
// neighborhood council aggregates. It serializes as a plain JSON array.
type PinsResult struct {
	Overview   bool
	Pins       []PinRecord
	Aggregates []NCAggregate
}

func (r PinsResult) Len() int {
	if r.Overview {
		return len(r.Aggregates)
	}
	return len(r.Pins)
}

func (r PinsResult) MarshalJSON() ([]byte, error) {
	if r.Overview {
		if r.Aggregates == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(r.Aggregates)
	}

	if r.Pins == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.Pins)
}

type NCCount struct {
	NC    string
	Count int
}

type Centroid struct {
	NC        string  `json:"nc"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Coordinate is a latitude, longitude pair and is serialized as a two element array.
type Coordinate [2]float64

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{lat, lon}
}

func (c Coordinate) Latitude() float64 {
	return c[0]
}

func (c Coordinate) Longitude() float64 {
	return c[1]
}

// Bounds as received from a client. Missing edges default to the whole world.
type Bounds struct {
	North *float64 `json:"north,omitempty"`
	South *float64 `json:"south,omitempty"`
	East  *float64 `json:"east,omitempty"`
	West  *float64 `json:"west,omitempty"`
}

type Box struct {
	North float64
	South float64
	East  float64
	West  float64
}

func (b Bounds) Box() Box {
	return Box{
		North: valueOr(b.North, 90),
		South: valueOr(b.South, -90),
		East:  valueOr(b.East, 180),
		West:  valueOr(b.West, -180),
	}
}

// ClusterOptions as received from a client. Missing values are replaced by the
// service defaults.
type ClusterOptions struct {
	MinZoom *int     `json:"min_zoom,omitempty"`
	MaxZoom *int     `json:"max_zoom,omitempty"`
	Radius  *float64 `json:"radius,omitempty"`
	Extent  *int     `json:"extent,omitempty"`
}

type ClustersQuery struct {
	StartDate    string         `json:"startDate"`
	EndDate      string         `json:"endDate"`
	RequestTypes []string       `json:"requestTypes,omitempty"`
	NCList       []string       `json:"ncList,omitempty"`
	Zoom         int            `json:"zoom"`
	Bounds       Bounds         `json:"bounds"`
	Options      ClusterOptions `json:"options"`
}

func (q ClustersQuery) Filter() Filter {
	return NewFilter(q.StartDate, q.EndDate, q.RequestTypes, q.NCList)
}

type HeatmapQuery struct {
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	RequestTypes []string `json:"requestTypes,omitempty"`
	NCList       []string `json:"ncList,omitempty"`
}

func (q HeatmapQuery) Filter() Filter {
	return NewFilter(q.StartDate, q.EndDate, q.RequestTypes, q.NCList)
}

func valueOr[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}
