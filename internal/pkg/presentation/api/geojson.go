package api

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/hackforla/map-service/pkg/types"
)

func NewFeatureCollectionWithClusters(clusters []types.Cluster) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, c := range clusters {
		fc.Append(ConvertCluster(c))
	}

	return fc
}

// ConvertCluster returns a point feature with properties named the way map
// clients expect clustered sources to look.
func ConvertCluster(c types.Cluster) *geojson.Feature {
	f := geojson.NewFeature(orb.Point{c.Longitude, c.Latitude})
	f.ID = c.ID

	if c.ExpansionZoom != nil {
		f.Properties["cluster"] = true
		f.Properties["cluster_id"] = c.ID
		f.Properties["point_count"] = c.Count
		f.Properties["expansion_zoom"] = *c.ExpansionZoom
		return f
	}

	f.Properties["cluster"] = false
	f.Properties["srnumber"] = c.SRNumber
	f.Properties["requesttype"] = c.RequestType

	return f
}
