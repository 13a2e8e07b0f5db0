package schedule

import (
	"sort"

	"tp-server/engine/geodist"
)

// DEFAULT_CLUSTER_RADIUS_METERS groups candidates that are an easy walk apart
// onto the same day.
const DEFAULT_CLUSTER_RADIUS_METERS = 2000.0

type cluster struct {
	members []Candidate
}

func (c *cluster) minID() string {
	min := ""
	for i, m := range c.members {
		if i == 0 || m.ID < min {
			min = m.ID
		}
	}
	return min
}

// buildClusters partitions candidates with greedy nearest-neighbor grouping: a
// candidate joins the first cluster holding any member within radiusMeters,
// otherwise it seeds a new cluster. Candidates without coordinates are grouped
// together in a final catch-all cluster. Pool sizes are small (tens of items),
// so the pairwise scan is fine without a spatial index.
func buildClusters(candidates []Candidate, radiusMeters float64) []cluster {
	if radiusMeters <= 0 {
		radiusMeters = DEFAULT_CLUSTER_RADIUS_METERS
	}

	var clusters []cluster
	var noLocation cluster
	for _, cand := range candidates {
		if !cand.HasCoords {
			noLocation.members = append(noLocation.members, cand)
			continue
		}
		joined := false
		for i := range clusters {
			if clusterContainsNearby(&clusters[i], cand, radiusMeters) {
				clusters[i].members = append(clusters[i].members, cand)
				joined = true
				break
			}
		}
		if !joined {
			clusters = append(clusters, cluster{members: []Candidate{cand}})
		}
	}
	if len(noLocation.members) > 0 {
		clusters = append(clusters, noLocation)
	}

	// Largest cluster first; ties broken by the smallest member id so the
	// processing order never depends on map iteration or insertion accidents.
	sort.SliceStable(clusters, func(i, j int) bool {
		if len(clusters[i].members) != len(clusters[j].members) {
			return len(clusters[i].members) > len(clusters[j].members)
		}
		return clusters[i].minID() < clusters[j].minID()
	})
	return clusters
}

func clusterContainsNearby(c *cluster, cand Candidate, radiusMeters float64) bool {
	for _, m := range c.members {
		if !m.HasCoords {
			continue
		}
		if geodist.HaversineMeters(m.Lat, m.Lng, cand.Lat, cand.Lng) <= radiusMeters {
			return true
		}
	}
	return false
}
