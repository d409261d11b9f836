package planners

import (
	"fmt"
	"sort"

	"github.com/nebula4x/nebula4x/geom"
	"github.com/nebula4x/nebula4x/ids"
	"github.com/nebula4x/nebula4x/rng"
	"github.com/nebula4x/nebula4x/world"
)

// MaxKMeansIterations caps the Lloyd's-algorithm refinement loop.
const MaxKMeansIterations = 25

// PartitionRegions clusters every system's galaxy_pos into k regions with
// seeded k-means++ initialization, reassigning any cluster that goes empty
// to the point farthest from its current centroid ("stolen-farthest" rule).
// A region's modifiers are the average of the existing regions of its
// member systems; newly created regions use namePrefix + " N".
func PartitionRegions(gs *world.GameState, k int, seed uint64, namePrefix string) map[ids.Id]*world.Region {
	systemIds := gs.Systems.SortedIds()
	if k <= 0 || len(systemIds) == 0 {
		return map[ids.Id]*world.Region{}
	}
	if k > len(systemIds) {
		k = len(systemIds)
	}

	points := make([]geom.Vec, len(systemIds))
	for i, id := range systemIds {
		points[i] = gs.Systems.MustGet(id).GalaxyPos
	}

	source := rng.New(seed)
	centroids := kMeansPlusPlusInit(points, k, source)
	assignments := make([]int, len(points))

	for iter := 0; iter < MaxKMeansIterations; iter++ {
		changed := false
		for i, p := range points {
			best := nearestCentroid(p, centroids)
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}

		counts := make([]int, k)
		sums := make([]geom.Vec, k)
		for i, p := range points {
			c := assignments[i]
			counts[c]++
			sums[c] = sums[c].Add(p)
		}

		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				// Stolen-farthest: reseed the empty cluster at whichever point is
				// currently farthest from its own cluster's centroid.
				farthestIdx, farthestDist := -1, -1.0
				for i, p := range points {
					d := p.Dist(centroids[assignments[i]])
					if d > farthestDist {
						farthestDist = d
						farthestIdx = i
					}
				}
				if farthestIdx >= 0 {
					centroids[c] = points[farthestIdx]
					assignments[farthestIdx] = c
				}
				continue
			}
			centroids[c] = sums[c].Scale(1.0 / float64(counts[c]))
		}

		if !changed {
			break
		}
	}

	clusterSystems := make([][]ids.Id, k)
	for i, systemId := range systemIds {
		c := assignments[i]
		clusterSystems[c] = append(clusterSystems[c], systemId)
	}

	regions := map[ids.Id]*world.Region{}
	for c := 0; c < k; c++ {
		if len(clusterSystems[c]) == 0 {
			continue
		}
		regionId := gs.NewId()
		region := averageRegionModifiers(gs, clusterSystems[c])
		region.Name = fmt.Sprintf("%s %d", namePrefix, c+1)
		region.Center = centroids[c]
		regions[regionId] = region

		for _, systemId := range clusterSystems[c] {
			sys := gs.Systems.MustGet(systemId)
			sys.RegionId = regionId
		}
	}
	return regions
}

func kMeansPlusPlusInit(points []geom.Vec, k int, source *rng.Source) []geom.Vec {
	centroids := make([]geom.Vec, 0, k)
	first := source.IntN(len(points))
	centroids = append(centroids, points[first])

	for len(centroids) < k {
		distSq := make([]float64, len(points))
		total := 0.0
		for i, p := range points {
			_, d := nearestCentroidDist(p, centroids)
			distSq[i] = d * d
			total += distSq[i]
		}
		if total <= 0 {
			centroids = append(centroids, points[source.IntN(len(points))])
			continue
		}
		target := source.Float64() * total
		cum := 0.0
		chosen := len(points) - 1
		for i, d := range distSq {
			cum += d
			if cum >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, points[chosen])
	}
	return centroids
}

func nearestCentroid(p geom.Vec, centroids []geom.Vec) int {
	idx, _ := nearestCentroidDist(p, centroids)
	return idx
}

func nearestCentroidDist(p geom.Vec, centroids []geom.Vec) (int, float64) {
	best, bestDist := 0, -1.0
	for i, c := range centroids {
		d := p.Dist(c)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best, bestDist
}

func averageRegionModifiers(gs *world.GameState, systemIds []ids.Id) *world.Region {
	region := world.DefaultRegion("")
	if len(systemIds) == 0 {
		return &region
	}

	sorted := append([]ids.Id(nil), systemIds...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var mineral, volatile, salvage, nebula, pirateRisk, pirateSuppression, ruins float64
	count := 0.0
	for _, systemId := range sorted {
		sys := gs.Systems.MustGet(systemId)
		existing, ok := gs.Regions[sys.RegionId]
		if !ok {
			continue
		}
		mineral += existing.MineralRichnessMult
		volatile += existing.VolatileRichnessMult
		salvage += existing.SalvageRichnessMult
		nebula += existing.NebulaBias
		pirateRisk += existing.PirateRisk
		pirateSuppression += existing.PirateSuppression
		ruins += existing.RuinsDensity
		count++
	}
	if count == 0 {
		return &region
	}
	region.MineralRichnessMult = mineral / count
	region.VolatileRichnessMult = volatile / count
	region.SalvageRichnessMult = salvage / count
	region.NebulaBias = nebula / count
	region.PirateRisk = pirateRisk / count
	region.PirateSuppression = pirateSuppression / count
	region.RuinsDensity = ruins / count
	return &region
}
