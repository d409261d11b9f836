package planners

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nebula4x/nebula4x/geom"
	"github.com/nebula4x/nebula4x/world"
)

func TestPartitionRegionsAssignsEverySystem(t *testing.T) {
	gs := world.New()
	positions := []geom.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 50, Y: 50}, {X: 51, Y: 51}}
	for _, p := range positions {
		sys := &world.StarSystem{Id: gs.NewId(), GalaxyPos: p}
		gs.Systems.Set(sys.Id, sys)
	}

	regions := PartitionRegions(gs, 2, 42, "Region")

	assert.Len(t, regions, 2)
	for _, sysId := range gs.Systems.SortedIds() {
		sys := gs.Systems.MustGet(sysId)
		assert.NotEqual(t, uint64(0), uint64(sys.RegionId))
		_, ok := regions[sys.RegionId]
		assert.True(t, ok)
	}
}
