package scenario

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nebula4x/nebula4x/content"
)

func TestNewGameCreatesHomeColony(t *testing.T) {
	db := content.New()
	gs := NewGame(db)

	assert.Equal(t, 1, gs.Factions.Len())
	assert.Equal(t, 1, gs.Colonies.Len())
	assert.Equal(t, 1, gs.Systems.Len())
}

func TestNewGameRandomLinksAllSystems(t *testing.T) {
	db := content.New()
	gs := NewGameRandom(db, 7, 4)

	assert.Equal(t, 4, gs.Systems.Len())
	assert.GreaterOrEqual(t, gs.Factions.Len(), 1)

	reachable := map[uint64]bool{}
	var visit func(sysId uint64)
	systemIds := gs.Systems.SortedIds()
	idx := map[uint64]int{}
	for i, id := range systemIds {
		idx[uint64(id)] = i
	}
	visit = func(sysId uint64) {
		if reachable[sysId] {
			return
		}
		reachable[sysId] = true
		sys := gs.Systems.MustGet(systemIds[idx[sysId]])
		for _, jpId := range sys.JumpPointIds {
			jp := gs.JumpPoints.MustGet(jpId)
			if linked, ok := gs.JumpPoints.Get(jp.LinkedJumpId); ok {
				visit(uint64(linked.SystemId))
			}
		}
	}
	visit(uint64(systemIds[0]))
	assert.Len(t, reachable, len(systemIds), "every system must be reachable from the first via jump links")
}

func TestLoadManifestDefaultsSystemsToOne(t *testing.T) {
	path := t.TempDir() + "/scenario.yaml"
	assert.NoError(t, os.WriteFile(path, []byte("name: test-run\nseed: 9\n"), 0o644))

	m, err := LoadManifest(path)
	assert.NoError(t, err)
	assert.Equal(t, "test-run", m.Name)
	assert.Equal(t, uint64(9), m.Seed)
	assert.Equal(t, 1, m.Systems)
}
