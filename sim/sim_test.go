package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nebula4x/nebula4x/content"
)

func TestNewGameAdvancesWithoutPanicking(t *testing.T) {
	db := content.New()
	s := NewGame(db, Config{AISeed: 42})

	assert.Equal(t, 1, s.GS.Factions.Len())
	s.AdvanceDays(5)
	assert.Equal(t, int64(5), s.GS.Date.Days)
}

func TestAdvanceHoursAdvancesHourOfDay(t *testing.T) {
	db := content.New()
	s := NewGameRandom(db, 3, Config{AISeed: 7})

	var bodyId = s.GS.Bodies.SortedIds()[0]
	before := s.GS.Bodies.MustGet(bodyId).PositionMkm

	s.AdvanceHours(12)

	after := s.GS.Bodies.MustGet(bodyId).PositionMkm
	_ = before
	_ = after
	// Stars sit at the origin with zero radius, so position need not move;
	// this just exercises the tick pipeline end-to-end without panicking.
	assert.Equal(t, int(12), s.GS.Date.HourOfDay)
}

func TestSaveAndLoadGameRoundTrips(t *testing.T) {
	db := content.New()
	s := NewGame(db, Config{})
	s.AdvanceDays(1)

	path := t.TempDir() + "/save.json"
	assert.NoError(t, s.SaveGame(path))

	loaded, err := LoadGame(path, db, Config{})
	assert.NoError(t, err)
	assert.Equal(t, s.GS.Date.Days, loaded.GS.Date.Days)
	assert.Equal(t, s.GS.Factions.Len(), loaded.GS.Factions.Len())
}

func TestValidateAndFixState(t *testing.T) {
	db := content.New()
	s := NewGame(db, Config{})

	issues := s.Validate()
	s.FixState()
	assert.Equal(t, issues, s.Validate())
}
