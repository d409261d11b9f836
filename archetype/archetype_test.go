package archetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScorePerfectMatchIsOne(t *testing.T) {
	a := Balanced()
	score := a.Score(a.HomeHabitability.TempCenterK, a.HomeHabitability.AtmCenterAtm)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestScoreOutsideToleranceIsZero(t *testing.T) {
	a := Balanced()
	score := a.Score(a.HomeHabitability.TempCenterK+1000, a.HomeHabitability.AtmCenterAtm)
	assert.Equal(t, 0.0, score)
}

func TestRandomWithSeedIsDeterministic(t *testing.T) {
	a := RandomWithSeed(123)
	b := RandomWithSeed(123)
	assert.Equal(t, a.Name, b.Name)
}

func TestAllReturnsFivePredefinedArchetypes(t *testing.T) {
	assert.Len(t, All(), 5)
}
