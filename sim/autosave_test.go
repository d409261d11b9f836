package sim

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nebula4x/nebula4x/content"
)

func TestAutosaveRotatesAndPrunesOldestFiles(t *testing.T) {
	db := content.New()
	dir := t.TempDir()
	s := NewGame(db, Config{
		AutosaveDir:           dir,
		AutosavePrefix:        "autosave_",
		AutosaveIntervalHours: 1,
		AutosaveKeepFiles:     3,
	})

	s.AdvanceHours(8)

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.LessOrEqual(t, len(entries), 3)
	assert.NotEmpty(t, entries)
}

func TestAutosaveDisabledWhenIntervalIsZero(t *testing.T) {
	db := content.New()
	dir := t.TempDir()
	s := NewGame(db, Config{AutosaveDir: dir})

	s.AdvanceHours(48)

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAutosaveImmediateWriteAndPrune(t *testing.T) {
	db := content.New()
	dir := t.TempDir()
	s := NewGame(db, Config{AutosaveDir: dir, AutosavePrefix: "snap_", AutosaveKeepFiles: 1})

	assert.NoError(t, s.Autosave())
	s.AdvanceHours(24)
	assert.NoError(t, s.Autosave())

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}
