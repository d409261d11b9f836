package sim

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nebula4x/nebula4x/log"
	"github.com/nebula4x/nebula4x/world"
)

// autosaveExt is the file extension autosave snapshots use; the save format
// itself is plain JSON regardless of extension.
const autosaveExt = "json"

// autosaveEpoch anchors simulated day 0 to a calendar date purely so
// autosave filenames can carry a human-readable YYYY-MM-DD the way spec's
// autosave directory layout names them. GameState's own Date stays a bare
// day count; no other component depends on this mapping.
var autosaveEpoch = time.Date(2200, time.January, 1, 0, 0, 0, 0, time.UTC)

// autosaveTick advances the opportunistic autosave budget by hours of
// simulated time and, once cfg.AutosaveIntervalHours have accumulated,
// writes a snapshot and prunes the directory down to cfg.AutosaveKeepFiles.
// A zero AutosaveIntervalHours or empty AutosaveDir disables autosave
// entirely. Write/prune errors are logged as SimEvents, never fatal, per
// spec's "best-effort" autosave budget.
func (s *Simulation) autosaveTick(hours float64) {
	cfg := s.Config
	if cfg.AutosaveDir == "" || cfg.AutosaveIntervalHours <= 0 {
		return
	}
	s.autosaveHoursAccum += hours
	if s.autosaveHoursAccum < cfg.AutosaveIntervalHours {
		return
	}
	s.autosaveHoursAccum = 0

	if err := s.writeAutosaveSnapshot(); err != nil {
		s.GS.EmitFor(world.LevelWarn, "autosave", err.Error(), 0, 0, 0, 0)
		log.Warn("autosave write failed", log.F("error", err.Error()), log.F("dir", s.Config.AutosaveDir))
		return
	}
	log.Debug("autosave snapshot written", log.F("dir", s.Config.AutosaveDir), log.F("day", s.GS.Date.Days))
	if err := s.pruneAutosaves(); err != nil {
		s.GS.EmitFor(world.LevelWarn, "autosave", err.Error(), 0, 0, 0, 0)
		log.Warn("autosave prune failed", log.F("error", err.Error()), log.F("dir", s.Config.AutosaveDir))
	}
}

// Autosave immediately writes a snapshot and prunes the directory,
// bypassing the interval budget. Used by callers (CLI shutdown, explicit
// save-now commands) that want an autosave written right away.
func (s *Simulation) Autosave() error {
	if s.Config.AutosaveDir == "" {
		return nil
	}
	if err := s.writeAutosaveSnapshot(); err != nil {
		return err
	}
	return s.pruneAutosaves()
}

func (s *Simulation) writeAutosaveSnapshot() error {
	if err := os.MkdirAll(s.Config.AutosaveDir, 0o755); err != nil {
		return fmt.Errorf("sim: autosave mkdir: %w", err)
	}
	path, err := s.nextAutosavePath()
	if err != nil {
		return err
	}
	return s.SaveGame(path)
}

// nextAutosavePath builds <prefix><YYYY-MM-DD>_<HH>h[.N].<ext>, appending a
// ".N" disambiguator if that base name is already taken in the directory
// (possible once AutosaveIntervalHours < 1 lets more than one snapshot land
// in the same simulated hour).
func (s *Simulation) nextAutosavePath() (string, error) {
	calendar := autosaveEpoch.AddDate(0, 0, int(s.GS.Date.Days))
	base := fmt.Sprintf("%s%04d-%02d-%02d_%02dh", s.Config.AutosavePrefix,
		calendar.Year(), calendar.Month(), calendar.Day(), s.GS.Date.HourOfDay)

	path := filepath.Join(s.Config.AutosaveDir, base+"."+autosaveExt)
	for n := 1; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		} else if err != nil {
			return "", fmt.Errorf("sim: autosave stat: %w", err)
		}
		path = filepath.Join(s.Config.AutosaveDir, fmt.Sprintf("%s.%d.%s", base, n, autosaveExt))
	}
}

// pruneAutosaves deletes the oldest autosave snapshots (by mtime) beyond
// cfg.AutosaveKeepFiles, matching spec's directory-scan/prune rule.
func (s *Simulation) pruneAutosaves() error {
	keep := s.Config.AutosaveKeepFiles
	if keep <= 0 {
		return nil
	}

	entries, err := os.ReadDir(s.Config.AutosaveDir)
	if err != nil {
		return fmt.Errorf("sim: autosave scan: %w", err)
	}

	type snapshot struct {
		path    string
		modTime time.Time
	}
	var snapshots []snapshot
	prefix := s.Config.AutosavePrefix
	suffix := "." + autosaveExt
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, suffix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		snapshots = append(snapshots, snapshot{path: filepath.Join(s.Config.AutosaveDir, name), modTime: info.ModTime()})
	}

	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].modTime.After(snapshots[j].modTime) })

	for _, snap := range snapshots[min(keep, len(snapshots)):] {
		if err := os.Remove(snap.path); err != nil {
			return fmt.Errorf("sim: autosave prune: %w", err)
		}
	}
	return nil
}
