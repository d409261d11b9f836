// Command nebula4x runs the deterministic tick-driven simulation engine
// headless: load or create a game, advance it by a number of days, and
// optionally save or dump the resulting state.
//
// Usage:
//
//	nebula4x --days N [--content PATH[;PATH...]] [--load PATH] [--save PATH] [--dump]
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/nebula4x/nebula4x/content"
	"github.com/nebula4x/nebula4x/log"
	"github.com/nebula4x/nebula4x/scenario"
	"github.com/nebula4x/nebula4x/sim"
	"github.com/nebula4x/nebula4x/world"
)

var version = "dev"

type options struct {
	Version func() `short:"V" long:"version" description:"Print version and exit"`

	Days    int    `long:"days" description:"Number of days to advance the simulation" default:"0"`
	Content string `long:"content" description:"Semicolon-separated content blueprint paths"`
	Tech    string `long:"tech" description:"Semicolon-separated tech tree paths"`
	Load    string `long:"load" description:"Load an existing save file instead of starting a new game"`
	Save    string `long:"save" description:"Write the resulting state to this path"`
	Seed     uint64 `long:"seed" description:"AI/exploration RNG seed" default:"1"`
	Systems  int    `long:"systems" description:"System count for a new random scenario (0 = fixed Sol scenario)" default:"0"`
	Scenario string `long:"scenario" description:"Path to a YAML scenario manifest overriding --seed/--systems"`
	Dump     bool   `long:"dump" description:"Print the resulting save document to stdout"`

	AutosaveDir           string  `long:"autosave-dir" description:"Directory to write opportunistic autosave snapshots to (disabled if empty)"`
	AutosavePrefix        string  `long:"autosave-prefix" description:"Filename prefix for autosave snapshots" default:"autosave_"`
	AutosaveIntervalHours float64 `long:"autosave-interval-hours" description:"Simulated hours between autosave writes (0 disables)" default:"0"`
	AutosaveKeepFiles     int     `long:"autosave-keep-files" description:"Number of newest autosave snapshots to retain" default:"5"`

	Verbose bool `long:"verbose" description:"Log engine diagnostics (content load, autosave writes, run progress) to stderr"`
}

func main() {
	var opts options
	opts.Version = func() {
		fmt.Printf("nebula4x %s\n", version)
		os.Exit(0)
	}

	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "nebula4x"
	parser.LongDescription = "A deterministic, tick-driven 4X space simulation engine"

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if opts.Verbose {
		log.SetLogger(log.NewZerologAdapter(zerolog.New(os.Stderr).With().Timestamp().Logger()))
	}

	db, err := loadContent(opts)
	if err != nil {
		return err
	}
	log.Info("content loaded", log.F("designs", len(db.Designs)), log.F("installations", len(db.Installations)))

	s, err := loadOrCreateGame(opts, db)
	if err != nil {
		return err
	}
	log.Info("game ready", log.F("day", s.GS.Date.Days), log.F("systems", s.GS.Systems.Len()))

	s.AdvanceDays(opts.Days)
	log.Info("advanced simulation", log.F("days", opts.Days), log.F("now_day", s.GS.Date.Days))

	if opts.AutosaveDir != "" {
		if err := s.Autosave(); err != nil {
			log.Warn("autosave failed", log.F("error", err.Error()))
			fmt.Fprintf(os.Stderr, "autosave: %v\n", err)
		}
	}

	if opts.Save != "" {
		if err := s.SaveGame(opts.Save); err != nil {
			return err
		}
	}

	if opts.Dump {
		data, err := world.Serialize(s.GS)
		if err != nil {
			return err
		}
		os.Stdout.Write(data)
		os.Stdout.WriteString("\n")
	}

	return nil
}

func loadContent(opts options) (*content.DB, error) {
	contentPaths := splitPaths(opts.Content, "NEBULA4X_CONTENT")
	if len(contentPaths) == 0 {
		return content.New(), nil
	}

	db, err := content.Load(contentPaths)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}

	techPaths := splitPaths(opts.Tech, "NEBULA4X_TECH")
	if len(techPaths) > 0 {
		if err := content.LoadTech(techPaths, db); err != nil {
			return nil, fmt.Errorf("load tech: %w", err)
		}
	}

	return db, nil
}

func splitPaths(flagValue, envVar string) []string {
	raw := flagValue
	if raw == "" {
		raw = os.Getenv(envVar)
	}
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, ";") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func autosaveConfig(opts options) sim.Config {
	return sim.Config{
		AISeed:                opts.Seed,
		AutosaveDir:           opts.AutosaveDir,
		AutosavePrefix:        opts.AutosavePrefix,
		AutosaveIntervalHours: opts.AutosaveIntervalHours,
		AutosaveKeepFiles:     opts.AutosaveKeepFiles,
	}
}

func loadOrCreateGame(opts options, db *content.DB) (*sim.Simulation, error) {
	if opts.Load != "" {
		s, err := sim.LoadGame(opts.Load, db, autosaveConfig(opts))
		if err != nil {
			return nil, fmt.Errorf("load game: %w", err)
		}
		return s, nil
	}

	systems := opts.Systems
	if opts.Scenario != "" {
		m, err := scenario.LoadManifest(opts.Scenario)
		if err != nil {
			return nil, err
		}
		opts.Seed, systems = m.Seed, m.Systems
	}

	cfg := autosaveConfig(opts)
	if systems > 0 {
		return sim.NewGameRandom(db, systems, cfg), nil
	}
	return sim.NewGame(db, cfg), nil
}
