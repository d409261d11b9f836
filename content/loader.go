package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// rawDoc is the include-bearing envelope shared by blueprint and tech JSON.
type rawDoc struct {
	Include  string   `json:"include,omitempty"`
	Includes []string `json:"includes,omitempty"`
}

// loadMergedDocument resolves path's include/includes graph depth-first and
// returns the single merged JSON document that path's own content overlays
// on top of its includes, in order. visited guards against include cycles.
func loadMergedDocument(path string, visited map[string]bool) (json.RawMessage, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if visited[abs] {
		return nil, fmt.Errorf("content: include cycle at %s", path)
	}
	visited[abs] = true

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", path, err)
	}

	var env rawDoc
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("content: parse %s: %w", path, err)
	}

	var includePaths []string
	if env.Include != "" {
		includePaths = append(includePaths, env.Include)
	}
	includePaths = append(includePaths, env.Includes...)

	dir := filepath.Dir(path)
	var merged json.RawMessage
	for _, inc := range includePaths {
		incPath := inc
		if !filepath.IsAbs(incPath) {
			incPath = filepath.Join(dir, incPath)
		}
		incDoc, err := loadMergedDocument(incPath, visited)
		if err != nil {
			return nil, err
		}
		merged, err = mergePatch(merged, incDoc)
		if err != nil {
			return nil, fmt.Errorf("content: merge include %s into %s: %w", inc, path, err)
		}
	}

	merged, err = mergePatch(merged, raw)
	if err != nil {
		return nil, fmt.Errorf("content: overlay %s: %w", path, err)
	}
	return merged, nil
}

// blueprintDoc is the decoded shape of a fully-merged blueprint document.
type blueprintDoc struct {
	Resources     map[string]*Resource        `json:"resources"`
	Components    map[string]*ComponentDef    `json:"components"`
	Installations map[string]*InstallationDef `json:"installations"`
	Designs       []*ShipDesign               `json:"designs"`
}

// Load loads an ordered list of blueprint JSON paths into a fresh DB. Later
// paths in the list overlay earlier ones only in the sense that they are
// loaded into the same DB (key collisions overwrite); the include/overlay
// merge-patch semantics apply within a single path's include graph. ContentDB
// is not validated by Load; call Validate explicitly.
func Load(paths []string) (*DB, error) {
	db := New()
	for _, p := range paths {
		merged, err := loadMergedDocument(p, map[string]bool{})
		if err != nil {
			return nil, err
		}
		var doc blueprintDoc
		if err := json.Unmarshal(merged, &doc); err != nil {
			return nil, fmt.Errorf("content: decode %s: %w", p, err)
		}
		for id, r := range doc.Resources {
			r.Id = id
			db.Resources[id] = r
		}
		for id, c := range doc.Components {
			c.Id = id
			db.Components[id] = c
		}
		for id, inst := range doc.Installations {
			inst.Id = id
			db.Installations[id] = inst
		}
		for _, d := range doc.Designs {
			if err := applyDesignPatch(db, d); err != nil {
				return nil, fmt.Errorf("content: design %s in %s: %w", d.Id, p, err)
			}
		}
	}
	if err := RecomputeAllDesignStats(db); err != nil {
		return nil, err
	}
	return db, nil
}

// applyDesignPatch merges a newly-decoded design into db.Designs. If a design
// of the same id already exists, components_add/components_remove patch the
// existing component list in place rather than requiring the overlay to
// restate the full list.
func applyDesignPatch(db *DB, d *ShipDesign) error {
	existing, ok := db.Designs[d.Id]
	if !ok {
		if len(d.ComponentsAdd) > 0 || len(d.ComponentsRemove) > 0 {
			// A patch against a design that doesn't exist yet starts from
			// an empty component list.
			d.Components = applyComponentPatch(nil, d.ComponentsAdd, d.ComponentsRemove)
		}
		d.ComponentsAdd = nil
		d.ComponentsRemove = nil
		db.Designs[d.Id] = d
		return nil
	}

	if len(d.Components) > 0 {
		existing.Components = d.Components
	}
	existing.Components = applyComponentPatch(existing.Components, d.ComponentsAdd, d.ComponentsRemove)
	if d.Name != "" {
		existing.Name = d.Name
	}
	if d.Role != "" {
		existing.Role = d.Role
	}
	return nil
}

func applyComponentPatch(base []string, add, remove []string) []string {
	result := append([]string{}, base...)
	removeSet := make(map[string]bool, len(remove))
	for _, r := range remove {
		removeSet[r] = true
	}
	filtered := result[:0]
	for _, c := range result {
		if !removeSet[c] {
			filtered = append(filtered, c)
		}
	}
	filtered = append(filtered, add...)
	return filtered
}

// techDoc is the decoded shape of a fully-merged tech document.
type techDoc struct {
	Techs []*TechDef `json:"techs"`
}

// LoadTech loads an ordered list of tech JSON paths into db.Techs, following
// the same include/overlay rules as Load.
func LoadTech(paths []string, db *DB) error {
	for _, p := range paths {
		merged, err := loadMergedDocument(p, map[string]bool{})
		if err != nil {
			return err
		}
		var doc techDoc
		if err := json.Unmarshal(merged, &doc); err != nil {
			return fmt.Errorf("content: decode tech %s: %w", p, err)
		}
		for _, t := range doc.Techs {
			db.Techs[t.Id] = t
		}
	}
	return nil
}
