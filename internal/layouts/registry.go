package layouts

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"sitebuilder/internal/domain"
)

// userPreset is the on-disk shape of a preset file.
type userPreset struct {
	Preset   `yaml:",inline"`
	Elements []Template `yaml:"elements"`
}

// Registry serves the built-in presets plus user presets loaded from a
// directory of *.yaml files. Safe for concurrent use.
type Registry struct {
	dir string

	mu    sync.RWMutex
	order []string
	user  map[string]userPreset
}

// NewRegistry creates a registry for dir. An empty dir means built-ins only.
func NewRegistry(dir string) *Registry {
	return &Registry{dir: dir, user: make(map[string]userPreset)}
}

// Dir returns the watched presets directory.
func (r *Registry) Dir() string { return r.dir }

// Load rereads every preset file. Files that fail to parse are logged and
// skipped; a missing directory is not an error.
func (r *Registry) Load() error {
	user := make(map[string]userPreset)
	var order []string

	if r.dir != "" {
		entries, err := os.ReadDir(r.dir)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("read presets dir: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !isPresetFile(entry.Name()) {
				continue
			}
			path := filepath.Join(r.dir, entry.Name())
			p, err := readPresetFile(path)
			if err != nil {
				log.Printf("[layouts] skip %s: %v", path, err)
				continue
			}
			if IsBuiltin(p.ID) {
				log.Printf("[layouts] skip %s: %q is a built-in preset", path, p.ID)
				continue
			}
			if _, dup := user[p.ID]; dup {
				log.Printf("[layouts] skip %s: duplicate preset id %q", path, p.ID)
				continue
			}
			user[p.ID] = p
			order = append(order, p.ID)
		}
	}
	sort.Strings(order)

	r.mu.Lock()
	r.user = user
	r.order = order
	r.mu.Unlock()
	return nil
}

// Presets returns the built-ins followed by user presets sorted by id.
func (r *Registry) Presets() []Preset {
	out := Presets()
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		out = append(out, r.user[id].Preset)
	}
	return out
}

// Lookup returns the preset with id.
func (r *Registry) Lookup(id string) (Preset, bool) {
	for _, p := range Presets() {
		if p.ID == id {
			return p, true
		}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.user[id]
	return p.Preset, ok
}

// Generate instantiates a built-in or user preset. Unknown ids yield an
// empty slice.
func (r *Registry) Generate(layoutID string, newID IDFunc) []domain.Element {
	if IsBuiltin(layoutID) {
		return Generate(layoutID, newID)
	}
	r.mu.RLock()
	p, ok := r.user[layoutID]
	r.mu.RUnlock()
	if !ok {
		return []domain.Element{}
	}
	return Instantiate(p.Elements, newID)
}

func isPresetFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

func readPresetFile(path string) (userPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return userPreset{}, err
	}
	var p userPreset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return userPreset{}, fmt.Errorf("parse yaml: %w", err)
	}
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		p.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if p.Name == "" {
		p.Name = p.ID
	}
	p.Builtin = false
	return p, nil
}
