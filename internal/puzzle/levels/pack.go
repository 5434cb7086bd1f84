package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"gopkg.in/yaml.v3"
)

const packFile = "pack.yaml"

//go:embed data
var builtinFS embed.FS

// Pack is an ordered world of levels.
type Pack struct {
	ID     string
	Title  string
	Order  int
	Levels []Level
}

// packYAML is the pack.yaml structure.
type packYAML struct {
	ID     string   `yaml:"id"`
	Title  string   `yaml:"title"`
	Order  int      `yaml:"order"`
	Levels []string `yaml:"levels"`
}

// LoadPacks reads every directory of fsys that holds a pack.yaml. Each
// listed level must exist in the pack's directory and parse cleanly.
// Packs are sorted by order, then ID.
func LoadPacks(fsys fs.FS) ([]Pack, error) {
	var manifests []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == packFile {
			manifests = append(manifests, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning packs: %w", err)
	}

	packs := make([]Pack, 0, len(manifests))
	for _, m := range manifests {
		p, err := loadPack(fsys, m)
		if err != nil {
			return nil, err
		}
		packs = append(packs, p)
	}

	sort.Slice(packs, func(i, j int) bool {
		if packs[i].Order != packs[j].Order {
			return packs[i].Order < packs[j].Order
		}
		return packs[i].ID < packs[j].ID
	})
	return packs, nil
}

func loadPack(fsys fs.FS, manifest string) (Pack, error) {
	data, err := fs.ReadFile(fsys, manifest)
	if err != nil {
		return Pack{}, fmt.Errorf("reading %s: %w", manifest, err)
	}
	var py packYAML
	if err := yaml.Unmarshal(data, &py); err != nil {
		return Pack{}, fmt.Errorf("parsing %s: %w", manifest, err)
	}
	if py.ID == "" {
		return Pack{}, fmt.Errorf("parsing %s: missing id", manifest)
	}
	if len(py.Levels) == 0 {
		return Pack{}, fmt.Errorf("pack %s: no levels", py.ID)
	}

	sub, err := fs.Sub(fsys, path.Dir(manifest))
	if err != nil {
		return Pack{}, fmt.Errorf("pack %s: %w", py.ID, err)
	}
	loader := NewFSLoader(sub)
	failures, err := loader.Validate()
	if err != nil {
		return Pack{}, fmt.Errorf("pack %s: %w", py.ID, err)
	}
	if len(failures) > 0 {
		files := make([]string, 0, len(failures))
		for f := range failures {
			files = append(files, f)
		}
		sort.Strings(files)
		return Pack{}, fmt.Errorf("pack %s: %w", py.ID, failures[files[0]])
	}
	loaded, err := loader.LoadAll()
	if err != nil {
		return Pack{}, fmt.Errorf("pack %s: %w", py.ID, err)
	}
	byID := make(map[string]Level, len(loaded))
	for _, lvl := range loaded {
		byID[lvl.ID] = lvl
	}

	pack := Pack{ID: py.ID, Title: py.Title, Order: py.Order}
	for _, id := range py.Levels {
		lvl, ok := byID[id]
		if !ok {
			return Pack{}, fmt.Errorf("pack %s: level %s not found", py.ID, id)
		}
		pack.Levels = append(pack.Levels, lvl)
	}
	return pack, nil
}

// Builtin returns the world packs shipped with the binary.
func Builtin() ([]Pack, error) {
	sub, err := fs.Sub(builtinFS, "data")
	if err != nil {
		return nil, err
	}
	return LoadPacks(sub)
}

// FindPack returns the pack with the given ID.
func FindPack(packs []Pack, id string) (Pack, bool) {
	for _, p := range packs {
		if p.ID == id {
			return p, true
		}
	}
	return Pack{}, false
}
