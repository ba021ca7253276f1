package dotfiles

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/envmgr/envmgr/pkg/errors"
	"github.com/envmgr/envmgr/pkg/paths"
	"github.com/envmgr/envmgr/pkg/types"
)

// Layer is one dotfiles tree participating in resolution. Later layers
// override earlier ones.
type Layer struct {
	Name string
	Root string
}

// LayersFor builds the layer list for a resolution chain. The base tree is
// always the bottom layer, even for environments that declare no base;
// chain environments follow in inheritance order (root first).
func LayersFor(p *paths.Paths, chain []string) []Layer {
	layers := []Layer{{Name: types.BaseEnvName, Root: p.DotfilesDir(types.BaseEnvName)}}
	for _, name := range chain {
		if name == types.BaseEnvName {
			continue
		}
		layers = append(layers, Layer{Name: name, Root: p.DotfilesDir(name)})
	}
	return layers
}

// CollectTree walks one dotfiles tree and maps each relative path to the
// absolute path of its regular file. A missing root yields an empty map.
// Symlinks inside the tree are not followed (avoids cycles); directories
// are structure, not entries. Two files collapsing onto one relative path
// fail fast with ErrConfigParse.
func CollectTree(fsys types.FS, root string) (map[string]string, error) {
	files := make(map[string]string)

	if _, err := fsys.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return files, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to access dotfiles tree %s", root)
	}

	if err := collectDir(fsys, root, root, files); err != nil {
		return nil, err
	}
	return files, nil
}

func collectDir(fsys types.FS, root, dir string, files map[string]string) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", dir)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.Type()&os.ModeSymlink != 0 {
			continue
		}
		if entry.IsDir() {
			if err := collectDir(fsys, root, path, files); err != nil {
				return err
			}
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInternal, "failed to compute relative path for %s", path)
		}
		if prev, exists := files[rel]; exists {
			return errors.Newf(errors.ErrConfigParse,
				"duplicate dotfile path %q in %s (already supplied by %s)", rel, root, prev)
		}
		files[rel] = path
	}
	return nil
}

// ResolveEntries computes the authoritative DotfileEntry set for a stack of
// layers. For a path present in several layers the topmost copy wins, the
// same precedence direction as variables. Output is sorted by relative path
// and is idempotent over an unchanged tree.
func ResolveEntries(fsys types.FS, layers []Layer) ([]types.DotfileEntry, error) {
	merged := make(map[string]types.DotfileEntry)

	for _, layer := range layers {
		tree, err := CollectTree(fsys, layer.Root)
		if err != nil {
			return nil, err
		}
		for rel, source := range tree {
			merged[rel] = types.DotfileEntry{
				RelPath: rel,
				Source:  source,
				Layer:   layer.Name,
			}
		}
	}

	rels := make([]string, 0, len(merged))
	for rel := range merged {
		rels = append(rels, rel)
	}
	sort.Strings(rels)

	entries := make([]types.DotfileEntry, 0, len(rels))
	for _, rel := range rels {
		entries = append(entries, merged[rel])
	}
	return entries, nil
}
