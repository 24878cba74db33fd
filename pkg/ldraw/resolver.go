package ldraw

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolver errors.
var (
	ErrPartNotFound = errors.New("part not found in library search path")
)

// Resolver maps referenced part names to files in an LDraw part library.
// Names are matched case-insensitively and backslash separators are
// normalized, since part files routinely reference "s\file.dat" style paths
// authored on other platforms.
type Resolver struct {
	base    string
	subdirs []string
}

// NewResolver returns a resolver over the library at base. Sub-parts are
// probed in the standard order: hi-res primitives, primitives, parts, then
// part sub-files.
func NewResolver(base string) *Resolver {
	return &Resolver{
		base: base,
		subdirs: []string{
			filepath.Join("p", "48"),
			"p",
			"parts",
			filepath.Join("parts", "s"),
		},
	}
}

// Resolve returns the path of the first existing file matching name under
// the search roots, or ErrPartNotFound.
func (r *Resolver) Resolve(name string) (string, error) {
	rel := filepath.FromSlash(strings.ReplaceAll(name, "\\", "/"))
	for _, sub := range r.subdirs {
		dir := filepath.Join(r.base, sub)
		if path, ok := lookup(dir, rel); ok {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrPartNotFound, name)
}

// lookup finds rel under dir, ignoring case. The exact and lowercased
// spellings are tried directly first; library trees are conventionally
// all-lowercase, so the directory scan is rarely needed.
func lookup(dir, rel string) (string, bool) {
	for _, cand := range []string{rel, strings.ToLower(rel)} {
		path := filepath.Join(dir, cand)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}

	cur := dir
	comps := strings.Split(filepath.ToSlash(rel), "/")
	for i, comp := range comps {
		entries, err := os.ReadDir(cur)
		if err != nil {
			return "", false
		}
		wantDir := i < len(comps)-1
		found := ""
		for _, e := range entries {
			if e.IsDir() == wantDir && strings.EqualFold(e.Name(), comp) {
				found = e.Name()
				break
			}
		}
		if found == "" {
			return "", false
		}
		cur = filepath.Join(cur, found)
	}
	return cur, true
}
