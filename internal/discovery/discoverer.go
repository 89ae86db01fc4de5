package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"runtests/internal/domain"
)

// ErrNoTests is returned when the inputs do not name a single test
var ErrNoTests = errors.New("no matching tests found")

// Discoverer turns file and directory arguments into make target names
type Discoverer struct {
	scanner  *Scanner
	filter   *Filter
	platform domain.Platform
	root     string
}

// NewDiscoverer creates a Discoverer producing target names for platform
func NewDiscoverer(scanner *Scanner, filter *Filter, platform domain.Platform) *Discoverer {
	return &Discoverer{
		scanner:  scanner,
		filter:   filter,
		platform: platform,
		root:     ".",
	}
}

// SetPlatform changes the platform used for target names
func (d *Discoverer) SetPlatform(platform domain.Platform) {
	d.platform = platform
}

// SetRoot sets the directory relative test paths are resolved against
func (d *Discoverer) SetRoot(root string) {
	d.root = root
}

// SetSkipDirs sets the directory names never descended into
func (d *Discoverer) SetSkipDirs(dirs []string) {
	d.scanner.SetSkipDirs(dirs)
}

// Discover returns the target names for paths, optionally narrowed by a name
// pattern. Directories contribute every test source below them; anything
// else is taken as given. The result is sorted, but callers should not
// depend on the order.
func (d *Discoverer) Discover(paths []string, pattern string) ([]string, error) {
	files, err := d.Sources(paths, pattern)
	if err != nil {
		return nil, err
	}
	return uniqueSorted(MapNames(files, d.platform)), nil
}

// Sources returns the test source paths selected by paths and pattern,
// before they are mapped to targets.
func (d *Discoverer) Sources(paths []string, pattern string) ([]string, error) {
	files, err := d.Files(paths)
	if err != nil {
		return nil, err
	}

	files = d.filter.FilterByName(files, pattern)
	if len(files) == 0 {
		return nil, ErrNoTests
	}
	return files, nil
}

// Files returns the test source paths named by paths, before mapping.
// Relative paths are looked up below the root and stay relative to it.
func (d *Discoverer) Files(paths []string) ([]string, error) {
	var folders, nonfolders []string
	for _, p := range paths {
		if info, err := os.Stat(Resolve(d.root, p)); err == nil && info.IsDir() {
			folders = append(folders, p)
			continue
		}
		nonfolders = append(nonfolders, p)
	}

	files := append([]string{}, nonfolders...)
	for _, folder := range folders {
		resolved := Resolve(d.root, folder)
		found, err := d.scanner.Scan(resolved)
		if err != nil {
			return nil, fmt.Errorf("discover tests: %w", err)
		}
		if resolved == folder {
			files = append(files, found...)
			continue
		}
		for _, file := range found {
			rel, err := filepath.Rel(resolved, file)
			if err != nil {
				return nil, fmt.Errorf("discover tests: %w", err)
			}
			files = append(files, filepath.Join(folder, rel))
		}
	}

	return uniqueSorted(files), nil
}

// Resolve returns path as seen from the working directory when it is
// relative to root
func Resolve(root, path string) string {
	if root == "" || root == "." || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func uniqueSorted(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
