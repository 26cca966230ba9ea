package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/provider"
)

// ErrNoProviders indicates that no provider configs were found during discovery.
var ErrNoProviders = errors.New("no providers discovered")

// Providers returns the provider names under root. If explicit names are
// provided they are validated and returned in the order given, without
// duplicates. Otherwise every directory holding a config file is returned,
// sorted lexicographically.
func Providers(root string, explicit []string) ([]string, error) {
	if len(explicit) > 0 {
		return resolveExplicit(root, explicit)
	}

	pattern := filepath.Join(root, "*", provider.ConfigFile)
	found, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	names := make([]string, 0, len(found))
	for _, path := range found {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %q: %w", path, err)
		}
		if info.IsDir() {
			continue
		}
		names = append(names, filepath.Base(filepath.Dir(path)))
	}
	if len(names) == 0 {
		return nil, ErrNoProviders
	}
	sort.Strings(names)
	return names, nil
}

func resolveExplicit(root string, explicit []string) ([]string, error) {
	seen := make(map[string]struct{})
	resolved := make([]string, 0, len(explicit))
	for _, input := range explicit {
		name := strings.TrimSpace(input)
		if name == "" {
			continue
		}
		if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
			return nil, fmt.Errorf("provider %q is not a plain name", input)
		}
		path := filepath.Join(root, name, provider.ConfigFile)
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("provider %q not found: missing %s", input, path)
			}
			return nil, fmt.Errorf("stat %q: %w", path, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("provider %q: %s is a directory", input, path)
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		resolved = append(resolved, name)
	}
	if len(resolved) == 0 {
		return nil, ErrNoProviders
	}
	return resolved, nil
}
