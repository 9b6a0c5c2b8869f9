package bundle

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// RootPlaceholder is the token component references may use to name the
// bundle's install root. It is substituted by the resolver before joining,
// so it never reaches the environment expander.
const RootPlaceholder = "${BUNDLE_ROOT}"

// maxLinkHops bounds the symlink walk. Anything deeper is treated as a
// cycle.
const maxLinkHops = 40

var (
	// ErrEscapesRoot is returned when a reference resolves outside the
	// bundle root, either lexically or through a symlink target.
	ErrEscapesRoot = errors.New("reference escapes the bundle root")

	// ErrSymlinkCycle is returned when following a reference's symlinks
	// revisits a path or exceeds the hop budget.
	ErrSymlinkCycle = errors.New("symlink cycle detected")
)

// Resolver maps raw component references to absolute paths confined to one
// bundle root.
type Resolver struct {
	root string
}

// NewResolver creates a resolver for the given bundle root. The root is
// made absolute once so every later containment check is a cheap string
// comparison.
func NewResolver(bundleRoot string) (*Resolver, error) {
	abs, err := filepath.Abs(bundleRoot)
	if err != nil {
		return nil, fmt.Errorf("cannot absolutize bundle root %s: %w", bundleRoot, err)
	}
	return &Resolver{root: filepath.Clean(abs)}, nil
}

// Root returns the absolute bundle root.
func (r *Resolver) Root() string {
	return r.root
}

// Rel returns path relative to the bundle root, falling back to the input
// when it cannot be expressed relatively.
func (r *Resolver) Rel(path string) string {
	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		return path
	}
	return rel
}

// Resolve maps a raw reference to an existing absolute path inside the
// bundle root. The ${BUNDLE_ROOT} token is substituted first, relative
// references join onto the root, and the cleaned result must stay inside
// it. The path is then walked one component at a time, following symlinks
// at every step with a visited set, so an intermediate symlinked directory
// cannot smuggle the resolution outside the root.
//
// Errors wrap ErrEscapesRoot, ErrSymlinkCycle, or fs.ErrNotExist so callers
// can classify them with errors.Is.
func (r *Resolver) Resolve(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("empty reference: %w", fs.ErrNotExist)
	}

	expanded := strings.ReplaceAll(raw, RootPlaceholder, r.root)

	path := expanded
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.root, path)
	}
	path = filepath.Clean(path)

	if !r.contains(path) {
		return "", fmt.Errorf("%s resolves to %s: %w", raw, path, ErrEscapesRoot)
	}

	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		return "", fmt.Errorf("cannot relativize %s: %w", path, err)
	}
	return r.walk(rel)
}

// walk resolves rel against the root component by component. Each step
// follows any symlink chain at that position before descending, and every
// link target is containment-checked, so the invariant holds for
// intermediate directories as well as the final component.
func (r *Resolver) walk(rel string) (string, error) {
	current := r.root
	if rel == "." {
		return current, nil
	}

	visited := make(map[string]bool)
	hops := 0

	for _, segment := range strings.Split(rel, string(filepath.Separator)) {
		current = filepath.Join(current, segment)

		for {
			info, err := os.Lstat(current)
			if err != nil {
				return "", fmt.Errorf("lstat %s: %w", current, err)
			}
			if info.Mode()&fs.ModeSymlink == 0 {
				break
			}

			if visited[current] {
				return "", fmt.Errorf("at %s: %w", current, ErrSymlinkCycle)
			}
			visited[current] = true
			hops++
			if hops > maxLinkHops {
				return "", fmt.Errorf("more than %d hops at %s: %w", maxLinkHops, current, ErrSymlinkCycle)
			}

			target, err := os.Readlink(current)
			if err != nil {
				return "", fmt.Errorf("readlink %s: %w", current, err)
			}
			if !filepath.IsAbs(target) {
				target = filepath.Join(filepath.Dir(current), target)
			}
			target = filepath.Clean(target)

			if !r.contains(target) {
				return "", fmt.Errorf("symlink %s points to %s: %w", current, target, ErrEscapesRoot)
			}
			current = target
		}
	}

	return current, nil
}

func (r *Resolver) contains(path string) bool {
	return path == r.root || strings.HasPrefix(path, r.root+string(filepath.Separator))
}
