package rename

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrTargetExists is returned when the new path is already taken.
	ErrTargetExists = errors.New("target already exists")
	// ErrTargetClaimed is returned when two documents in one run would be
	// moved to the same path.
	ErrTargetClaimed = errors.New("target already claimed by another file")
)

// Renamer moves a file from oldPath to newPath.
type Renamer interface {
	Rename(oldPath, newPath string) error
}

// Func adapts a plain function to Renamer.
type Func func(oldPath, newPath string) error

// Rename calls f.
func (f Func) Rename(oldPath, newPath string) error {
	return f(oldPath, newPath)
}

// OS renames files on the local filesystem.
type OS struct {
	// Overwrite allows replacing an existing target.
	Overwrite bool
}

// Rename moves oldPath to newPath with os.Rename. Unless Overwrite is set,
// an existing target is refused. Renaming a path onto itself is a no-op.
func (r OS) Rename(oldPath, newPath string) error {
	if filepath.Clean(oldPath) == filepath.Clean(newPath) {
		return nil
	}
	if !r.Overwrite {
		if _, err := os.Lstat(newPath); err == nil {
			return fmt.Errorf("rename %q: %q %w", oldPath, newPath, ErrTargetExists)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat target %q: %w", newPath, err)
		}
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("rename %q: %w", oldPath, err)
	}
	return nil
}

// Claims records the target of every planned rename in a run so that no
// two sources are moved onto the same path.
type Claims struct {
	targets map[string]string // target -> source
}

// NewClaims returns an empty claim set.
func NewClaims() *Claims {
	return &Claims{targets: make(map[string]string)}
}

// Claim reserves newPath for oldPath. Claiming the same pair twice is
// allowed; a different source for an already claimed target is not.
func (c *Claims) Claim(oldPath, newPath string) error {
	key := filepath.Clean(newPath)
	if owner, ok := c.targets[key]; ok && owner != filepath.Clean(oldPath) {
		return fmt.Errorf("%q -> %q: %w (%q)", oldPath, newPath, ErrTargetClaimed, owner)
	}
	c.targets[key] = filepath.Clean(oldPath)
	return nil
}

// Len reports the number of claimed targets.
func (c *Claims) Len() int {
	return len(c.targets)
}
