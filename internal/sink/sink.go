// Package sink writes several line files as one unit.
//
// Every output is first written to a temporary file next to its destination.
// Destinations are only replaced once all temporary files are written and
// synced. Existing destinations are moved aside while the new files are
// renamed into place; if a rename fails, the outputs already committed are
// removed and the moved-aside files restored, so a failed run leaves the
// destinations as they were. Restoring is best effort: a second filesystem
// failure during rollback can still leave a destination missing.
package sink

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flexgp/flexgp/internal/lineio"
	"github.com/flexgp/flexgp/types"
)

// rename is swapped in tests to simulate commit failures.
var rename = os.Rename

// Output is one destination file and its lines.
type Output struct {
	Path  string
	Lines []string
}

// WriteAll writes every output or none of them.
//
// Parameters:
//   - outputs: Files to write; paths must be distinct
//
// Returns:
//   - error: types.ErrWriteFailed wrapped with the cause; destinations are left
//     as they were
func WriteAll(outputs []Output) error {
	seen := make(map[string]struct{}, len(outputs))
	for _, out := range outputs {
		abs, err := filepath.Abs(out.Path)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", types.ErrWriteFailed, out.Path, err)
		}
		if _, dup := seen[abs]; dup {
			return fmt.Errorf("%w: %s listed twice", types.ErrWriteFailed, out.Path)
		}
		seen[abs] = struct{}{}
	}

	staged := make([]string, 0, len(outputs))
	cleanup := func() {
		for _, tmp := range staged {
			_ = os.Remove(tmp)
		}
	}

	for _, out := range outputs {
		tmp, err := stage(out)
		if err != nil {
			cleanup()
			return fmt.Errorf("%w: %s: %w", types.ErrWriteFailed, out.Path, err)
		}
		staged = append(staged, tmp)
	}

	var done []committed
	for i, out := range outputs {
		c, err := commit(staged[i], out.Path)
		if err != nil {
			rollback(done)
			staged = staged[i:]
			cleanup()
			return fmt.Errorf("%w: %s: %w", types.ErrWriteFailed, out.Path, err)
		}
		done = append(done, c)
	}

	for _, c := range done {
		if c.backup != "" {
			_ = os.Remove(c.backup)
		}
	}

	return nil
}

// committed records a destination replaced by commit and where its previous
// content was moved, if it existed.
type committed struct {
	path   string
	backup string
}

// commit moves an existing regular file at path aside and renames tmp into
// its place. On failure the previous file is put back.
func commit(tmp, path string) (committed, error) {
	c := committed{path: path}
	if info, err := os.Lstat(path); err == nil && info.Mode().IsRegular() {
		c.backup = tmp + ".bak"
		if err := rename(path, c.backup); err != nil {
			return committed{}, err
		}
	}

	if err := rename(tmp, path); err != nil {
		if c.backup != "" {
			_ = rename(c.backup, path)
		}

		return committed{}, err
	}

	return c, nil
}

// rollback undoes commits in reverse order.
func rollback(done []committed) {
	for i := len(done) - 1; i >= 0; i-- {
		c := done[i]
		if c.backup != "" {
			_ = rename(c.backup, c.path)
		} else {
			_ = os.Remove(c.path)
		}
	}
}

// stage writes out to a synced temporary file in the destination directory
// and returns its path.
func stage(out Output) (string, error) {
	dir, base := filepath.Split(out.Path)
	if dir == "" {
		dir = "."
	}

	f, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return "", err
	}

	werr := lineio.Write(f, out.Lines)
	if werr == nil {
		werr = f.Sync()
	}
	if werr == nil {
		werr = f.Chmod(0o644)
	}
	if err := errors.Join(werr, f.Close()); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}

	return f.Name(), nil
}
