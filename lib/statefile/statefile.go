// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package statefile

import (
	"fmt"
	"os"
	"path/filepath"
)

// Write atomically replaces path with data. The file is created with
// mode perm; an existing file's mode is not preserved. The parent
// directory must exist.
func Write(path string, data []byte, perm os.FileMode) error {
	temporary, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("statefile: creating temporary file for %s: %w", path, err)
	}
	temporaryPath := temporary.Name()

	// Write, chmod, sync, close, in that order. Any failure removes
	// the temporary file.
	fail := func(step string, err error) error {
		temporary.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf("statefile: %s %s: %w", step, temporaryPath, err)
	}
	if _, err := temporary.Write(data); err != nil {
		return fail("writing", err)
	}
	if err := temporary.Chmod(perm); err != nil {
		return fail("setting mode of", err)
	}
	if err := temporary.Sync(); err != nil {
		return fail("syncing", err)
	}
	if err := temporary.Close(); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("statefile: closing %s: %w", temporaryPath, err)
	}

	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf("statefile: renaming into %s: %w", path, err)
	}

	// Make the rename itself durable.
	if directory, err := os.Open(filepath.Dir(path)); err == nil {
		directory.Sync()
		directory.Close()
	}
	return nil
}
