// Package runlock guards the prepare output tree against concurrent runs with
// an advisory file lock.
package runlock

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Lock holds the run lock for one output directory.
type Lock struct {
	path string
	lock *flock.Flock
}

// Acquire takes the lock file inside dir without blocking. A held lock means
// another mintprep run is already writing this tree.
func Acquire(dir string) (*Lock, error) {
	path := filepath.Join(dir, "mintprep.lock")
	fl := flock.New(path)

	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("another mintprep run is already processing %s", dir)
	}
	return &Lock{path: path, lock: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release drops the lock.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
