package core

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// LockDirName is the directory under the vault root holding lock files.
const LockDirName = ".vb"

// Locker serializes read-modify-write cycles on a single file.
type Locker interface {
	Lock(path string) (unlock func() error, err error)
}

type flockLocker struct {
	dir string
}

// NewFileLocker returns a Locker that takes an exclusive flock on a
// per-target lock file inside dir.
func NewFileLocker(dir string) Locker {
	return &flockLocker{dir: dir}
}

func (l *flockLocker) Lock(path string) (func() error, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	sum := sha1.Sum([]byte(abs))
	return lockFile(filepath.Join(l.dir, hex.EncodeToString(sum[:])+".lock"))
}

// lockFile acquires an exclusive file lock (LOCK_EX) on the given file path.
// It returns an unlock function that must be called to release the lock.
func lockFile(path string) (unlock func() error, err error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		f.Close()
		return nil, fmt.Errorf("acquiring file lock: %w", err)
	}

	return func() error {
		defer f.Close()
		return syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
	}, nil
}

type noopLocker struct{}

// NewNoopLocker returns a Locker that never blocks.
func NewNoopLocker() Locker { return noopLocker{} }

func (noopLocker) Lock(string) (func() error, error) {
	return func() error { return nil }, nil
}
