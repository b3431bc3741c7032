//go:build !windows
// +build !windows

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/faypicker/fay/config"
)

var lockFile *os.File

func lockPath() string {
	return filepath.Join(config.RuntimeDir(), fmt.Sprintf("%s-%d.lock", config.AppName, os.Getuid()))
}

// acquireLock tries to take the single-instance file lock. It returns
// false without error when another picker already holds it.
func acquireLock() (bool, error) {
	file, err := os.OpenFile(lockPath(), os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return false, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		file.Close()
		if err == unix.EWOULDBLOCK {
			return false, nil
		}
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}

	// Record the holder's pid for debugging.
	file.Truncate(0)
	fmt.Fprintf(file, "%d\n", os.Getpid())

	lockFile = file
	return true, nil
}

// releaseLock drops the single-instance lock.
func releaseLock() {
	if lockFile == nil {
		return
	}
	unix.Flock(int(lockFile.Fd()), unix.LOCK_UN)
	lockFile.Close()
	os.Remove(lockFile.Name())
	lockFile = nil
}
