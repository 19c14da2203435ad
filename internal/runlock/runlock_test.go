package runlock

import (
	"testing"
)

func TestAcquireExcludesSecondRun(t *testing.T) {
	dir := t.TempDir()

	lock, err := Acquire(dir)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Acquire(dir); err == nil {
		t.Fatal("second acquire should fail while the lock is held")
	}

	if err := lock.Release(); err != nil {
		t.Fatal(err)
	}

	again, err := Acquire(dir)
	if err != nil {
		t.Fatalf("reacquire after release failed: %v", err)
	}
	_ = again.Release()
}

func TestReleaseNil(t *testing.T) {
	var lock *Lock
	if err := lock.Release(); err != nil {
		t.Fatal(err)
	}
}
