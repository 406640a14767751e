// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeClockNow(t *testing.T) {
	clock := Fake(epoch)
	if got := clock.Now(); !got.Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", got, epoch)
	}
	clock.Advance(5 * time.Second)
	if got := Since(clock, epoch); got != 5*time.Second {
		t.Fatalf("Since() = %v, want 5s", got)
	}
}

func TestFakeClockAfter(t *testing.T) {
	t.Run("fires on advance", func(t *testing.T) {
		clock := Fake(epoch)
		channel := clock.After(3 * time.Second)

		clock.Advance(2 * time.Second)
		select {
		case <-channel:
			t.Fatal("After fired before deadline")
		default:
		}

		clock.Advance(time.Second)
		select {
		case fired := <-channel:
			if !fired.Equal(epoch.Add(3 * time.Second)) {
				t.Errorf("fired at %v, want %v", fired, epoch.Add(3*time.Second))
			}
		default:
			t.Fatal("After did not fire at deadline")
		}
		if clock.PendingCount() != 0 {
			t.Errorf("PendingCount() = %d after firing, want 0", clock.PendingCount())
		}
	})

	t.Run("non-positive duration is immediate", func(t *testing.T) {
		clock := Fake(epoch)
		for _, duration := range []time.Duration{0, -time.Second} {
			select {
			case <-clock.After(duration):
			default:
				t.Fatalf("After(%v) should fire immediately", duration)
			}
		}
		if clock.PendingCount() != 0 {
			t.Errorf("PendingCount() = %d, want 0", clock.PendingCount())
		}
	})
}

func TestFakeClockWaitForTimers(t *testing.T) {
	clock := Fake(epoch)
	done := make(chan struct{})

	go func() {
		<-clock.After(time.Minute)
		close(done)
	}()

	clock.WaitForTimers(1)
	clock.Advance(time.Minute)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("waiter goroutine did not observe the advance")
	}
}

func TestRealClock(t *testing.T) {
	clock := Real()
	before := time.Now()
	if clock.Now().Before(before) {
		t.Error("Real().Now() went backwards")
	}
	select {
	case <-clock.After(0):
	case <-time.After(5 * time.Second):
		t.Fatal("Real().After(0) did not fire")
	}
}
