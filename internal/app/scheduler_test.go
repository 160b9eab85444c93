package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPollSchedulerRunsAndStops(t *testing.T) {
	store := newFakeStore()
	fetcher := &fakeFetcher{slots: []Timeslot{slotX(intPtr(4))}}
	r, _ := newTestReconciler(store, fetcher, runInstant)

	s := NewPollScheduler(r, 10*time.Millisecond, testLogger())
	s.Start()

	deadline := time.After(2 * time.Second)
	for fetcher.callCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("scheduler never invoked the reconciler")
		case <-time.After(5 * time.Millisecond):
		}
	}
	s.Stop()

	calls := fetcher.callCount()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, fetcher.callCount(), "no runs after Stop")
}

func TestPollSchedulerDisabledForZeroInterval(t *testing.T) {
	store := newFakeStore()
	fetcher := &fakeFetcher{slots: []Timeslot{slotX(intPtr(4))}}
	r, _ := newTestReconciler(store, fetcher, runInstant)

	s := NewPollScheduler(r, 0, testLogger())
	s.Start()
	defer s.Stop()

	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, fetcher.callCount())
}
