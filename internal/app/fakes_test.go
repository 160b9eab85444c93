package app

import (
	"context"
	"sync"
	"time"
)

// fakeStore is an in-memory SessionStore. Filtering mirrors the SQL
// semantics of PGStore (strict past, inclusive range bounds).
type fakeStore struct {
	mu       sync.Mutex
	snapshot Snapshot
	sessions map[string]SessionInstance

	loadErr    error
	saveErr    error
	historyErr error
	upsertErr  error
	queryErr   error

	saveCalls  int
	queryCalls int

	lastFrom time.Time
	lastTo   time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		snapshot: Snapshot{},
		sessions: map[string]SessionInstance{},
	}
}

func (f *fakeStore) LoadSnapshot(context.Context) (Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	snap := Snapshot{}
	for k, v := range f.snapshot {
		snap[k] = v
	}
	return snap, nil
}

func (f *fakeStore) SaveSnapshot(_ context.Context, snap Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.snapshot = snap
	return nil
}

func (f *fakeStore) SessionHistory(_ context.Context, id string) ([]AvailabilityRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.sessions[id].Availability, nil
}

func (f *fakeStore) UpsertSession(_ context.Context, s SessionInstance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.sessions[s.ID] = s
	return nil
}

func (f *fakeStore) FutureSessionHistories(_ context.Context, now time.Time) (map[string][]AvailabilityRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	out := map[string][]AvailabilityRecord{}
	for id, s := range f.sessions {
		if s.StartTime.After(now) {
			out[id] = s.Availability
		}
	}
	return out, nil
}

func (f *fakeStore) PastSessions(_ context.Context, now time.Time) ([]SessionInstance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queryCalls++
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	var out []SessionInstance
	for _, s := range f.sessions {
		if s.StartTime.Before(now) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) SessionsInRange(_ context.Context, from, to time.Time) ([]SessionInstance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queryCalls++
	f.lastFrom, f.lastTo = from, to
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	var out []SessionInstance
	for _, s := range f.sessions {
		if !s.StartTime.Before(from) && !s.StartTime.After(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeFetcher struct {
	mu    sync.Mutex
	slots []Timeslot
	err   error
	calls int
}

func (f *fakeFetcher) FetchTimeslots(context.Context) ([]Timeslot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.slots, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func intPtr(v int) *int { return &v }
