package app

import (
	"context"
	"log/slog"
	"sort"

	"github.com/cockroachdb/errors"
)

// ErrNoTimeslots marks a run where the upstream returned an empty calendar.
// The whole cycle fails: an empty window is never a legitimate reading for
// a venue that runs sessions every day.
var ErrNoTimeslots = errors.New("upstream returned no timeslots")

// ReconcileStats summarizes one cycle for logs and the trigger response.
type ReconcileStats struct {
	Fetched  int `json:"fetched"`
	Excluded int `json:"excluded"`
	Written  int `json:"written"`
	Skipped  int `json:"skipped"`
}

// Reconciler runs the fetch-normalize-compare-persist cycle. One instance is
// shared by the HTTP trigger and the poll scheduler; runs are not mutually
// excluded, an overlap can at worst append a redundant history entry because
// the store, not the snapshot, is authoritative.
type Reconciler struct {
	Store    SessionStore
	Upstream TimeslotFetcher
	Log      *slog.Logger
	Clock    Clock
}

func NewReconciler(store SessionStore, upstream TimeslotFetcher, log *slog.Logger, clock Clock) *Reconciler {
	return &Reconciler{Store: store, Upstream: upstream, Log: log, Clock: clock}
}

// Run executes one reconciliation cycle. Only upstream failure (or an empty
// timeslot list) fails the run; everything else degrades per item or per
// cache write and is logged.
func (r *Reconciler) Run(ctx context.Context) (ReconcileStats, error) {
	var stats ReconcileStats

	snap, err := r.Store.LoadSnapshot(ctx)
	if err != nil {
		r.Log.Warn("snapshot cache unreadable, starting empty", "error", err)
		snap = Snapshot{}
	}
	if len(snap) == 0 {
		rebuilt, err := r.RebuildSnapshot(ctx)
		if err != nil {
			r.Log.Warn("snapshot rebuild failed, starting empty", "error", err)
		} else {
			snap = rebuilt
		}
	}

	slots, err := r.Upstream.FetchTimeslots(ctx)
	if err != nil {
		return stats, errors.Wrap(err, "fetch timeslots")
	}
	if len(slots) == 0 {
		return stats, ErrNoTimeslots
	}
	stats.Fetched = len(slots)

	updated := Snapshot{}
	for _, slot := range slots {
		if IsExcluded(slot.ProductID) {
			stats.Excluded++
			continue
		}
		wrote, err := r.processTimeslot(ctx, slot, snap, updated)
		if err != nil {
			stats.Skipped++
			r.Log.Error("timeslot skipped",
				"product_id", slot.ProductID, "start", slot.Start, "error", err)
			continue
		}
		if wrote {
			stats.Written++
		}
	}

	// Cache staleness is a soft failure: the history store already holds the
	// truth and the snapshot is rebuilt on the next empty load.
	if err := r.Store.SaveSnapshot(ctx, updated); err != nil {
		r.Log.Error("snapshot cache save failed", "error", err)
	}

	r.Log.Info("reconcile cycle done",
		"fetched", stats.Fetched, "excluded", stats.Excluded,
		"written", stats.Written, "skipped", stats.Skipped)
	return stats, nil
}

// processTimeslot handles one upstream slot: normalize, derive identity,
// compare against the snapshot and conditionally append to the history.
// The observed value always lands in the updated snapshot, written or not.
func (r *Reconciler) processTimeslot(ctx context.Context, slot Timeslot, snap, updated Snapshot) (bool, error) {
	start, err := NormalizeTime(slot.Start)
	if err != nil {
		return false, err
	}
	end, err := NormalizeTime(slot.End)
	if err != nil {
		return false, err
	}

	id := DeriveSessionID(slot.ProductID, CanonicalStart(start))
	now := r.Clock.Now()

	cached, seen := snap[id]
	// A nil cached reading always counts as changed, matching the write-on-
	// null behavior the history consumers expect.
	changed := !seen || cached.Availability == nil ||
		!intPtrEqual(cached.Availability, slot.Availability)

	wrote := false
	if changed && start.After(now) {
		history, err := r.Store.SessionHistory(ctx, id)
		if err != nil {
			r.Log.Error("history load failed, starting fresh", "session", id, "error", err)
			history = nil
		}
		history = append(history, AvailabilityRecord{
			Timestamp:      now.UTC(),
			AvailableSlots: slot.Availability,
		})

		inst := SessionInstance{
			ID:           id,
			SessionID:    slot.ProductID,
			SessionType:  SessionTypeLabel(slot.ProductID),
			StartTime:    start,
			EndTime:      end,
			Availability: history,
		}
		if err := r.Store.UpsertSession(ctx, inst); err != nil {
			r.Log.Error("session upsert failed", "session", id, "error", err)
		} else {
			wrote = true
		}
	}

	updated[id] = CachedAvailability{Availability: slot.Availability}
	return wrote, nil
}

// RebuildSnapshot reconstructs the cache from the history store: for every
// future-dated session, the most recent record by timestamp wins. This is
// the bootstrap path for a missing or wiped session_cache row.
func (r *Reconciler) RebuildSnapshot(ctx context.Context) (Snapshot, error) {
	histories, err := r.Store.FutureSessionHistories(ctx, r.Clock.Now())
	if err != nil {
		return nil, errors.Wrap(err, "rebuild snapshot")
	}

	snap := Snapshot{}
	for id, history := range histories {
		records := append([]AvailabilityRecord(nil), history...)
		sort.Slice(records, func(i, j int) bool {
			return records[i].Timestamp.After(records[j].Timestamp)
		})
		var latest *int
		if len(records) > 0 {
			latest = records[0].AvailableSlots
		}
		snap[id] = CachedAvailability{Availability: latest}
	}
	return snap, nil
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
