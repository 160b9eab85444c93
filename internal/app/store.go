package app

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// cacheRowID keys the single snapshot row in session_cache.
const cacheRowID = "cache"

// SessionStore is the persistence collaborator of the engine and the read
// endpoints. The history array is append-only; rows are upserted, never
// deleted.
type SessionStore interface {
	LoadSnapshot(ctx context.Context) (Snapshot, error)
	SaveSnapshot(ctx context.Context, snap Snapshot) error
	SessionHistory(ctx context.Context, id string) ([]AvailabilityRecord, error)
	UpsertSession(ctx context.Context, s SessionInstance) error
	FutureSessionHistories(ctx context.Context, now time.Time) (map[string][]AvailabilityRecord, error)
	PastSessions(ctx context.Context, now time.Time) ([]SessionInstance, error)
	SessionsInRange(ctx context.Context, from, to time.Time) ([]SessionInstance, error)
}

// PGStore implements SessionStore over Postgres.
type PGStore struct {
	DB *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{DB: db}
}

// LoadSnapshot reads the single cache row. A missing row is the normal
// first-run state and yields an empty snapshot, not an error.
func (s *PGStore) LoadSnapshot(ctx context.Context) (Snapshot, error) {
	q := `SELECT data FROM session_cache WHERE id=$1`

	var snap Snapshot
	err := s.DB.QueryRow(ctx, q, cacheRowID).Scan(&snap)
	if errors.Is(err, pgx.ErrNoRows) {
		return Snapshot{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "load snapshot cache")
	}
	if snap == nil {
		snap = Snapshot{}
	}
	return snap, nil
}

// SaveSnapshot replaces the cache row wholesale, stamped with the write time.
func (s *PGStore) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	q := `INSERT INTO session_cache (id, data, updated_at)
	      VALUES ($1, $2, $3)
	      ON CONFLICT (id) DO UPDATE SET data=EXCLUDED.data, updated_at=EXCLUDED.updated_at`

	if _, err := s.DB.Exec(ctx, q, cacheRowID, snap, time.Now().UTC()); err != nil {
		return errors.Wrap(err, "save snapshot cache")
	}
	return nil
}

// SessionHistory returns the persisted availability history for a session,
// empty when the session has not been seen before.
func (s *PGStore) SessionHistory(ctx context.Context, id string) ([]AvailabilityRecord, error) {
	q := `SELECT availability FROM sessions WHERE id=$1`

	var history []AvailabilityRecord
	err := s.DB.QueryRow(ctx, q, id).Scan(&history)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load history for session %s", id)
	}
	return history, nil
}

// UpsertSession writes the full row, replacing every column on conflict.
func (s *PGStore) UpsertSession(ctx context.Context, inst SessionInstance) error {
	q := `INSERT INTO sessions (id, session_id, session_type, start_time, end_time, availability)
	      VALUES ($1,$2,$3,$4,$5,$6)
	      ON CONFLICT (id) DO UPDATE SET
	        session_id=EXCLUDED.session_id,
	        session_type=EXCLUDED.session_type,
	        start_time=EXCLUDED.start_time,
	        end_time=EXCLUDED.end_time,
	        availability=EXCLUDED.availability`

	_, err := s.DB.Exec(ctx, q,
		inst.ID, inst.SessionID, inst.SessionType,
		inst.StartTime, inst.EndTime, inst.Availability)
	if err != nil {
		return errors.Wrapf(err, "upsert session %s", inst.ID)
	}
	return nil
}

// FutureSessionHistories returns id → history for sessions starting after
// now. Feeds the snapshot rebuild path.
func (s *PGStore) FutureSessionHistories(ctx context.Context, now time.Time) (map[string][]AvailabilityRecord, error) {
	q := `SELECT id, availability FROM sessions WHERE start_time > $1`

	rows, err := s.DB.Query(ctx, q, now)
	if err != nil {
		return nil, errors.Wrap(err, "list future sessions")
	}
	defer rows.Close()

	out := map[string][]AvailabilityRecord{}
	for rows.Next() {
		var id string
		var history []AvailabilityRecord
		if err := rows.Scan(&id, &history); err != nil {
			return nil, errors.Wrap(err, "scan future session")
		}
		out[id] = history
	}
	return out, rows.Err()
}

// PastSessions returns every session whose start time lies before now.
func (s *PGStore) PastSessions(ctx context.Context, now time.Time) ([]SessionInstance, error) {
	q := `SELECT id, session_id, session_type, start_time, end_time, availability
	      FROM sessions WHERE start_time < $1 ORDER BY start_time`
	return s.querySessions(ctx, q, now)
}

// SessionsInRange returns sessions starting within [from, to], both bounds
// inclusive.
func (s *PGStore) SessionsInRange(ctx context.Context, from, to time.Time) ([]SessionInstance, error) {
	q := `SELECT id, session_id, session_type, start_time, end_time, availability
	      FROM sessions WHERE start_time >= $1 AND start_time <= $2 ORDER BY start_time`
	return s.querySessions(ctx, q, from, to)
}

func (s *PGStore) querySessions(ctx context.Context, q string, args ...any) ([]SessionInstance, error) {
	rows, err := s.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query sessions")
	}
	defer rows.Close()

	var out []SessionInstance
	for rows.Next() {
		var inst SessionInstance
		if err := rows.Scan(&inst.ID, &inst.SessionID, &inst.SessionType,
			&inst.StartTime, &inst.EndTime, &inst.Availability); err != nil {
			return nil, errors.Wrap(err, "scan session")
		}
		out = append(out, inst)
	}
	return out, rows.Err()
}
