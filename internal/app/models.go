package app

import "time"

// Timeslot is one entry of the upstream calendar response. Start and end are
// local wall-clock strings in the upstream's timezone; Availability is nil
// when the API reports null remaining capacity.
type Timeslot struct {
	ProductID    string `json:"product_id"`
	Start        string `json:"start"`
	End          string `json:"end"`
	Availability *int   `json:"availability"`
}

// AvailabilityRecord is one observation in a session's append-only history.
type AvailabilityRecord struct {
	Timestamp      time.Time `json:"timestamp"`
	AvailableSlots *int      `json:"available_slots"`
}

// SessionInstance is the persisted, deduplicated form of one timeslot
// occurrence. ID is derived from (session_id, start_time), see identity.go.
type SessionInstance struct {
	ID           string               `json:"id"`
	SessionID    string               `json:"session_id"`
	SessionType  string               `json:"session_type"`
	StartTime    time.Time            `json:"start_time"`
	EndTime      time.Time            `json:"end_time"`
	Availability []AvailabilityRecord `json:"availability"`
}

// SessionSummary is the read-endpoint projection of a session down to its
// most recent availability reading.
type SessionSummary struct {
	ID               string    `json:"id"`
	SessionType      string    `json:"session_type"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	LastAvailability *int      `json:"last_availability"`
}

// CachedAvailability is the per-session value held in the snapshot cache.
type CachedAvailability struct {
	Availability *int `json:"availability"`
}

// Snapshot maps session instance ids to the availability observed during the
// most recent reconciliation run.
type Snapshot map[string]CachedAvailability

// LastAvailability returns the chronologically last recorded value, nil when
// the history is empty. History order is insertion order.
func (s SessionInstance) LastAvailability() *int {
	if len(s.Availability) == 0 {
		return nil
	}
	return s.Availability[len(s.Availability)-1].AvailableSlots
}

// Summary projects the session for the read endpoints.
func (s SessionInstance) Summary() SessionSummary {
	return SessionSummary{
		ID:               s.ID,
		SessionType:      s.SessionType,
		StartTime:        s.StartTime,
		EndTime:          s.EndTime,
		LastAvailability: s.LastAvailability(),
	}
}
