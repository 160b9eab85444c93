package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellenwerk-tracker/internal/config"
)

func upstreamConfig(baseURL string) config.UpstreamConfig {
	return config.UpstreamConfig{
		BaseURL:        baseURL,
		Calendar:       "surf-calendar",
		BusinessDomain: "bookings.wellenwerk-berlin.de",
		Currency:       "EUR",
		Timeout:        5 * time.Second,
	}
}

func TestFetchTimeslots(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"timeslots":[
			{"product_id":"X","start":"2025-03-10 09:00:00","end":"2025-03-10 10:30:00","availability":4},
			{"product_id":"Y","start":"2025-03-11 09:00:00","end":"2025-03-11 10:30:00","availability":null}
		]}}`))
	}))
	defer srv.Close()

	// 2025-03-10 is a Monday; the window runs through Saturday four full
	// weeks later.
	clock := NewMockClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	client := NewBookingClient(upstreamConfig(srv.URL), clock)

	slots, err := client.FetchTimeslots(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/public/calendars/surf-calendar/timeslots", gotPath)
	assert.Equal(t, "2025-03-10", gotQuery.Get("start"))
	assert.Equal(t, "2025-04-12", gotQuery.Get("end"))
	assert.Equal(t, "EUR", gotQuery.Get("currency"))
	assert.Equal(t, "bookings.wellenwerk-berlin.de", gotQuery.Get("business_domain"))

	require.Len(t, slots, 2)
	assert.Equal(t, "X", slots[0].ProductID)
	require.NotNil(t, slots[0].Availability)
	assert.Equal(t, 4, *slots[0].Availability)
	assert.Nil(t, slots[1].Availability, "null availability must survive decoding")
}

func TestFetchTimeslotsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewBookingClient(upstreamConfig(srv.URL), RealClock{})
	_, err := client.FetchTimeslots(context.Background())
	assert.Error(t, err)
}

func TestFetchTimeslotsEmptyCalendar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"timeslots":[]}}`))
	}))
	defer srv.Close()

	client := NewBookingClient(upstreamConfig(srv.URL), RealClock{})
	slots, err := client.FetchTimeslots(context.Background())
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestFetchWindow(t *testing.T) {
	tests := []struct {
		name  string
		now   time.Time
		start string
		end   string
	}{
		{"monday", time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), "2025-03-10", "2025-04-12"},
		{"sunday", time.Date(2025, 3, 9, 8, 0, 0, 0, time.UTC), "2025-03-09", "2025-04-12"},
		{"saturday", time.Date(2025, 3, 8, 8, 0, 0, 0, time.UTC), "2025-03-08", "2025-04-05"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := fetchWindow(tt.now)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}
