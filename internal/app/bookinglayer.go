package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"wellenwerk-tracker/internal/config"
)

// TimeslotFetcher is the upstream collaborator of the reconciliation engine.
type TimeslotFetcher interface {
	FetchTimeslots(ctx context.Context) ([]Timeslot, error)
}

// BookingClient fetches public calendar timeslots from the Bookinglayer API.
type BookingClient struct {
	baseURL        string
	calendar       string
	businessDomain string
	currency       string
	client         *http.Client
	clock          Clock
}

func NewBookingClient(cfg config.UpstreamConfig, clock Clock) *BookingClient {
	return &BookingClient{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		calendar:       cfg.Calendar,
		businessDomain: cfg.BusinessDomain,
		currency:       cfg.Currency,
		client:         &http.Client{Timeout: cfg.Timeout},
		clock:          clock,
	}
}

type timeslotsEnvelope struct {
	Data struct {
		Timeslots []Timeslot `json:"timeslots"`
	} `json:"data"`
}

// FetchTimeslots requests the rolling window from today through the end of
// the week four weeks out and returns the raw timeslot list.
func (b *BookingClient) FetchTimeslots(ctx context.Context) ([]Timeslot, error) {
	start, end := fetchWindow(b.clock.Now())

	u := fmt.Sprintf("%s/public/calendars/%s/timeslots", b.baseURL, b.calendar)
	q := url.Values{}
	q.Set("start", start)
	q.Set("end", end)
	q.Set("currency", b.currency)
	q.Set("business_domain", b.businessDomain)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u+"?"+q.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build timeslots request")
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch timeslots")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, errors.Newf("timeslots request failed: %s", resp.Status)
	}

	var envelope timeslotsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, errors.Wrap(err, "decode timeslots response")
	}
	return envelope.Data.Timeslots, nil
}

// fetchWindow returns the calendar-date query bounds: today through the last
// day of the week four full weeks later, both as YYYY-MM-DD in UTC.
func fetchWindow(now time.Time) (start, end string) {
	today := now.UTC()
	last := today.AddDate(0, 0, 4*7+(6-int(today.Weekday())))
	return today.Format("2006-01-02"), last.Format("2006-01-02")
}
