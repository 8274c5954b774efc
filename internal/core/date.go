package core

import (
	"encoding/json"
	"time"
)

// Date is a calendar date. It serializes to the tagged form
// {"__type":"Date","value":"<RFC3339>"} so the persisted collection
// round-trips dates as first-class values instead of bare strings, and
// stays compatible with blobs written by the original browser store.
type Date struct {
	time.Time
}

// ISODate is the calendar-date layout used in exports.
const ISODate = "2006-01-02"

type taggedDate struct {
	Type  string `json:"__type"`
	Value string `json:"value"`
}

// NewDate creates a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	if d.Time.After(time.Now()) {
		return ErrFutureDate
	}
	return nil
}

// ISO renders the date without a time component, as used in info.json and
// the CSV ledger.
func (d Date) ISO() string {
	return d.Time.Format(ISODate)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(taggedDate{Type: "Date", Value: d.Time.Format(time.RFC3339)})
}

// UnmarshalJSON accepts the tagged store form plus plain RFC3339 or
// YYYY-MM-DD strings, which is what API clients send.
func (d *Date) UnmarshalJSON(data []byte) error {
	var tagged taggedDate
	if err := json.Unmarshal(data, &tagged); err == nil && tagged.Type == "Date" {
		t, err := time.Parse(time.RFC3339, tagged.Value)
		if err != nil {
			return err
		}
		d.Time = t
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidDate
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(ISODate, s)
	if err != nil {
		return ErrInvalidDate
	}
	d.Time = t
	return nil
}
