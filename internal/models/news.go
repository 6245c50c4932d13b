package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Status is the community verdict on a news item
type Status string

const (
	StatusFake    Status = "fake"
	StatusNotFake Status = "not-fake"
	StatusPending Status = "pending"
)

// ParseStatus converts a raw string into a Status, rejecting unknown values
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusFake, StatusNotFake, StatusPending:
		return Status(raw), nil
	default:
		return "", &ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("invalid status %q, must be one of: fake, not-fake, pending", raw),
		}
	}
}

// UnmarshalJSON rejects values outside the closed status set
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// NewsItem represents a submitted news item and its vote tallies
type NewsItem struct {
	ID           string    `json:"id"`
	Topic        string    `json:"topic"`
	ShortDetail  string    `json:"shortDetail"`
	FullDetail   string    `json:"fullDetail"`
	Reporter     string    `json:"reporter"`
	Date         time.Time `json:"date"`
	Image        string    `json:"image,omitempty"`
	FakeVotes    int       `json:"fakeVotes"`
	NotFakeVotes int       `json:"notFakeVotes"`
	TotalVotes   int       `json:"totalVotes"`
	Status       Status    `json:"status"`
}

// NewsDraft is the user-supplied part of a news submission
type NewsDraft struct {
	Topic       string `json:"topic"`
	ShortDetail string `json:"shortDetail"`
	FullDetail  string `json:"fullDetail"`
	Reporter    string `json:"reporter"`
	Image       string `json:"image,omitempty"`
}

// VoteBreakdown is the real/fake result bar shown on the detail view
type VoteBreakdown struct {
	RealCount      int     `json:"realCount"`
	FakeCount      int     `json:"fakeCount"`
	TotalVotes     int     `json:"totalVotes"`
	RealPercentage float64 `json:"realPercentage"`
	FakePercentage float64 `json:"fakePercentage"`
}

// Breakdown computes vote percentages, reporting 0% when nobody has voted
func (n *NewsItem) Breakdown() VoteBreakdown {
	b := VoteBreakdown{
		RealCount:  n.NotFakeVotes,
		FakeCount:  n.FakeVotes,
		TotalVotes: n.TotalVotes,
	}
	if n.TotalVotes > 0 {
		b.RealPercentage = float64(n.NotFakeVotes) / float64(n.TotalVotes) * 100
		b.FakePercentage = float64(n.FakeVotes) / float64(n.TotalVotes) * 100
	}
	return b
}

// Stats summarises the board by status
type Stats struct {
	Total    int `json:"total"`
	Verified int `json:"verified"`
	Fake     int `json:"fake"`
	Pending  int `json:"pending"`
}
