// Package domain holds the seeding types and ports
package domain

import (
	"strings"
	"time"
)

// ExternalParty collects speakers that match no known member or role
const ExternalParty = "ВЪНШЕН"

// Role is a chamber function that speaks without a party of its own
// Keyword is matched against the folded speaker label
type Role struct {
	Keyword string
	Label   string
}

// Roles are seeded as speakers affiliated with a party named after the role
var Roles = []Role{
	{Keyword: "председател", Label: "ПРЕДСЕДАТЕЛ"},
	{Keyword: "министър", Label: "МИНИСТЪР"},
	{Keyword: "докладчик", Label: "ДОКЛАДЧИК"},
}

// Party is a parliamentary group as listed by the source
type Party struct {
	APIID int64
	Name  string
	Abbr  string
}

// Member is one member of a group in a given month
// To is nil while the membership is open
type Member struct {
	First  string
	Middle string
	Last   string
	From   time.Time
	To     *time.Time
}

// SpeakerName is the display name stored with the speaker
func (m Member) SpeakerName() string {
	return strings.TrimSpace(m.First + " " + m.Last)
}

// Sitting is one plenary sitting with a stenographic record
type Sitting struct {
	ID   int64
	Date time.Time
}

// PartyRow is a stored party
type PartyRow struct {
	ID    int64
	Name  string
	Abbr  string
	APIID *int64
}

// AffiliationRow is a stored affiliation joined with its speaker
type AffiliationRow struct {
	ID          int64
	SpeakerID   int64
	PartyID     int64
	SpeakerName string
	First       string
	Middle      string
	Last        string
	Start       *time.Time
	End         *time.Time
}

// Covers reports whether d falls inside the affiliation; open ends always match
func (a AffiliationRow) Covers(d time.Time) bool {
	if a.Start != nil && d.Before(*a.Start) {
		return false
	}
	if a.End != nil && d.After(*a.End) {
		return false
	}
	return true
}

// Speech is one parsed speech ready to store
type Speech struct {
	AffiliationID  int64
	Content        string
	FromTribune    bool
	IsContinuation bool
	Date           time.Time
}

// Report counts what a seeding pass changed
type Report struct {
	Parties      int
	Speakers     int
	Affiliations int
	Sittings     int
	Speeches     int
	Appended     int
	Skipped      int
	Failed       int
}

// Add sums o into r
func (r *Report) Add(o Report) {
	r.Parties += o.Parties
	r.Speakers += o.Speakers
	r.Affiliations += o.Affiliations
	r.Sittings += o.Sittings
	r.Speeches += o.Speeches
	r.Appended += o.Appended
	r.Skipped += o.Skipped
	r.Failed += o.Failed
}

// MonthOf returns the first day of t's month in UTC
func MonthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Months lists the first day of every month from from to to inclusive
func Months(from, to time.Time) []time.Time {
	from, to = MonthOf(from), MonthOf(to)
	var out []time.Time
	for m := from; !m.After(to); m = m.AddDate(0, 1, 0) {
		out = append(out, m)
	}
	return out
}
