// Package repo provides postgres access for speeches
package repo

import (
	"context"
	"time"

	"parliametrics/internal/modkit/repokit"
	"parliametrics/internal/platform/store"
)

// Repo defines the repository contract for speeches
type Repo interface {
	List(ctx context.Context, f ListFilter) ([]RowSpeech, error)
	Speakers(ctx context.Context) ([]RowSpeaker, error)
	Parties(ctx context.Context) ([]RowParty, error)
	Dates(ctx context.Context) ([]string, error)
}

// ListFilter carries typed filter values; nil pointers and empty slices mean no constraint
type ListFilter struct {
	SpeakerIDs  []int64
	PartyIDs    []int64
	FromTribune *bool
	DateFrom    *time.Time
	DateTo      *time.Time
	Offset      int
	Limit       int
}

// RowSpeech represents a joined speech row
type RowSpeech struct {
	ID                int64
	Content           string
	Date              string
	FromTribune       bool
	SpeakerName       string
	PartyAbbreviation string
	PartyName         string
}

// RowSpeaker represents a speaker row
type RowSpeaker struct {
	ID         int64
	Name       string
	MiddleName *string
}

// RowParty represents a party row
type RowParty struct {
	ID   int64
	Name string
	Abbr string
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) List(ctx context.Context, f ListFilter) ([]RowSpeech, error) {
	const sql = `
select s.speech_id, s.speech_content, to_char(s.datestamp, 'YYYY-MM-DD'), s.from_tribune,
sp.speaker_name, coalesce(p.party_abbreviation, ''), p.party_name
from speeches s
join affiliations a on a.affiliation_id = s.affiliation_id
join speakers sp on sp.speaker_id = a.speaker_speaker_id
join parties p on p.party_id = a.party_party_id
where (coalesce(cardinality($1::bigint[]), 0) = 0 or sp.speaker_id = any($1::bigint[]))
and (coalesce(cardinality($2::bigint[]), 0) = 0 or p.party_id = any($2::bigint[]))
and ($3::boolean is null or s.from_tribune = $3::boolean)
and ($4::date is null or s.datestamp >= $4::date)
and ($5::date is null or s.datestamp <= $5::date)
order by s.datestamp desc, s.speech_id desc
offset $6
limit $7
`
	return store.Many(ctx, r.q, scanSpeech, sql,
		nonNil(f.SpeakerIDs),
		nonNil(f.PartyIDs),
		f.FromTribune,
		dateArg(f.DateFrom),
		dateArg(f.DateTo),
		f.Offset,
		f.Limit,
	)
}

func (r *queries) Speakers(ctx context.Context) ([]RowSpeaker, error) {
	const sql = `select speaker_id, speaker_name, middle_name from speakers order by speaker_name, speaker_id`
	return store.Many(ctx, r.q, func(row store.Row) (RowSpeaker, error) {
		var rr RowSpeaker
		err := row.Scan(&rr.ID, &rr.Name, &rr.MiddleName)
		return rr, err
	}, sql)
}

func (r *queries) Parties(ctx context.Context) ([]RowParty, error) {
	const sql = `select party_id, party_name, coalesce(party_abbreviation, '') from parties order by party_name, party_id`
	return store.Many(ctx, r.q, func(row store.Row) (RowParty, error) {
		var rr RowParty
		err := row.Scan(&rr.ID, &rr.Name, &rr.Abbr)
		return rr, err
	}, sql)
}

func (r *queries) Dates(ctx context.Context) ([]string, error) {
	const sql = `select distinct to_char(datestamp, 'YYYY-MM-DD') as d from speeches where datestamp is not null order by d`
	return store.Many(ctx, r.q, func(row store.Row) (string, error) {
		var d string
		err := row.Scan(&d)
		return d, err
	}, sql)
}

func scanSpeech(row store.Row) (RowSpeech, error) {
	var rr RowSpeech
	err := row.Scan(
		&rr.ID,
		&rr.Content,
		&rr.Date,
		&rr.FromTribune,
		&rr.SpeakerName,
		&rr.PartyAbbreviation,
		&rr.PartyName,
	)
	return rr, err
}

// pgx encodes a nil slice as NULL, cardinality needs an array
func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

func dateArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
