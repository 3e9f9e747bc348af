// Package repo provides postgres writes for seeding the archive
package repo

import (
	"context"
	"time"

	"parliametrics/internal/modkit/repokit"
	perr "parliametrics/internal/platform/errors"
	"parliametrics/internal/platform/store"
	"parliametrics/internal/services/seed/domain"
)

type (
	// PG is a Postgres binder for domain.StorageRepo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a Postgres binder for domain.StorageRepo
func NewPG() repokit.Binder[domain.StorageRepo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) domain.StorageRepo { return &queries{q: q} }

// UpsertParty inserts by name; an existing row keeps its abbreviation and
// takes a non zero api id
// xmax is zero only on a row this statement inserted
func (r *queries) UpsertParty(ctx context.Context, p domain.Party) (int64, bool, error) {
	const sql = `
insert into parties (party_name, party_abbreviation, party_api_id)
values ($1, nullif($2, ''), $3)
on conflict (party_name) do update
set party_api_id = coalesce(excluded.party_api_id, parties.party_api_id)
returning party_id, (xmax = 0)`
	var (
		id      int64
		created bool
	)
	err := r.q.QueryRow(ctx, sql, p.Name, p.Abbr, apiIDArg(p.APIID)).Scan(&id, &created)
	if err != nil {
		return 0, false, perr.FromPostgres(err, "upsert party")
	}
	return id, created, nil
}

func (r *queries) Parties(ctx context.Context) ([]domain.PartyRow, error) {
	const sql = `select party_id, party_name, coalesce(party_abbreviation, ''), party_api_id from parties order by party_id`
	rows, err := store.Many(ctx, r.q, func(row store.Row) (domain.PartyRow, error) {
		var p domain.PartyRow
		err := row.Scan(&p.ID, &p.Name, &p.Abbr, &p.APIID)
		return p, err
	}, sql)
	return rows, perr.FromPostgres(err, "list parties")
}

// UpsertSpeaker keys on the full name and refreshes the display name
func (r *queries) UpsertSpeaker(ctx context.Context, m domain.Member) (int64, bool, error) {
	const sql = `
insert into speakers (speaker_name, first_name, middle_name, last_name)
values ($1, $2, $3, $4)
on conflict (first_name, middle_name, last_name) do update
set speaker_name = excluded.speaker_name
returning speaker_id, (xmax = 0)`
	var (
		id      int64
		created bool
	)
	err := r.q.QueryRow(ctx, sql, m.SpeakerName(), m.First, m.Middle, m.Last).Scan(&id, &created)
	if err != nil {
		return 0, false, perr.FromPostgres(err, "upsert speaker")
	}
	return id, created, nil
}

// EnsureLabelSpeaker stores a label as the last name with empty first and
// middle names so the full name key stays unique per label
func (r *queries) EnsureLabelSpeaker(ctx context.Context, label string) (int64, bool, error) {
	return r.UpsertSpeaker(ctx, domain.Member{Last: label})
}

// UpsertAffiliation keeps the first start date and takes the latest end date
func (r *queries) UpsertAffiliation(ctx context.Context, speakerID, partyID int64, start, end *time.Time) (int64, bool, error) {
	const sql = `
insert into affiliations (speaker_speaker_id, party_party_id, start_date, end_date)
values ($1, $2, $3, $4)
on conflict (speaker_speaker_id, party_party_id) do update
set start_date = coalesce(affiliations.start_date, excluded.start_date),
    end_date = excluded.end_date
returning affiliation_id, (xmax = 0)`
	var (
		id      int64
		created bool
	)
	err := r.q.QueryRow(ctx, sql, speakerID, partyID, dateArg(start), dateArg(end)).Scan(&id, &created)
	if err != nil {
		return 0, false, perr.FromPostgres(err, "upsert affiliation")
	}
	return id, created, nil
}

func (r *queries) Affiliations(ctx context.Context) ([]domain.AffiliationRow, error) {
	const sql = `
select a.affiliation_id, a.speaker_speaker_id, a.party_party_id,
       s.speaker_name, s.first_name, coalesce(s.middle_name, ''), s.last_name,
       a.start_date, a.end_date
from affiliations a
join speakers s on s.speaker_id = a.speaker_speaker_id
order by a.affiliation_id`
	rows, err := store.Many(ctx, r.q, func(row store.Row) (domain.AffiliationRow, error) {
		var a domain.AffiliationRow
		err := row.Scan(&a.ID, &a.SpeakerID, &a.PartyID,
			&a.SpeakerName, &a.First, &a.Middle, &a.Last,
			&a.Start, &a.End)
		return a, err
	}, sql)
	return rows, perr.FromPostgres(err, "list affiliations")
}

func (r *queries) LastSpeechDate(ctx context.Context) (*time.Time, error) {
	var d *time.Time
	if err := r.q.QueryRow(ctx, `select max(datestamp) from speeches`).Scan(&d); err != nil {
		return nil, perr.FromPostgres(err, "last speech date")
	}
	return d, nil
}

// InsertSpeech is a no op for a speech already stored with the same day,
// affiliation and content
func (r *queries) InsertSpeech(ctx context.Context, s domain.Speech) (int64, bool, error) {
	const sql = `
insert into speeches (speech_content, from_tribune, datestamp, is_continuation, processed, affiliation_id)
select $1::text, $2::boolean, $3::date, $4::boolean, false, $5::int
where not exists (
	select 1 from speeches
	where datestamp = $3::date and affiliation_id = $5::int and speech_content = $1::text
)
returning speech_id`
	var id int64
	err := r.q.QueryRow(ctx, sql, s.Content, s.FromTribune, s.Date, s.IsContinuation, s.AffiliationID).Scan(&id)
	if store.IsNoRows(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, perr.FromPostgres(err, "insert speech")
	}
	return id, true, nil
}

func (r *queries) AppendSpeech(ctx context.Context, id int64, text string) error {
	_, err := r.q.Exec(ctx, `update speeches set speech_content = speech_content || E'\n' || $2 where speech_id = $1`, id, text)
	return perr.FromPostgres(err, "append speech")
}

func apiIDArg(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

func dateArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
