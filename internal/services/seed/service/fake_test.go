package service

import (
	"context"
	"errors"
	"time"

	"parliametrics/internal/modkit/repokit"
	"parliametrics/internal/platform/store"
	"parliametrics/internal/services/seed/domain"
)

// memRepo is an in memory archive keyed like the real tables
type memRepo struct {
	parties  []domain.PartyRow
	speakers map[[3]string]int64
	names    map[int64]string
	affs     []domain.AffiliationRow
	speeches []storedSpeech
	failOn   string
}

type storedSpeech struct {
	ID int64
	domain.Speech
}

func newMemRepo() *memRepo {
	return &memRepo{speakers: map[[3]string]int64{}, names: map[int64]string{}}
}

func (m *memRepo) fail(op string) error {
	if m.failOn == op {
		return errors.New(op + " failed")
	}
	return nil
}

func (m *memRepo) UpsertParty(_ context.Context, p domain.Party) (int64, bool, error) {
	if err := m.fail("party"); err != nil {
		return 0, false, err
	}
	for i, row := range m.parties {
		if row.Name == p.Name {
			if p.APIID != 0 {
				id := p.APIID
				m.parties[i].APIID = &id
			}
			return row.ID, false, nil
		}
	}
	row := domain.PartyRow{ID: int64(len(m.parties) + 1), Name: p.Name, Abbr: p.Abbr}
	if p.APIID != 0 {
		id := p.APIID
		row.APIID = &id
	}
	m.parties = append(m.parties, row)
	return row.ID, true, nil
}

func (m *memRepo) Parties(context.Context) ([]domain.PartyRow, error) {
	return append([]domain.PartyRow(nil), m.parties...), m.fail("parties")
}

func (m *memRepo) UpsertSpeaker(_ context.Context, mb domain.Member) (int64, bool, error) {
	k := [3]string{mb.First, mb.Middle, mb.Last}
	if id, ok := m.speakers[k]; ok {
		m.names[id] = mb.SpeakerName()
		return id, false, nil
	}
	id := int64(len(m.speakers) + 1)
	m.speakers[k] = id
	m.names[id] = mb.SpeakerName()
	return id, true, nil
}

func (m *memRepo) EnsureLabelSpeaker(ctx context.Context, label string) (int64, bool, error) {
	return m.UpsertSpeaker(ctx, domain.Member{Last: label})
}

func (m *memRepo) UpsertAffiliation(_ context.Context, sid, pid int64, start, end *time.Time) (int64, bool, error) {
	for i, a := range m.affs {
		if a.SpeakerID == sid && a.PartyID == pid {
			if a.Start == nil {
				m.affs[i].Start = start
			}
			m.affs[i].End = end
			return a.ID, false, nil
		}
	}
	a := domain.AffiliationRow{ID: int64(len(m.affs) + 1), SpeakerID: sid, PartyID: pid, Start: start, End: end}
	for k, id := range m.speakers {
		if id == sid {
			a.First, a.Middle, a.Last = k[0], k[1], k[2]
		}
	}
	a.SpeakerName = m.names[sid]
	m.affs = append(m.affs, a)
	return a.ID, true, nil
}

func (m *memRepo) Affiliations(context.Context) ([]domain.AffiliationRow, error) {
	return append([]domain.AffiliationRow(nil), m.affs...), nil
}

func (m *memRepo) LastSpeechDate(context.Context) (*time.Time, error) {
	var last *time.Time
	for _, s := range m.speeches {
		if last == nil || s.Date.After(*last) {
			d := s.Date
			last = &d
		}
	}
	return last, nil
}

func (m *memRepo) InsertSpeech(_ context.Context, s domain.Speech) (int64, bool, error) {
	if err := m.fail("speech"); err != nil {
		return 0, false, err
	}
	for _, old := range m.speeches {
		if old.Date.Equal(s.Date) && old.AffiliationID == s.AffiliationID && old.Content == s.Content {
			return 0, false, nil
		}
	}
	id := int64(len(m.speeches) + 1)
	m.speeches = append(m.speeches, storedSpeech{ID: id, Speech: s})
	return id, true, nil
}

func (m *memRepo) AppendSpeech(_ context.Context, id int64, text string) error {
	m.speeches[id-1].Content += "\n" + text
	return nil
}

// partyID returns the id of a stored party by name
func (m *memRepo) partyID(name string) int64 {
	for _, p := range m.parties {
		if p.Name == name {
			return p.ID
		}
	}
	return 0
}

// affOf returns the stored affiliation id for a speaker name and party name
func (m *memRepo) affOf(speakerName, party string) int64 {
	pid := m.partyID(party)
	for _, a := range m.affs {
		if a.PartyID == pid && m.names[a.SpeakerID] == speakerName {
			return a.ID
		}
	}
	return 0
}

// fakeSource serves canned pages and records calls
type fakeSource struct {
	parties     []domain.Party
	members     map[int64][]domain.Member
	sittings    map[string][]domain.Sitting
	transcripts map[int64]string
	failMembers map[string]bool

	memberCalls   []string
	sittingCalls  []string
	transcriptIDs []int64
}

func (f *fakeSource) Parties(context.Context) ([]domain.Party, error) { return f.parties, nil }

func (f *fakeSource) Members(_ context.Context, apiID int64, month time.Time) ([]domain.Member, error) {
	k := month.Format("2006-01")
	f.memberCalls = append(f.memberCalls, k)
	if f.failMembers[k] {
		return nil, errors.New("upstream 503")
	}
	return f.members[apiID], nil
}

func (f *fakeSource) Sittings(_ context.Context, month time.Time) ([]domain.Sitting, error) {
	k := month.Format("2006-01")
	f.sittingCalls = append(f.sittingCalls, k)
	return f.sittings[k], nil
}

func (f *fakeSource) Transcript(_ context.Context, id int64) (string, error) {
	f.transcriptIDs = append(f.transcriptIDs, id)
	body, ok := f.transcripts[id]
	if !ok {
		return "", errors.New("no transcript")
	}
	return body, nil
}

// fakeTx runs fn inline and counts transactions
type fakeTx struct{ txCalls int }

func (f *fakeTx) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (f *fakeTx) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, nil }
func (f *fakeTx) QueryRow(context.Context, string, ...any) store.Row            { return nil }
func (f *fakeTx) Tx(_ context.Context, fn func(q store.RowQuerier) error) error {
	f.txCalls++
	return fn(f)
}

func newSvc(r *memRepo, src *fakeSource, cfg Config) (*Service, *fakeTx) {
	tx := &fakeTx{}
	s := New(tx, repokit.BindFunc[domain.StorageRepo](func(repokit.Queryer) domain.StorageRepo { return r }), src, cfg)
	s.now = func() time.Time { return time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC) }
	s.sleep = func(context.Context, time.Duration) error { return nil }
	return s, tx
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}
