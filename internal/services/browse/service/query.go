package service

import (
	"context"
	"strconv"
	"sync"

	"parliametrics/internal/platform/logger"
	"parliametrics/internal/services/browse/domain"
)

// DefaultPageSize is used when Fetch is called with a non positive page size
const DefaultPageSize = 20

// Query owns the filter selection, the page number and the last result set
// mutex guarded, never held across network I/O
type Query struct {
	archive domain.ArchivePort
	log     logger.Logger

	mu       sync.Mutex
	sel      domain.Selection
	speeches []domain.Speech
	fetched  bool

	// request sequence: issued counts started fetches, applied is the
	// sequence of the response currently held in speeches
	issued  uint64
	applied uint64
}

var _ domain.DateSeeder = (*Query)(nil)

// NewQuery creates a query manager on page 1 with no constraints
func NewQuery(archive domain.ArchivePort) *Query {
	if archive == nil {
		panic("browse.Query requires a non nil ArchivePort")
	}
	return &Query{
		archive:  archive,
		log:      *logger.Named("browse.query"),
		sel:      domain.Selection{Page: 1},
		speeches: []domain.Speech{},
	}
}

// SetSpeakerIDs replaces the selected speakers, order is kept
func (q *Query) SetSpeakerIDs(ids ...int64) {
	q.mu.Lock()
	q.sel.SpeakerIDs = append([]int64(nil), ids...)
	q.mu.Unlock()
}

// SetPartyIDs replaces the selected parties, order is kept
func (q *Query) SetPartyIDs(ids ...int64) {
	q.mu.Lock()
	q.sel.PartyIDs = append([]int64(nil), ids...)
	q.mu.Unlock()
}

// SetLocation sets the tribune constraint
func (q *Query) SetLocation(t domain.Tribune) {
	q.mu.Lock()
	q.sel.Location = t
	q.mu.Unlock()
}

// SetDateFrom sets the lower date bound, empty clears it
func (q *Query) SetDateFrom(d string) {
	q.mu.Lock()
	q.sel.DateFrom = d
	q.mu.Unlock()
}

// SetDateTo sets the upper date bound, empty clears it
func (q *Query) SetDateTo(d string) {
	q.mu.Lock()
	q.sel.DateTo = d
	q.mu.Unlock()
}

// SetPage sets the 1-based page number
func (q *Query) SetPage(p int) {
	q.mu.Lock()
	q.sel.Page = p
	q.mu.Unlock()
}

// SeedDates fills the date bounds the user has not set yet
func (q *Query) SeedDates(first, last string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.sel.DateFrom == "" && first != "" {
		q.sel.DateFrom = first
	}
	if q.sel.DateTo == "" && last != "" {
		q.sel.DateTo = last
	}
}

// Selection returns a copy of the current selection
func (q *Query) Selection() domain.Selection {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.sel.Clone()
}

// Speeches returns a copy of the current result set
func (q *Query) Speeches() []domain.Speech {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]domain.Speech(nil), q.speeches...)
}

// Fetched reports whether at least one fetch has succeeded
func (q *Query) Fetched() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.fetched
}

// BuildQuery derives the remote query from the current selection
func (q *Query) BuildQuery(pageSize int) domain.Params {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return BuildParams(q.sel, pageSize)
}

// Fetch requests the current page and replaces the result set on success
// On failure the result set and the fetched flag are left as they were
// A response that arrives after a newer one was applied is dropped with
// domain.ErrSuperseded
func (q *Query) Fetch(ctx context.Context, pageSize int) error {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	q.mu.Lock()
	params := BuildParams(q.sel, pageSize)
	q.issued++
	seq := q.issued
	q.mu.Unlock()

	res, err := q.archive.Speeches(ctx, params)
	if err != nil {
		q.log.Warn().Err(err).Uint64("seq", seq).Str("query", params.Encode()).Msg("speeches fetch failed")
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if seq < q.applied {
		q.log.Debug().Uint64("seq", seq).Uint64("applied", q.applied).Msg("stale speeches response dropped")
		return domain.ErrSuperseded
	}
	q.applied = seq
	q.speeches = append(make([]domain.Speech, 0, len(res)), res...)
	q.fetched = true
	return nil
}

// BuildParams is the pure query construction used by Query
// skip and limit always come first, then speakers, parties, location and
// dates; unset filters are omitted rather than sent empty
func BuildParams(sel domain.Selection, pageSize int) domain.Params {
	skip := (sel.Page - 1) * pageSize
	p := make(domain.Params, 0, 4+len(sel.SpeakerIDs)+len(sel.PartyIDs))
	p = p.Add("skip", strconv.Itoa(skip))
	p = p.Add("limit", strconv.Itoa(pageSize))
	for _, id := range sel.SpeakerIDs {
		p = p.Add("speaker_ids", strconv.FormatInt(id, 10))
	}
	for _, id := range sel.PartyIDs {
		p = p.Add("party_ids", strconv.FormatInt(id, 10))
	}
	if v, ok := sel.Location.Bool(); ok {
		p = p.Add("from_tribune", strconv.FormatBool(v))
	}
	if sel.DateFrom != "" {
		p = p.Add("date_from", sel.DateFrom)
	}
	if sel.DateTo != "" {
		p = p.Add("date_to", sel.DateTo)
	}
	return p
}
