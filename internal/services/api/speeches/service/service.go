// Package service contains speeches workflows
package service

import (
	"context"
	"time"

	"parliametrics/internal/modkit/repokit"
	perr "parliametrics/internal/platform/errors"
	"parliametrics/internal/services/api/speeches/domain"
	"parliametrics/internal/services/api/speeches/repo"
)

const dateLayout = "2006-01-02"

// filtersTimeout bounds each catalog statement, the dates scan is the slow one
const filtersTimeout = 5 * time.Second

// Service defines the service contract for speeches
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a new speeches service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("speeches.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("speeches.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// List returns one page of speeches, newest first
func (s *Svc) List(ctx context.Context, in domain.ListInput) ([]domain.Speech, error) {
	f := repo.ListFilter{
		SpeakerIDs:  in.SpeakerIDs,
		PartyIDs:    in.PartyIDs,
		FromTribune: in.FromTribune,
		Offset:      in.Skip,
		Limit:       in.Limit,
	}
	var err error
	if f.DateFrom, err = parseDate("date_from", in.DateFrom); err != nil {
		return nil, err
	}
	if f.DateTo, err = parseDate("date_to", in.DateTo); err != nil {
		return nil, err
	}
	if f.Limit <= 0 {
		f.Limit = domain.DefaultListInput().Limit
	}

	rows, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, perr.FromPostgres(err, "list speeches")
	}
	out := make([]domain.Speech, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Speech{
			ID:                r.ID,
			Content:           r.Content,
			Date:              r.Date,
			FromTribune:       r.FromTribune,
			SpeakerName:       r.SpeakerName,
			PartyAbbreviation: r.PartyAbbreviation,
			PartyName:         r.PartyName,
		})
	}
	return out, nil
}

// Filters returns every speaker, party and distinct speech date
// all three reads share one read only transaction so the catalog is consistent
func (s *Svc) Filters(ctx context.Context) (domain.Filters, error) {
	out := domain.Filters{
		Speakers:           []domain.SpeakerOption{},
		Parties:            []domain.PartyOption{},
		FromTribuneOptions: []bool{true, false},
		Dates:              []string{},
	}
	tx := repokit.WithBeginHooks(s.db, repokit.ReadOnly, repokit.StatementTimeout(filtersTimeout))
	err := tx.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)

		speakers, err := r.Speakers(ctx)
		if err != nil {
			return err
		}
		for _, sp := range speakers {
			out.Speakers = append(out.Speakers, domain.SpeakerOption{ID: sp.ID, Name: sp.Name, MiddleName: sp.MiddleName})
		}

		parties, err := r.Parties(ctx)
		if err != nil {
			return err
		}
		for _, p := range parties {
			out.Parties = append(out.Parties, domain.PartyOption{ID: p.ID, Name: p.Name, Abbr: p.Abbr})
		}

		dates, err := r.Dates(ctx)
		if err != nil {
			return err
		}
		out.Dates = append(out.Dates, dates...)
		return nil
	})
	if err != nil {
		return domain.Filters{}, perr.FromPostgres(err, "load speech filters")
	}
	return out, nil
}

func parseDate(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, perr.WithField(perr.InvalidArgf("%s must be YYYY-MM-DD", field), field)
	}
	return &t, nil
}
