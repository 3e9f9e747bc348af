// Package service provides the seeding passes that fill the archive
package service

import (
	"context"
	"time"

	"parliametrics/internal/modkit/repokit"
	perr "parliametrics/internal/platform/errors"
	"parliametrics/internal/platform/logger"
	"parliametrics/internal/services/seed/domain"
	"parliametrics/internal/services/seed/transcript"
)

// Config holds configuration options for the seed service
type Config struct {
	// Delay is an optional pause after every source call
	Delay time.Duration

	// SpeechesSince bounds the first speech pass on an empty archive;
	// only sittings after this day are read
	SpeechesSince time.Time

	// RecentSpeakers is how many recent labels keep their affiliation for
	// unannotated continuations; <=0 -> 4
	RecentSpeakers int
}

// Service implements domain.RunnerPort
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[domain.StorageRepo]
	Src    domain.SourcePort
	Cfg    Config

	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

var _ domain.RunnerPort = (*Service)(nil)

// New constructs the seed service
func New(db repokit.TxRunner, binder repokit.Binder[domain.StorageRepo], src domain.SourcePort, cfg Config) *Service {
	if db == nil {
		panic("seed.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("seed.Service requires a non nil Repo binder")
	}
	if src == nil {
		panic("seed.Service requires a non nil source")
	}
	if cfg.RecentSpeakers <= 0 {
		cfg.RecentSpeakers = 4
	}
	return &Service{DB: db, Binder: binder, Src: src, Cfg: cfg, now: time.Now, sleep: sleepCtx}
}

// SeedParties upserts every group the source lists
func (s *Service) SeedParties(ctx context.Context) (domain.Report, error) {
	var rep domain.Report
	parties, err := s.Src.Parties(ctx)
	if err != nil {
		return rep, err
	}
	err = s.DB.Tx(ctx, func(q repokit.Queryer) error {
		repo := s.Binder.Bind(q)
		for _, p := range parties {
			_, created, err := repo.UpsertParty(ctx, p)
			if err != nil {
				return err
			}
			if created {
				rep.Parties++
			}
		}
		return nil
	})
	if err != nil {
		return domain.Report{}, err
	}
	logger.C(ctx).Info().Int("listed", len(parties)).Int("added", rep.Parties).Msg("seed: parties done")
	return rep, nil
}

// SeedMembers ensures the role speakers, then walks every group with an api
// id month by month; a failed month is logged and skipped
func (s *Service) SeedMembers(ctx context.Context, from, to time.Time) (domain.Report, error) {
	var rep domain.Report
	if domain.MonthOf(to).Before(domain.MonthOf(from)) {
		return rep, perr.InvalidArgf("members range ends before it starts")
	}

	var parties []domain.PartyRow
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		repo := s.Binder.Bind(q)
		r, err := ensureRoles(ctx, repo)
		if err != nil {
			return err
		}
		rep.Add(r)
		parties, err = repo.Parties(ctx)
		return err
	})
	if err != nil {
		return domain.Report{}, err
	}

	months := domain.Months(from, to)
	for _, p := range parties {
		if p.APIID == nil || *p.APIID == 0 {
			continue
		}
		for _, m := range months {
			members, err := s.Src.Members(ctx, *p.APIID, m)
			if err != nil {
				if ctx.Err() != nil {
					return rep, err
				}
				rep.Failed++
				logger.C(ctx).Warn().Err(err).Str("party", p.Name).Str("month", m.Format("2006-01")).Msg("seed: members fetch failed")
				continue
			}
			r, err := s.storeMembers(ctx, p.ID, members)
			if err != nil {
				return rep, err
			}
			rep.Add(r)
			if err := s.pause(ctx); err != nil {
				return rep, err
			}
		}
	}
	logger.C(ctx).Info().
		Int("speakers", rep.Speakers).
		Int("affiliations", rep.Affiliations).
		Int("failed_months", rep.Failed).
		Msg("seed: members done")
	return rep, nil
}

func (s *Service) storeMembers(ctx context.Context, partyID int64, members []domain.Member) (domain.Report, error) {
	var rep domain.Report
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		repo := s.Binder.Bind(q)
		for _, m := range members {
			spID, created, err := repo.UpsertSpeaker(ctx, m)
			if err != nil {
				return err
			}
			if created {
				rep.Speakers++
			}
			from := m.From
			_, created, err = repo.UpsertAffiliation(ctx, spID, partyID, &from, m.To)
			if err != nil {
				return err
			}
			if created {
				rep.Affiliations++
			}
		}
		return nil
	})
	if err != nil {
		return domain.Report{}, err
	}
	return rep, nil
}

// SeedSpeeches reads every sitting after the latest stored speech in date
// order; each sitting is stored in its own transaction and the pass stops at
// the first failure so a rerun resumes from there
func (s *Service) SeedSpeeches(ctx context.Context) (domain.Report, error) {
	var (
		rep     domain.Report
		parties []domain.PartyRow
		affs    []domain.AffiliationRow
		last    *time.Time
	)
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		repo := s.Binder.Bind(q)
		r, err := ensureRoles(ctx, repo)
		if err != nil {
			return err
		}
		rep.Add(r)
		if parties, err = repo.Parties(ctx); err != nil {
			return err
		}
		if affs, err = repo.Affiliations(ctx); err != nil {
			return err
		}
		last, err = repo.LastSpeechDate(ctx)
		return err
	})
	if err != nil {
		return domain.Report{}, err
	}

	since := s.Cfg.SpeechesSince
	if last != nil {
		since = *last
	}
	res := newResolver(parties, affs, s.Cfg.RecentSpeakers)

	for _, m := range domain.Months(since, s.now()) {
		sittings, err := s.Src.Sittings(ctx, m)
		if err != nil {
			return rep, err
		}
		for _, st := range sittings {
			if !st.Date.After(since) {
				continue
			}
			body, err := s.Src.Transcript(ctx, st.ID)
			if err != nil {
				return rep, err
			}
			r, err := s.storeSitting(ctx, res, st, body)
			if err != nil {
				return rep, perr.Wrapf(err, perr.CodeOf(err), "sitting %d of %s", st.ID, st.Date.Format("2006-01-02"))
			}
			rep.Add(r)
			rep.Sittings++
			logger.C(ctx).Debug().Int64("sitting", st.ID).Int("speeches", r.Speeches).Msg("seed: sitting stored")
			if err := s.pause(ctx); err != nil {
				return rep, err
			}
		}
	}
	logger.C(ctx).Info().
		Int("sittings", rep.Sittings).
		Int("speeches", rep.Speeches).
		Int("appended", rep.Appended).
		Int("skipped", rep.Skipped).
		Msg("seed: speeches done")
	return rep, nil
}

func (s *Service) storeSitting(ctx context.Context, res *resolver, st domain.Sitting, body string) (domain.Report, error) {
	var rep domain.Report
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		repo := s.Binder.Bind(q)
		res.resetSitting()
		var lastID int64
		for _, seg := range transcript.Split(body) {
			if !transcript.IsSpeaker(seg.Speaker) {
				rep.Skipped++
				if lastID != 0 && seg.Content != "" {
					if err := repo.AppendSpeech(ctx, lastID, seg.Content); err != nil {
						return err
					}
					rep.Appended++
				}
				continue
			}
			affID, cont, err := res.affiliation(ctx, repo, seg, st.Date)
			if err != nil {
				return err
			}
			id, inserted, err := repo.InsertSpeech(ctx, domain.Speech{
				AffiliationID:  affID,
				Content:        seg.Content,
				FromTribune:    transcript.FromTribune(seg.Annotation),
				IsContinuation: cont,
				Date:           st.Date,
			})
			if err != nil {
				return err
			}
			// a duplicate speech takes no appended text
			lastID = id
			if inserted {
				rep.Speeches++
			}
		}
		return nil
	})
	if err != nil {
		return domain.Report{}, err
	}
	return rep, nil
}

// ensureRoles upserts a party, speaker and open affiliation per chamber role
// plus the party for unmatched speakers
func ensureRoles(ctx context.Context, repo domain.StorageRepo) (domain.Report, error) {
	var rep domain.Report
	for _, role := range domain.Roles {
		pid, created, err := repo.UpsertParty(ctx, domain.Party{Name: role.Label, Abbr: role.Label})
		if err != nil {
			return rep, err
		}
		if created {
			rep.Parties++
		}
		sid, created, err := repo.EnsureLabelSpeaker(ctx, role.Label)
		if err != nil {
			return rep, err
		}
		if created {
			rep.Speakers++
		}
		if _, created, err = repo.UpsertAffiliation(ctx, sid, pid, nil, nil); err != nil {
			return rep, err
		}
		if created {
			rep.Affiliations++
		}
	}
	_, created, err := repo.UpsertParty(ctx, domain.Party{Name: domain.ExternalParty})
	if err != nil {
		return rep, err
	}
	if created {
		rep.Parties++
	}
	return rep, nil
}

func (s *Service) pause(ctx context.Context) error {
	if s.Cfg.Delay <= 0 {
		return nil
	}
	return s.sleep(ctx, s.Cfg.Delay)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
