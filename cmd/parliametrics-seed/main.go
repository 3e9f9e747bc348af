// Command parliametrics-seed fills the speech archive from the parliament API
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parliametrics/internal/core/version"
	"parliametrics/internal/modkit"
	"parliametrics/internal/modkit/module"
	"parliametrics/internal/platform/config"
	"parliametrics/internal/platform/logger"
	"parliametrics/internal/platform/store"

	speechesmod "parliametrics/internal/services/api/speeches/module"
	"parliametrics/internal/services/seed/domain"
	seedmod "parliametrics/internal/services/seed/module"

	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

type plan struct {
	parties  bool
	members  bool
	speeches bool
	from     time.Time
	to       time.Time
	current  bool
	migrate  bool
	baseURL  string
	logFile  string
	version  bool
}

func parseFlags(args []string, stderr io.Writer) (*plan, error) {
	p := &plan{}
	var from, to string
	fs := pflag.NewFlagSet("parliametrics-seed", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&p.parties, "parties", false, "upsert parliamentary groups")
	fs.BoolVar(&p.members, "members", false, "upsert members and affiliations per month")
	fs.BoolVar(&p.speeches, "speeches", false, "read transcripts of sittings newer than the archive")
	fs.StringVar(&from, "from", "", "first members month YYYY-MM (default $CORE_SEED_MEMBERS_FROM)")
	fs.StringVar(&to, "to", "", "last members month YYYY-MM (default current month)")
	fs.BoolVar(&p.current, "current-month", false, "members pass over the current month only")
	fs.BoolVar(&p.migrate, "migrate", false, "apply the archive schema before seeding")
	fs.StringVar(&p.baseURL, "base-url", "", "parliament API base URL (default $CORE_SEED_BASE_URL)")
	fs.StringVar(&p.logFile, "log-file", "", "write logs to this rotated file instead of stderr")
	fs.BoolVar(&p.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", errUsage, fs.Arg(0))
	}
	if p.current && (from != "" || to != "") {
		return nil, fmt.Errorf("%w: --current-month excludes --from and --to", errUsage)
	}
	var err error
	if p.from, err = parseMonth("--from", from); err != nil {
		return nil, err
	}
	if p.to, err = parseMonth("--to", to); err != nil {
		return nil, err
	}
	if !p.from.IsZero() && !p.to.IsZero() && p.to.Before(p.from) {
		return nil, fmt.Errorf("%w: --to before --from", errUsage)
	}
	if p.current {
		p.members = true
	}
	if !p.parties && !p.members && !p.speeches {
		p.parties, p.members, p.speeches = true, true, true
	}
	return p, nil
}

func parseMonth(name, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM", errUsage, name)
	}
	return t, nil
}

// window resolves the members range against the configured start and now
func (p *plan) window(def, now time.Time) (time.Time, time.Time) {
	if p.current {
		m := domain.MonthOf(now)
		return m, m
	}
	from, to := p.from, p.to
	if from.IsZero() {
		from = def
	}
	if to.IsZero() {
		to = domain.MonthOf(now)
	}
	return from, to
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	p, err := parseFlags(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return err
	}
	if p == nil {
		return nil
	}
	if p.version {
		fmt.Fprintln(stdout, "parliametrics-seed", version.String())
		return nil
	}

	lo := logger.FromEnv()
	lo.Component = "seed"
	lo.Writer = stderr
	if p.logFile != "" {
		lo.Writer = nil
		lo.File = p.logFile
	}
	logger.Init(lo)
	l := logger.Named("seed")

	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	st, err := store.Open(ctx, store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Error().Err(err).Msg("store.Open failed")
		return err
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	deps := modkit.Deps{Cfg: root, PG: st.PG, Log: *l}
	if p.migrate {
		if err := speechesmod.Migrate(ctx, deps); err != nil {
			l.Error().Err(err).Msg("archive schema migration failed")
			return err
		}
		l.Info().Msg("archive schema up to date")
	}

	m := seedmod.New(deps, seedmod.Options{BaseURL: p.baseURL})
	runner := module.MustPortsOf[seedmod.Ports](m).Runner

	from, to := p.window(m.Options().MembersFrom, time.Now().UTC())
	return seed(ctx, runner, p, from, to, *l)
}

// seed runs the selected passes in order and stops at the first failure
func seed(ctx context.Context, r domain.RunnerPort, p *plan, from, to time.Time, l logger.Logger) error {
	var total domain.Report
	pass := func(name string, fn func() (domain.Report, error)) error {
		start := time.Now()
		rep, err := fn()
		total.Add(rep)
		level := l.Info
		if err != nil {
			level = l.Error
		}
		level().Err(err).
			Str("pass", name).
			Int("parties", rep.Parties).
			Int("speakers", rep.Speakers).
			Int("affiliations", rep.Affiliations).
			Int("sittings", rep.Sittings).
			Int("speeches", rep.Speeches).
			Int("appended", rep.Appended).
			Int("skipped", rep.Skipped).
			Int("failed", rep.Failed).
			Dur("took", time.Since(start)).
			Msg("seed pass done")
		return err
	}

	if p.parties {
		if err := pass("parties", func() (domain.Report, error) { return r.SeedParties(ctx) }); err != nil {
			return err
		}
	}
	if p.members {
		l.Info().Str("from", from.Format("2006-01")).Str("to", to.Format("2006-01")).Msg("members window")
		if err := pass("members", func() (domain.Report, error) { return r.SeedMembers(ctx, from, to) }); err != nil {
			return err
		}
	}
	if p.speeches {
		if err := pass("speeches", func() (domain.Report, error) { return r.SeedSpeeches(ctx) }); err != nil {
			return err
		}
	}
	l.Info().Int("speeches", total.Speeches).Int("failed", total.Failed).Msg("seed finished")
	return nil
}
