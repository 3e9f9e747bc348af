// Command parliametrics-browse queries the speech archive from a terminal
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"parliametrics/internal/core/version"
	"parliametrics/internal/modkit"
	"parliametrics/internal/modkit/module"
	"parliametrics/internal/platform/config"
	perr "parliametrics/internal/platform/errors"
	"parliametrics/internal/platform/i18n"
	"parliametrics/internal/platform/logger"

	"parliametrics/internal/services/browse/domain"
	browsemod "parliametrics/internal/services/browse/module"
	"parliametrics/internal/services/browse/render"

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

type flags struct {
	api      string
	lang     string
	speakers []int64
	parties  []int64
	spNames  []string
	ptNames  []string
	tribune  string
	from     string
	to       string
	page     int
	pageSize int
	full     bool
	filters  bool
	color    bool
	logFile  string
	version  bool
}

func parseFlags(args []string, stderr io.Writer) (*flags, *pflag.FlagSet, error) {
	f := &flags{}
	fs := pflag.NewFlagSet("parliametrics-browse", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.api, "api", "", "archive API base URL (default $BROWSE_API_URL)")
	fs.StringVar(&f.lang, "lang", "", "label language: bg or en (default $BROWSE_LANG)")
	fs.Int64SliceVar(&f.speakers, "speaker", nil, "speaker id, repeatable")
	fs.Int64SliceVar(&f.parties, "party", nil, "party id, repeatable")
	fs.StringArrayVar(&f.spNames, "speaker-name", nil, "speaker name search, repeatable")
	fs.StringArrayVar(&f.ptNames, "party-name", nil, "party name or abbreviation search, repeatable")
	fs.StringVar(&f.tribune, "tribune", "", "location: yes, no or all")
	fs.StringVar(&f.from, "from", "", "earliest date YYYY-MM-DD (default first archive date)")
	fs.StringVar(&f.to, "to", "", "latest date YYYY-MM-DD (default last archive date)")
	fs.IntVarP(&f.page, "page", "p", 1, "page number, starting at 1")
	fs.IntVar(&f.pageSize, "page-size", 0, "speeches per page (default $BROWSE_PAGE_SIZE)")
	fs.BoolVar(&f.full, "full", false, "print full speech content instead of a preview")
	fs.BoolVar(&f.filters, "filters", false, "print the filter catalog and exit")
	fs.BoolVar(&f.color, "color", false, "colorize output")
	fs.StringVar(&f.logFile, "log-file", "", "write logs to this rotated file instead of stderr")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, fs, nil
		}
		return nil, fs, fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fs, fmt.Errorf("%w: unexpected argument %q", errUsage, fs.Arg(0))
	}
	if f.page < 1 {
		return nil, fs, fmt.Errorf("%w: --page must be at least 1", errUsage)
	}
	for _, n := range f.spNames {
		if strings.TrimSpace(n) == "" {
			return nil, fs, fmt.Errorf("%w: --speaker-name must not be blank", errUsage)
		}
	}
	for _, n := range f.ptNames {
		if strings.TrimSpace(n) == "" {
			return nil, fs, fmt.Errorf("%w: --party-name must not be blank", errUsage)
		}
	}
	return f, fs, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	f, _, err := parseFlags(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return err
	}
	if f == nil {
		return nil
	}
	if f.version {
		fmt.Fprintln(stdout, "parliametrics-browse", version.String())
		return nil
	}

	lo := logger.FromEnv()
	lo.Component = "browse"
	lo.Writer = stderr
	if f.logFile != "" {
		lo.Writer = nil
		lo.File = f.logFile
	}
	logger.Init(lo)
	log := logger.Named("browse")

	over := browsemod.Options{APIURL: f.api, PageSize: f.pageSize}
	if f.lang != "" {
		lang, ok := i18n.ParseLang(f.lang)
		if !ok {
			err := fmt.Errorf("%w: unsupported --lang %q", errUsage, f.lang)
			fmt.Fprintln(stderr, err)
			return err
		}
		over.Lang = lang
	}
	loc, ok := domain.ParseTribune(f.tribune)
	if !ok {
		err := fmt.Errorf("%w: --tribune must be yes, no or all", errUsage)
		fmt.Fprintln(stderr, err)
		return err
	}

	m := browsemod.New(modkit.Deps{Cfg: config.New(), Log: *log}, over)
	ports := module.MustPortsOf[browsemod.Ports](m)
	opts := m.Options()

	r := render.New(stdout, render.Options{Lang: opts.Lang, Full: f.full, Color: f.color, ErrOut: stderr})

	cat, catErr := ports.Catalog.Load(ctx)
	if catErr != nil {
		log.Warn().Err(catErr).Str("api", opts.APIURL).Msg("filter catalog unavailable")
		r.Error(i18n.LoadFailed, catErr)
		if f.filters || len(f.spNames) > 0 || len(f.ptNames) > 0 {
			return catErr
		}
	}
	if f.filters {
		r.Catalog(cat)
		return nil
	}

	speakerIDs := append([]int64(nil), f.speakers...)
	for _, term := range f.spNames {
		found := ports.Catalog.SearchSpeakers(term)
		if len(found) == 0 {
			return notFound(stderr, "speaker", term)
		}
		for _, s := range found {
			speakerIDs = append(speakerIDs, s.ID)
		}
	}
	partyIDs := append([]int64(nil), f.parties...)
	for _, term := range f.ptNames {
		found := ports.Catalog.SearchParties(term)
		if len(found) == 0 {
			return notFound(stderr, "party", term)
		}
		for _, p := range found {
			partyIDs = append(partyIDs, p.ID)
		}
	}

	q := ports.Query
	q.SetSpeakerIDs(speakerIDs...)
	q.SetPartyIDs(partyIDs...)
	q.SetLocation(loc)
	if f.from != "" {
		q.SetDateFrom(f.from)
	}
	if f.to != "" {
		q.SetDateTo(f.to)
	}
	q.SetPage(f.page)

	log.Debug().Str("query", q.BuildQuery(opts.PageSize).Encode()).Msg("fetching speeches")
	if err := q.Fetch(ctx, opts.PageSize); err != nil {
		log.Error().Err(err).Stringer("code", perr.CodeOf(err)).Msg("speech fetch failed")
		r.Error(i18n.FetchFailed, err)
		return err
	}
	r.Speeches(q.Selection(), q.Speeches())
	return nil
}

func notFound(stderr io.Writer, kind, term string) error {
	err := fmt.Errorf("no %s matches %q", kind, term)
	fmt.Fprintln(stderr, err)
	return err
}
