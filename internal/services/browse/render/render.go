// Package render prints catalog and speech pages for terminal output
package render

import (
	"fmt"
	"io"
	"strings"

	"parliametrics/internal/core/normalize"
	"parliametrics/internal/platform/i18n"
	"parliametrics/internal/services/browse/domain"

	"github.com/charmbracelet/lipgloss"
)

// PreviewRunes is how much speech content a preview shows
const PreviewRunes = 280

// Options configure a Renderer
// ErrOut receives failure lines; nil means out
type Options struct {
	Lang   i18n.Lang
	Full   bool
	Width  int
	Color  bool
	ErrOut io.Writer
}

// Renderer writes translated, styled pages to out and failures to errOut
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	opts   Options

	title  lipgloss.Style
	label  lipgloss.Style
	meta   lipgloss.Style
	body   lipgloss.Style
	muted  lipgloss.Style
	errBox lipgloss.Style
}

// New builds a Renderer; Width defaults to 100 columns
func New(out io.Writer, o Options) *Renderer {
	if o.Width <= 0 {
		o.Width = 100
	}
	if o.Lang == "" {
		o.Lang = i18n.Default
	}
	r := &Renderer{out: out, errOut: o.ErrOut, opts: o}
	if r.errOut == nil {
		r.errOut = out
	}

	st := func() lipgloss.Style { return lipgloss.NewStyle() }
	r.title = st().Bold(true)
	r.label = st().Bold(true)
	r.meta = st()
	r.body = st().Width(o.Width).PaddingLeft(2)
	r.muted = st()
	r.errBox = st().Bold(true)
	if o.Color {
		r.title = r.title.Foreground(lipgloss.Color("63"))
		r.label = r.label.Foreground(lipgloss.Color("39"))
		r.meta = r.meta.Foreground(lipgloss.Color("245"))
		r.muted = r.muted.Foreground(lipgloss.Color("241")).Italic(true)
		r.errBox = r.errBox.Foreground(lipgloss.Color("196"))
	}
	return r
}

func (r *Renderer) t(k i18n.Key) string { return i18n.T(k, r.opts.Lang) }

// Speeches prints one page of results under a summary of the selection
func (r *Renderer) Speeches(sel domain.Selection, speeches []domain.Speech) {
	fmt.Fprintln(r.out, r.title.Render(r.t(i18n.Speeches)))
	fmt.Fprintln(r.out, r.meta.Render(r.summary(sel)))
	fmt.Fprintln(r.out)

	if len(speeches) == 0 {
		fmt.Fprintln(r.out, r.muted.Render(r.t(i18n.NoSpeeches)))
		return
	}
	for i, s := range speeches {
		if i > 0 {
			fmt.Fprintln(r.out)
		}
		r.speech(s)
	}
}

func (r *Renderer) speech(s domain.Speech) {
	who := s.SpeakerName
	if s.PartyAbbreviation != "" {
		who += " (" + s.PartyAbbreviation + ")"
	} else if s.PartyName != "" {
		who += " (" + s.PartyName + ")"
	}
	place := r.t(i18n.TribuneNo)
	if s.FromTribune {
		place = r.t(i18n.TribuneYes)
	}
	head := fmt.Sprintf("%s  %s  %s", r.label.Render(s.Date), who, r.meta.Render("· "+place))
	fmt.Fprintln(r.out, head)

	content := normalize.Sanitize(s.Content)
	if !r.opts.Full {
		content = Preview(content, PreviewRunes)
	}
	fmt.Fprintln(r.out, r.body.Render(content))
}

// summary is "Page 2 · 2023-01-01 .. 2023-12-31 · From the rostrum"
func (r *Renderer) summary(sel domain.Selection) string {
	parts := []string{fmt.Sprintf("%s %d", r.t(i18n.Page), sel.Page)}
	if sel.DateFrom != "" || sel.DateTo != "" {
		parts = append(parts, fmt.Sprintf("%s .. %s", orDash(sel.DateFrom), orDash(sel.DateTo)))
	}
	switch sel.Location {
	case domain.TribuneYes:
		parts = append(parts, r.t(i18n.TribuneYes))
	case domain.TribuneNo:
		parts = append(parts, r.t(i18n.TribuneNo))
	}
	if n := len(sel.SpeakerIDs); n > 0 {
		parts = append(parts, fmt.Sprintf("%s: %d", r.t(i18n.Speaker), n))
	}
	if n := len(sel.PartyIDs); n > 0 {
		parts = append(parts, fmt.Sprintf("%s: %d", r.t(i18n.Party), n))
	}
	return strings.Join(parts, " · ")
}

// Catalog prints every filter value the archive offers
func (r *Renderer) Catalog(c domain.FilterCatalog) {
	fmt.Fprintln(r.out, r.title.Render(r.t(i18n.Speaker)))
	for _, s := range c.Speakers {
		fmt.Fprintf(r.out, "  %6d  %s\n", s.ID, s.DisplayName())
	}
	fmt.Fprintln(r.out)

	fmt.Fprintln(r.out, r.title.Render(r.t(i18n.Party)))
	for _, p := range c.Parties {
		if p.Abbr != "" {
			fmt.Fprintf(r.out, "  %6d  %s (%s)\n", p.ID, p.Name, p.Abbr)
			continue
		}
		fmt.Fprintf(r.out, "  %6d  %s\n", p.ID, p.Name)
	}
	fmt.Fprintln(r.out)

	fmt.Fprintln(r.out, r.title.Render(r.t(i18n.Dates)))
	first, okFirst := c.FirstDate()
	last, _ := c.LastDate()
	if !okFirst {
		fmt.Fprintln(r.out, r.muted.Render("  -"))
		return
	}
	fmt.Fprintf(r.out, "  %s .. %s (%d)\n", first, last, len(c.Dates))
}

// Error prints a translated failure line followed by the cause
func (r *Renderer) Error(k i18n.Key, err error) {
	fmt.Fprintln(r.errOut, r.errBox.Render(r.t(k)))
	if err != nil {
		fmt.Fprintln(r.errOut, r.meta.Render("  "+err.Error()))
	}
}

// Preview cuts s to at most n runes on a word boundary and marks the cut
func Preview(s string, n int) string {
	s = strings.TrimSpace(s)
	rs := []rune(s)
	if n <= 0 || len(rs) <= n {
		return s
	}
	cut := string(rs[:n])
	if i := strings.LastIndexAny(cut, " \n\t"); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:-\n\t") + "…"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
