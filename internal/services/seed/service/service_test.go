package service

import (
	"context"
	"strings"
	"testing"

	perr "parliametrics/internal/platform/errors"
	"parliametrics/internal/platform/testkit"
	"parliametrics/internal/services/seed/domain"
)

func fixtureSource() *fakeSource {
	return &fakeSource{
		parties: []domain.Party{
			{APIID: 3412, Name: "ГЕРБ – СДС", Abbr: "ГЕРБ-СДС"},
			{APIID: 3413, Name: "Продължаваме Промяната – Демократична България", Abbr: "ПП-ДБ"},
		},
		members: map[int64][]domain.Member{
			3412: {{First: "Иван", Middle: "Петров", Last: "Георгиев", From: day("2024-10-30")}},
			3413: {{First: "Мария", Last: "Иванова", From: day("2024-10-30")}},
		},
		sittings:    map[string][]domain.Sitting{},
		transcripts: map[int64]string{},
	}
}

func TestNew_PanicsOnNilDeps(t *testing.T) {
	t.Parallel()
	src := fixtureSource()
	s, _ := newSvc(newMemRepo(), src, Config{})
	testkit.MustPanic(t, func() { New(nil, s.Binder, src, Config{}) })
	testkit.MustPanic(t, func() { New(&fakeTx{}, nil, src, Config{}) })
	testkit.MustPanic(t, func() { New(&fakeTx{}, s.Binder, nil, Config{}) })
	if s.Cfg.RecentSpeakers != 4 {
		t.Fatalf("RecentSpeakers default = %d", s.Cfg.RecentSpeakers)
	}
}

func TestSeedParties_InsertsThenRefreshes(t *testing.T) {
	t.Parallel()
	r, src := newMemRepo(), fixtureSource()
	s, tx := newSvc(r, src, Config{})

	rep, err := s.SeedParties(context.Background())
	if err != nil || rep.Parties != 2 || tx.txCalls != 1 {
		t.Fatalf("first pass = %+v, %v (tx=%d)", rep, err, tx.txCalls)
	}

	src.parties[0].APIID = 9999
	rep, err = s.SeedParties(context.Background())
	if err != nil || rep.Parties != 0 {
		t.Fatalf("second pass = %+v, %v", rep, err)
	}
	if len(r.parties) != 2 || *r.parties[0].APIID != 9999 {
		t.Fatalf("api id not refreshed: %+v", r.parties[0])
	}
}

func TestSeedParties_RepoError(t *testing.T) {
	t.Parallel()
	r, src := newMemRepo(), fixtureSource()
	r.failOn = "party"
	s, _ := newSvc(r, src, Config{})
	if _, err := s.SeedParties(context.Background()); err == nil {
		t.Fatalf("expected repo error")
	}
}

func TestSeedMembers_RolesAndMonthlyMembers(t *testing.T) {
	t.Parallel()
	r, src := newMemRepo(), fixtureSource()
	src.failMembers = map[string]bool{"2024-12": true}
	s, _ := newSvc(r, src, Config{})
	if _, err := s.SeedParties(context.Background()); err != nil {
		t.Fatalf("parties: %v", err)
	}

	rep, err := s.SeedMembers(context.Background(), day("2024-11-15"), day("2025-01-02"))
	if err != nil {
		t.Fatalf("SeedMembers: %v", err)
	}
	// three role parties plus the external party
	if rep.Parties != 4 || rep.Speakers != 5 || rep.Affiliations != 5 || rep.Failed != 2 {
		t.Fatalf("report = %+v", rep)
	}
	if got := strings.Join(src.memberCalls, ","); got != "2024-11,2024-12,2025-01,2024-11,2024-12,2025-01" {
		t.Fatalf("member calls = %s", got)
	}
	if r.affOf("Иван Георгиев", "ГЕРБ – СДС") == 0 || r.affOf("ПРЕДСЕДАТЕЛ", "ПРЕДСЕДАТЕЛ") == 0 {
		t.Fatalf("affiliations missing: %+v", r.affs)
	}

	again, err := s.SeedMembers(context.Background(), day("2025-01-01"), day("2025-01-01"))
	if err != nil || again.Speakers != 0 || again.Affiliations != 0 || again.Parties != 0 {
		t.Fatalf("rerun should change nothing: %+v, %v", again, err)
	}
}

func TestSeedMembers_RejectsInvertedRange(t *testing.T) {
	t.Parallel()
	s, _ := newSvc(newMemRepo(), fixtureSource(), Config{})
	_, err := s.SeedMembers(context.Background(), day("2025-02-01"), day("2025-01-01"))
	if perr.CodeOf(err) != perr.ErrorCodeInvalidArgument {
		t.Fatalf("want invalid argument, got %v", err)
	}
}

const firstSitting = `ПРЕДСЕДАТЕЛ НАТАЛИЯ ПЕТРОВА: Откривам заседанието.
ИВАН ГЕОРГИЕВ (ГЕРБ-СДС): Първа реч.
ГЛАСУВАЛИ: 120 народни представители.
МАРИЯ ИВАНОВА (ПП-ДБ, от място): Реплика към колегата.
ИВАН ГЕОРГИЕВ: Продължавам.
ПЕТЪР СТОЯНОВ: Гост.`

func seeded(t *testing.T) (*memRepo, *fakeSource, *Service) {
	t.Helper()
	r, src := newMemRepo(), fixtureSource()
	s, _ := newSvc(r, src, Config{SpeechesSince: day("2024-12-31")})
	if _, err := s.SeedParties(context.Background()); err != nil {
		t.Fatalf("parties: %v", err)
	}
	if _, err := s.SeedMembers(context.Background(), day("2024-11-01"), day("2024-11-01")); err != nil {
		t.Fatalf("members: %v", err)
	}
	src.sittings["2025-01"] = []domain.Sitting{{ID: 1, Date: day("2025-01-15")}}
	src.sittings["2025-03"] = []domain.Sitting{{ID: 2, Date: day("2025-03-05")}}
	src.transcripts[1] = firstSitting
	src.transcripts[2] = "ПЕТЪР СТОЯНОВ: Отново."
	return r, src, s
}

func TestSeedSpeeches_ResolvesAffiliations(t *testing.T) {
	t.Parallel()
	r, src, s := seeded(t)

	rep, err := s.SeedSpeeches(context.Background())
	if err != nil {
		t.Fatalf("SeedSpeeches: %v", err)
	}
	if rep.Sittings != 2 || rep.Speeches != 6 || rep.Appended != 1 || rep.Skipped != 1 {
		t.Fatalf("report = %+v", rep)
	}
	if got := strings.Join(src.sittingCalls, ","); got != "2024-12,2025-01,2025-02,2025-03" {
		t.Fatalf("sitting months = %s", got)
	}

	sp := r.speeches
	want := []struct {
		aff      int64
		tribune  bool
		cont     bool
		contains string
	}{
		{r.affOf("ПРЕДСЕДАТЕЛ", "ПРЕДСЕДАТЕЛ"), true, false, "Откривам"},
		{r.affOf("Иван Георгиев", "ГЕРБ – СДС"), true, false, "120 народни"},
		{r.affOf("Мария Иванова", "Продължаваме Промяната – Демократична България"), false, false, "Реплика"},
		{r.affOf("Иван Георгиев", "ГЕРБ – СДС"), true, true, "Продължавам"},
		{r.affOf("Петър Стоянов", domain.ExternalParty), true, false, "Гост"},
		{r.affOf("Петър Стоянов", domain.ExternalParty), true, false, "Отново"},
	}
	for i, w := range want {
		got := sp[i]
		if w.aff == 0 || got.AffiliationID != w.aff || got.FromTribune != w.tribune || got.IsContinuation != w.cont {
			t.Errorf("speech %d = %+v, want aff=%d tribune=%v cont=%v", i, got.Speech, w.aff, w.tribune, w.cont)
		}
		testkit.MustContain(t, got.Content, w.contains)
	}
	if !sp[5].Date.Equal(day("2025-03-05")) {
		t.Fatalf("date = %v", sp[5].Date)
	}
}

func TestSeedSpeeches_ResumesAfterLatestSpeech(t *testing.T) {
	t.Parallel()
	_, src, s := seeded(t)
	if _, err := s.SeedSpeeches(context.Background()); err != nil {
		t.Fatalf("first: %v", err)
	}
	src.sittingCalls, src.transcriptIDs = nil, nil

	rep, err := s.SeedSpeeches(context.Background())
	if err != nil || rep.Speeches != 0 || rep.Sittings != 0 {
		t.Fatalf("second = %+v, %v", rep, err)
	}
	if strings.Join(src.sittingCalls, ",") != "2025-03" || len(src.transcriptIDs) != 0 {
		t.Fatalf("calls = %v transcripts = %v", src.sittingCalls, src.transcriptIDs)
	}
}

func TestSeedSpeeches_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()
	r, src, s := seeded(t)
	delete(src.transcripts, 1)

	rep, err := s.SeedSpeeches(context.Background())
	if err == nil {
		t.Fatalf("expected transcript error")
	}
	if rep.Sittings != 0 || len(r.speeches) != 0 {
		t.Fatalf("nothing should be stored: %+v", rep)
	}
	if len(src.transcriptIDs) != 1 {
		t.Fatalf("should stop after the failed sitting, fetched %v", src.transcriptIDs)
	}
}

func TestSeedSpeeches_InsertErrorNamesSitting(t *testing.T) {
	t.Parallel()
	r, _, s := seeded(t)
	r.failOn = "speech"
	_, err := s.SeedSpeeches(context.Background())
	if err == nil || !strings.Contains(err.Error(), "sitting 1 of 2025-01-15") {
		t.Fatalf("err = %v", err)
	}
}
