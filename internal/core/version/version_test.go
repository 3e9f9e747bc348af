package version

import (
	"testing"

	"parliametrics/internal/platform/testkit"
)

func TestInfo_LdflagsWinAndCommitIsShort(t *testing.T) {
	testkit.Swap(t, &version, "v0.3.0")
	testkit.Swap(t, &commit, "1a2b3c4d5e6f7a8b9c0d")
	testkit.Swap(t, &date, "2025-01-31")

	i := Info()
	if i.Service != "parliametrics-api" || i.Version != "v0.3.0" || i.Commit != "1a2b3c4d5e6f" || i.Date != "2025-01-31" {
		t.Fatalf("info = %+v", i)
	}
	got := String()
	if got != "v0.3.0 (1a2b3c4d5e6f, 2025-01-31)" && got != "v0.3.0 (1a2b3c4d5e6f, 2025-01-31) dirty" {
		t.Fatalf("String = %q", got)
	}
}

func TestString_DevBuild(t *testing.T) {
	testkit.Swap(t, &version, "dev")
	if got := String(); len(got) < 3 || got[:3] != "dev" {
		t.Fatalf("String = %q", got)
	}
}
