// Package testkit holds small assertion and seam helpers shared by tests
package testkit

import (
	"strings"
	"sync"
	"testing"
)

// outputCap bounds how much of a haystack a failure message prints
const outputCap = 2048

var seamMu sync.Mutex

// Swap replaces *target for the duration of the test
func Swap[T any](t testing.TB, target *T, replacement T) {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}

// Serial holds a process wide lock until the test ends
// tests that Swap package level seams call it first
func Serial(t testing.TB) {
	t.Helper()
	seamMu.Lock()
	t.Cleanup(seamMu.Unlock)
}

// MustPanic fails unless fn panics and returns the recovered value
func MustPanic(t testing.TB, fn func()) (recovered any) {
	t.Helper()
	defer func() {
		recovered = recover()
		if recovered == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
	return nil
}

// MustContain fails unless haystack contains needle
func MustContain(t testing.TB, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\n--- output ---\n%s", needle, clip(haystack))
	}
}

// MustNotContain fails if haystack contains needle
func MustNotContain(t testing.TB, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		t.Fatalf("expected output to not contain %q\n--- output ---\n%s", needle, clip(haystack))
	}
}

func clip(s string) string {
	if len(s) <= outputCap {
		return s
	}
	return s[:outputCap] + "\n... (truncated)"
}
