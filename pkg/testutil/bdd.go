package testutil

import "testing"

// Given, When and Then nest subtests so a scenario reads as one sentence in
// `go test -v` output.
func Given(t *testing.T, state string, fn func(t *testing.T)) bool {
	t.Helper()
	return t.Run("given "+state, fn)
}

func When(t *testing.T, action string, fn func(t *testing.T)) bool {
	t.Helper()
	return t.Run("when "+action, fn)
}

func Then(t *testing.T, outcome string, fn func(t *testing.T)) bool {
	t.Helper()
	return t.Run("then "+outcome, fn)
}
