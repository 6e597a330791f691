package testutil

import "testing"

// Given, When, and Then run named subtests so behavior-style tests read as
// scenarios without pulling in a BDD framework. Steps depend on their
// predecessors, so a failed step ends the scenario instead of letting later
// steps run against half-built state.
func Given(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "Given", desc, fn)
}

func When(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "When", desc, fn)
}

func Then(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "Then", desc, fn)
}

func step(t *testing.T, word, desc string, fn func(t *testing.T)) {
	t.Helper()
	if !t.Run(word+" "+desc, fn) {
		t.Fatalf("%s %s: step failed, stopping the scenario", word, desc)
	}
}
