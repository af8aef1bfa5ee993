package threads

import "testing"

func checkMatch(t *testing.T, pattern string, name Name) {
	t.Helper()
	if !CompilePattern(pattern).Match(name) {
		t.Errorf("pattern %q should match %v", pattern, name)
	}
}

func checkNotMatch(t *testing.T, pattern string, name Name) {
	t.Helper()
	if CompilePattern(pattern).Match(name) {
		t.Errorf("pattern %q should not match %v", pattern, name)
	}
}

func TestPattern(t *testing.T) {
	checkMatch(t, "*", Worker(0))
	checkMatch(t, "*", RoleName(Nemesis))
	checkMatch(t, "7", Worker(7))
	checkNotMatch(t, "7", Worker(17))
	checkMatch(t, "1*", Worker(1))
	checkMatch(t, "1*", Worker(12))
	checkNotMatch(t, "1*", Worker(21))
	checkMatch(t, "*2", Worker(42))
	checkMatch(t, "nemesis", RoleName(Nemesis))
	checkNotMatch(t, "nemesis", Worker(3))
	checkMatch(t, "nem*sis", RoleName(Nemesis))
	checkMatch(t, "*e*e*", RoleName(Nemesis))
	checkNotMatch(t, "", Worker(0))
	checkNotMatch(t, "", RoleName(Nemesis))
}
