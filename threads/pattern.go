package threads

import "strings"

// Pattern matches thread names against a '*' wildcard pattern, so filters
// can be written as "nemesis", "1*" and the like. An empty pattern matches
// nothing, since no thread renders as the empty string.
type Pattern struct {
	parts []string
	empty bool
}

func CompilePattern(pattern string) Pattern {
	return Pattern{strings.Split(pattern, "*"), len(pattern) == 0}
}

func (p Pattern) Match(name Name) bool {
	return p.matchString(name.String())
}

func (p Pattern) matchString(subject string) bool {
	if p.empty {
		return len(subject) == 0
	}
	parts := p.parts
	if len(parts) == 1 {
		return subject == parts[0]
	}
	if n := len(parts[0]); n != 0 {
		if !strings.HasPrefix(subject, parts[0]) {
			return false
		}
		subject = subject[n:]
	}
	k := len(parts) - 1
	for i := 1; i < k; i++ {
		n := len(parts[i])
		if n == 0 {
			continue
		}
		idx := strings.Index(subject, parts[i])
		if idx < 0 {
			return false
		}
		subject = subject[idx+n:]
	}
	if len(parts[k]) == 0 {
		return true
	}
	return strings.HasSuffix(subject, parts[k])
}
