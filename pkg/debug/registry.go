package debug

// patternSet is an ordered collection of patterns deduplicated by string form.
type patternSet []Pattern

func (s patternSet) index(p Pattern) int {
	key := p.String()
	for i := range s {
		if s[i].String() == key {
			return i
		}
	}
	return -1
}

func (s *patternSet) add(p Pattern) bool {
	if s.index(p) != -1 {
		return false
	}
	*s = append(*s, p)
	return true
}

func (s *patternSet) remove(p Pattern) bool {
	i := s.index(p)
	if i == -1 {
		return false
	}
	*s = append((*s)[:i], (*s)[i+1:]...)
	return true
}

func (s patternSet) match(namespace string) bool {
	for _, p := range s {
		if p.MatchString(namespace) {
			return true
		}
	}
	return false
}

func (s patternSet) strings() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.String()
	}
	return out
}

// directive is a normalized pattern bound for either the include or the
// exclude set.
type directive struct {
	pattern Pattern
	exclude bool
}

// apply moves p into the target set and out of the opposite one.
func apply(includes, excludes *patternSet, d directive) {
	if d.exclude {
		includes.remove(d.pattern)
		excludes.add(d.pattern)
		return
	}
	includes.add(d.pattern)
	excludes.remove(d.pattern)
}
