package debug

import (
	"errors"
	"reflect"
	"regexp"
	"testing"
)

func TestNormalize(t *testing.T) {
	re := regexp.MustCompile(`^db:(pool|conn)$`)
	tests := []struct {
		name string
		spec any
		want []string
	}{
		{"nil", nil, []string{".*?"}},
		{"true", true, []string{".*?"}},
		{"false", false, []string{".*?"}},
		{"regexp unchanged", re, []string{`^db:(pool|conn)$`}},
		{"pattern unchanged", NewPattern(re), []string{`^db:(pool|conn)$`}},
		{"wildcard", "test:*", []string{"test:.*?"}},
		{"several wildcards", "*:http:*", []string{".*?:http:.*?"}},
		{"literal", "test:module1", []string{"test:module1"}},
		{"literal metachars", "a+b(c)", []string{`a\+b\(c\)`}},
		{"slash regex", "/^x$/", []string{"^x$"}},
		{"string slice", []string{"a", "b*"}, []string{"a", "b.*?"}},
		{"mixed slice", []any{"a", re, true}, []string{"a", `^db:(pool|conn)$`, ".*?"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps, err := Normalize(tt.spec)
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			got := make([]string, len(ps))
			for i, p := range ps {
				got[i] = p.String()
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Normalize(%v) = %q, want %q", tt.spec, got, tt.want)
			}
		})
	}
}

func TestNormalizeErrors(t *testing.T) {
	for _, spec := range []any{"/(/", "a(*", 42} {
		if _, err := Normalize(spec); !errors.Is(err, ErrBadPattern) {
			t.Errorf("Normalize(%v) error = %v, want ErrBadPattern", spec, err)
		}
	}
}

func TestPatternMatching(t *testing.T) {
	tests := []struct {
		spec string
		ns   string
		want bool
	}{
		{"test", "test:module1", true},
		{"test:*", "test:module1", true},
		{"test:*", "test", false},
		{"a.b", "axb", false},
		{"a.b", "a.b", true},
		{"/^api$/", "api:v2", false},
		{"/^api$/", "api", true},
	}
	for _, tt := range tests {
		ps, err := Normalize(tt.spec)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", tt.spec, err)
		}
		if got := ps[0].MatchString(tt.ns); got != tt.want {
			t.Errorf("%q matching %q = %v, want %v", tt.spec, tt.ns, got, tt.want)
		}
	}
}

func TestMatchAllMatchesEmpty(t *testing.T) {
	ps, _ := Normalize(nil)
	if !ps[0].MatchString("") {
		t.Fatal("match-all pattern should match the empty namespace")
	}
}

func TestParseSpec(t *testing.T) {
	got := ParseSpec("  test,test:*  -test:module1,, - ,x\ty")
	want := []Token{
		{Value: "test"},
		{Value: "test:*"},
		{Value: "test:module1", Negated: true},
		{Value: "x"},
		{Value: "y"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseSpec = %+v, want %+v", got, want)
	}

	if toks := ParseSpec(""); len(toks) != 0 {
		t.Fatalf("ParseSpec(\"\") = %+v, want none", toks)
	}
}

func TestPatternSet(t *testing.T) {
	var s patternSet
	a, _ := Normalize("a")
	b, _ := Normalize("b")
	a2, _ := Normalize(regexp.MustCompile("a"))

	if !s.add(a[0]) || !s.add(b[0]) {
		t.Fatal("add of new patterns should succeed")
	}
	if s.add(a2[0]) {
		t.Fatal("add of an equivalent pattern should be a no-op")
	}
	if s.index(b[0]) != 1 {
		t.Fatalf("index(b) = %d, want 1", s.index(b[0]))
	}
	if !s.remove(a2[0]) {
		t.Fatal("remove by equivalence should succeed")
	}
	if s.remove(a[0]) {
		t.Fatal("second remove should report false")
	}
	if got := s.strings(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("set = %q, want [b]", got)
	}
}
