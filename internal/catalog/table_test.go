package catalog_test

import (
	"errors"
	"testing"

	"hotel_search/internal/catalog"
	"hotel_search/internal/domain"
)

func ids(ts []domain.Template) []int64 {
	out := make([]int64, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}

func sameIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestResolve_ExactKeys(t *testing.T) {
	tbl := catalog.Builtin()
	want := map[string][]int64{
		"berlin":   {1, 2, 3},
		"London":   {11, 12, 13},
		"ISTANBUL": {21, 22, 23},
		" paris ":  {31, 32, 33},
		"New York": {41, 42},
	}
	for dest, w := range want {
		if got := ids(tbl.Resolve(dest)); !sameIDs(got, w) {
			t.Fatalf("Resolve(%q) = %v, want %v", dest, got, w)
		}
	}
}

func TestResolve_Substring(t *testing.T) {
	tbl := catalog.Builtin()
	cases := map[string]string{
		"Berlin, Germany": "berlin",   // input contains key
		"lond":            "london",   // key contains input
		"york":            "new york", // only one key contains it
		"Paris 8e arr.":   "paris",
	}
	for dest, wantKey := range cases {
		_, key := tbl.ResolveKey(dest)
		if key != wantKey {
			t.Fatalf("ResolveKey(%q) key = %q, want %q", dest, key, wantKey)
		}
	}
}

func TestResolve_DefaultOnMiss(t *testing.T) {
	tbl := catalog.Builtin()
	for _, dest := range []string{"Nowhere123", "", "   ", "Tokyo"} {
		got, key := tbl.ResolveKey(dest)
		if key != catalog.DefaultKey {
			t.Fatalf("ResolveKey(%q) key = %q, want default", dest, key)
		}
		if len(got) == 0 {
			t.Fatalf("default set must not be empty")
		}
		if !sameIDs(ids(got), []int64{101, 102, 103}) {
			t.Fatalf("unexpected default set %v", ids(got))
		}
	}
}

func TestResolve_FirstMatchFollowsTableOrder(t *testing.T) {
	a := []domain.Template{{ID: 1}}
	b := []domain.Template{{ID: 2}}
	tbl, err := catalog.New([]catalog.Entry{{Key: "san", Templates: a}, {Key: "santa", Templates: b}}, []domain.Template{{ID: 9}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// "sant" is contained in "santa" and contains "san"; first declared wins.
	if got := ids(tbl.Resolve("sant")); !sameIDs(got, []int64{1}) {
		t.Fatalf("got %v, want [1]", got)
	}
}

func TestNew_RejectsEmptyDefaultAndDuplicates(t *testing.T) {
	if _, err := catalog.New(nil, nil); !errors.Is(err, catalog.ErrEmptyDefault) {
		t.Fatalf("want ErrEmptyDefault, got %v", err)
	}
	def := []domain.Template{{ID: 1}}
	if _, err := catalog.New([]catalog.Entry{{Key: "Rome"}, {Key: "rome"}}, def); err == nil {
		t.Fatalf("expected duplicate key error")
	}
}

func TestCities_RoundTrip(t *testing.T) {
	tbl := catalog.Builtin()
	back, err := catalog.FromCities(tbl.Cities())
	if err != nil {
		t.Fatalf("FromCities: %v", err)
	}
	if !sameStrings(back.Keys(), tbl.Keys()) {
		t.Fatalf("keys differ: %v vs %v", back.Keys(), tbl.Keys())
	}
	if !sameIDs(ids(back.Resolve("nowhere")), ids(tbl.Resolve("nowhere"))) {
		t.Fatalf("default set differs")
	}
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
