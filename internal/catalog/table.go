// Package catalog holds the read-only city→template table and resolves free
// text destinations against it.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"hotel_search/internal/domain"
)

var ErrEmptyDefault = errors.New("catalog: default template set is empty")

type Entry struct {
	Key       string
	Templates []domain.Template
}

// Table is immutable after New and safe for concurrent use.
type Table struct {
	entries []Entry
	byKey   map[string]int
	def     []domain.Template
}

// New builds a table. Keys are normalized; iteration order for substring
// matching is the order of entries. The default set must not be empty.
func New(entries []Entry, def []domain.Template) (*Table, error) {
	if len(def) == 0 {
		return nil, ErrEmptyDefault
	}
	t := &Table{
		entries: make([]Entry, 0, len(entries)),
		byKey:   make(map[string]int, len(entries)),
		def:     def,
	}
	for _, e := range entries {
		k := Normalize(e.Key)
		if k == "" {
			return nil, fmt.Errorf("catalog: empty key")
		}
		if _, dup := t.byKey[k]; dup {
			return nil, fmt.Errorf("catalog: duplicate key %q", k)
		}
		t.byKey[k] = len(t.entries)
		t.entries = append(t.entries, Entry{Key: k, Templates: e.Templates})
	}
	return t, nil
}

// FromCities builds a table from persisted rows (see storage/mysql).
func FromCities(cities []domain.CatalogCity) (*Table, error) {
	var (
		entries []Entry
		def     []domain.Template
	)
	for _, c := range cities {
		if c.Default {
			def = append(def, c.Templates...)
			continue
		}
		entries = append(entries, Entry{Key: c.Key, Templates: c.Templates})
	}
	return New(entries, def)
}

// Cities is the inverse of FromCities; the default set is emitted last.
func (t *Table) Cities() []domain.CatalogCity {
	out := make([]domain.CatalogCity, 0, len(t.entries)+1)
	for i, e := range t.entries {
		out = append(out, domain.CatalogCity{Key: e.Key, Position: i, Templates: e.Templates})
	}
	out = append(out, domain.CatalogCity{Key: DefaultKey, Position: len(t.entries), Default: true, Templates: t.def})
	return out
}

const DefaultKey = "default"

// Normalize trims and case-folds a destination or key.
// A Caser is stateful, so each call gets its own.
func Normalize(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Resolve maps free text to a template set: exact key, then the first key
// that contains or is contained in the input, then the default set.
// The returned slice is shared; callers must not mutate it.
func (t *Table) Resolve(destination string) []domain.Template {
	set, _ := t.ResolveKey(destination)
	return set
}

// ResolveKey is Resolve that also reports the matched key (DefaultKey on miss).
func (t *Table) ResolveKey(destination string) ([]domain.Template, string) {
	k := Normalize(destination)
	if k == "" {
		return t.def, DefaultKey
	}
	if i, ok := t.byKey[k]; ok {
		return t.entries[i].Templates, t.entries[i].Key
	}
	for _, e := range t.entries {
		if strings.Contains(k, e.Key) || strings.Contains(e.Key, k) {
			return e.Templates, e.Key
		}
	}
	return t.def, DefaultKey
}

// Keys lists the city keys in match order.
func (t *Table) Keys() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Key
	}
	return out
}
