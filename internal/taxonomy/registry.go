// Package taxonomy provides the fixed nutrition category registry and the
// curated exact-match label dictionary. The registry is immutable after
// construction and is injected into the classifier rather than reached for
// as global state, which keeps tests free to build custom taxonomies.
package taxonomy

import (
	"fmt"
	"strings"

	"github.com/platewise/platewise/internal/model"
)

// Registry is the closed set of taxonomy categories plus the curated
// label→category dictionary. Read-only at runtime.
type Registry struct {
	members map[model.Category]struct{}
	exact   map[string]model.Category
	ordered []model.Category
}

// New builds a registry from an explicit category list and exact-match
// table. Dictionary keys are stored lowercased and trimmed. Every dictionary
// value must name a registered category; model.CategoryUnmapped is always
// registered so classification can never resolve outside the set.
func New(categories []model.Category, exact map[string]model.Category) (*Registry, error) {
	r := &Registry{
		members: make(map[model.Category]struct{}, len(categories)+1),
		exact:   make(map[string]model.Category, len(exact)),
	}

	for _, cat := range categories {
		if cat == "" {
			return nil, fmt.Errorf("empty category name")
		}
		if _, dup := r.members[cat]; dup {
			return nil, fmt.Errorf("duplicate category %q", cat)
		}
		r.members[cat] = struct{}{}
		r.ordered = append(r.ordered, cat)
	}
	if _, ok := r.members[model.CategoryUnmapped]; !ok {
		r.members[model.CategoryUnmapped] = struct{}{}
		r.ordered = append(r.ordered, model.CategoryUnmapped)
	}

	for label, cat := range exact {
		key := strings.ToLower(strings.TrimSpace(label))
		if key == "" {
			return nil, fmt.Errorf("empty dictionary label")
		}
		if _, ok := r.members[cat]; !ok {
			return nil, fmt.Errorf("dictionary label %q maps to unknown category %q", label, cat)
		}
		r.exact[key] = cat
	}

	return r, nil
}

// Default returns the registry backed by the curated production taxonomy
// and dictionary.
func Default() *Registry {
	r, err := New(defaultCategories, defaultExactMatches)
	if err != nil {
		// The curated tables are validated by tests; reaching this is a bug.
		panic(fmt.Sprintf("taxonomy: invalid curated tables: %v", err))
	}
	return r
}

// Categories returns every category in declaration order. The returned
// slice is a copy.
func (r *Registry) Categories() []model.Category {
	out := make([]model.Category, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Contains reports whether the category is part of the taxonomy.
func (r *Registry) Contains(cat model.Category) bool {
	_, ok := r.members[cat]
	return ok
}

// LookupExact resolves a label against the curated dictionary. The label is
// lowercased and trimmed before lookup; no other normalization is applied,
// so punctuated forms like "tuna (canned in oil)" hit their exact entries.
func (r *Registry) LookupExact(label string) (model.Category, bool) {
	cat, ok := r.exact[strings.ToLower(strings.TrimSpace(label))]
	return cat, ok
}
