// Package classify resolves raw vision-model labels to taxonomy categories.
//
// Resolution precedence, first match wins:
//
//  1. ordered substring heuristics against the normalized label
//  2. exact dictionary lookup on the raw lowercased-trimmed label
//  3. exact dictionary lookup on the normalized label
//  4. model.CategoryUnmapped
//
// The heuristics run before the dictionary: they catch common high-volume
// foods cheaply ("Granny Smith apple slices" is still fruit), while the
// dictionary handles specific packaged items whose labels arrive verbatim.
package classify

import (
	"regexp"
	"strings"

	"github.com/platewise/platewise/internal/model"
	"github.com/platewise/platewise/internal/taxonomy"
)

var (
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
	nonAlnumRe      = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

// keywordRule maps normalized-label substrings to a category. Every keyword
// must be present for the rule to fire. Rule order is a tie-break contract:
// when a label could match two rules, the earlier-declared rule wins.
type keywordRule struct {
	category model.Category
	keywords []string
}

var keywordRules = []keywordRule{
	{category: model.CategoryFruit, keywords: []string{"banana"}},
	{category: model.CategoryFruit, keywords: []string{"watermelon"}},
	{category: model.CategoryFruit, keywords: []string{"apple"}},
	{category: model.CategoryVegetables, keywords: []string{"carrot"}},
	{category: model.CategorySugaryDrinks, keywords: []string{"orange", "juice"}},
}

// Classifier resolves labels against an injected taxonomy registry. It is
// stateless apart from the registry and safe for concurrent use.
type Classifier struct {
	registry *taxonomy.Registry
}

// New creates a classifier backed by the given registry.
func New(registry *taxonomy.Registry) *Classifier {
	return &Classifier{registry: registry}
}

// Normalize reduces a raw label to its canonical matching form: trim,
// lowercase, drop parenthetical content, drop everything outside
// [a-z0-9\s], collapse whitespace runs, trim again.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = parentheticalRe.ReplaceAllString(s, " ")
	s = nonAlnumRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Classify resolves a raw label to exactly one taxonomy category. It never
// fails: unknown labels resolve to model.CategoryUnmapped.
func (c *Classifier) Classify(rawLabel string) model.Category {
	norm := Normalize(rawLabel)

	for _, rule := range keywordRules {
		if matchesAll(norm, rule.keywords) {
			return rule.category
		}
	}

	if cat, ok := c.registry.LookupExact(rawLabel); ok {
		return cat
	}
	if cat, ok := c.registry.LookupExact(norm); ok {
		return cat
	}

	return model.CategoryUnmapped
}

// Resolve classifies a detection, applying the hint policy: the
// classifier's own resolution wins whenever it is not unmapped; otherwise a
// vision-supplied taxonomy hint fills the gap, but only if it names a
// registered category.
func (c *Classifier) Resolve(d model.RawDetection) model.ClassifiedItem {
	cat := c.Classify(d.RawLabel)
	if cat == model.CategoryUnmapped && d.TaxonomyHint != "" {
		if hint := model.Category(d.TaxonomyHint); c.registry.Contains(hint) {
			cat = hint
		}
	}
	return model.ClassifiedItem{Detection: d, Category: cat}
}

func matchesAll(norm string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(norm, kw) {
			return false
		}
	}
	return true
}
