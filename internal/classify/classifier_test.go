package classify

import (
	"testing"

	"github.com/platewise/platewise/internal/model"
	"github.com/platewise/platewise/internal/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already normal", input: "apple", want: "apple"},
		{name: "case and whitespace", input: "  RED   APPLE ", want: "red apple"},
		{name: "parenthetical stripped", input: "tuna (canned in oil)", want: "tuna"},
		{name: "punctuation stripped", input: "coffee/tea, sweetened!", want: "coffee tea sweetened"},
		{name: "digits kept", input: "2 bananas", want: "2 bananas"},
		{name: "empty after stripping", input: "(***)", want: ""},
		{name: "empty input", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestClassify(t *testing.T) {
	c := New(taxonomy.Default())

	tests := []struct {
		name  string
		label string
		want  model.Category
	}{
		{name: "keyword banana", label: "banana", want: model.CategoryFruit},
		{name: "keyword inside free text", label: "Granny Smith apple slices", want: model.CategoryFruit},
		{name: "normalization invariance upper", label: "Red Apple", want: model.CategoryFruit},
		{name: "normalization invariance padded", label: " RED   APPLE ", want: model.CategoryFruit},
		{name: "keyword carrot", label: "roasted carrots", want: model.CategoryVegetables},
		{name: "two keyword rule", label: "fresh orange juice", want: model.CategorySugaryDrinks},
		{name: "single keyword of pair is not enough", label: "orange segments", want: model.CategoryUnmapped},
		{name: "exact match raw with parentheses", label: "tuna (canned in oil)", want: model.CategoryOilyFish},
		{name: "exact match branded", label: "cornflakes", want: model.CategoryLowFibreCereals},
		{name: "diet cola stays out of sugary drinks", label: "Diet Cola", want: model.CategoryWater},
		{name: "plain cola", label: "cola", want: model.CategorySugaryDrinks},
		{name: "exact match via normalized form", label: "french-fries", want: model.CategoryFriedFoods},
		{name: "unknown label", label: "mystery casserole", want: model.CategoryUnmapped},
		{name: "empty label", label: "", want: model.CategoryUnmapped},
		{name: "empty after normalization", label: "(!!!)", want: model.CategoryUnmapped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.label)
			assert.Equal(t, tt.want, got)
			// Pure function: same input, same output.
			assert.Equal(t, got, c.Classify(tt.label))
		})
	}
}

func TestClassifyIsTotalOverDefaultRegistry(t *testing.T) {
	c := New(taxonomy.Default())
	r := taxonomy.Default()

	for _, label := range []string{"", " ", "🍌", "---", "eine Bratwurst", "12345", "(unreadable)"} {
		cat := c.Classify(label)
		assert.True(t, r.Contains(cat), "label %q resolved outside the taxonomy: %q", label, cat)
	}
}

// Heuristics run before the exact dictionary is consulted: a label that is
// both a dictionary key and a keyword hit resolves by keyword. The custom
// dictionary entry here deliberately conflicts to pin the precedence down.
func TestClassifyHeuristicBeatsDictionary(t *testing.T) {
	r, err := taxonomy.New(
		[]model.Category{model.CategoryFruit, model.CategorySweetsDesserts},
		map[string]model.Category{"banana split": model.CategorySweetsDesserts},
	)
	require.NoError(t, err)

	c := New(r)
	assert.Equal(t, model.CategoryFruit, c.Classify("banana split"))
}

// Earlier-declared keyword rules win ties: "banana" is declared before the
// orange+juice pair, so a label matching both resolves to fruit.
func TestClassifyKeywordRuleOrder(t *testing.T) {
	c := New(taxonomy.Default())
	assert.Equal(t, model.CategoryFruit, c.Classify("orange banana juice smoothie"))
}

func TestResolveHintPolicy(t *testing.T) {
	c := New(taxonomy.Default())

	tests := []struct {
		name string
		det  model.RawDetection
		want model.Category
	}{
		{
			name: "classifier resolution wins over hint",
			det:  model.RawDetection{RawLabel: "banana", TaxonomyHint: "sweets & desserts"},
			want: model.CategoryFruit,
		},
		{
			name: "hint fills unmapped gap",
			det:  model.RawDetection{RawLabel: "mystery stew", TaxonomyHint: "vegetables"},
			want: model.CategoryVegetables,
		},
		{
			name: "unregistered hint is rejected",
			det:  model.RawDetection{RawLabel: "mystery stew", TaxonomyHint: "comfort food"},
			want: model.CategoryUnmapped,
		},
		{
			name: "no hint no match",
			det:  model.RawDetection{RawLabel: "mystery stew"},
			want: model.CategoryUnmapped,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := c.Resolve(tt.det)
			assert.Equal(t, tt.want, item.Category)
			assert.Equal(t, tt.det, item.Detection)
		})
	}
}
