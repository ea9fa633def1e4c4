package taxonomy

import (
	"testing"

	"github.com/platewise/platewise/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	cats := r.Categories()
	assert.GreaterOrEqual(t, len(cats), 20)
	assert.Contains(t, cats, model.CategoryUnmapped)
	assert.True(t, r.Contains(model.CategoryOilyFish))
	assert.False(t, r.Contains(model.Category("junk food")))
}

func TestLookupExact(t *testing.T) {
	r := Default()

	tests := []struct {
		name  string
		label string
		want  model.Category
		found bool
	}{
		{name: "plain entry", label: "cornflakes", want: model.CategoryLowFibreCereals, found: true},
		{name: "punctuated entry kept verbatim", label: "tuna (canned in oil)", want: model.CategoryOilyFish, found: true},
		{name: "case insensitive", label: "Diet Cola", want: model.CategoryWater, found: true},
		{name: "surrounding whitespace trimmed", label: "  smoked bacon ", want: model.CategoryProcessedMeats, found: true},
		{name: "unknown", label: "moon cheese", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.LookupExact(tt.label)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNewValidatesDictionary(t *testing.T) {
	_, err := New(
		[]model.Category{model.CategoryFruit},
		map[string]model.Category{"tofu": model.Category("soy products")},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestNewRejectsDuplicateCategories(t *testing.T) {
	_, err := New([]model.Category{model.CategoryFruit, model.CategoryFruit}, nil)
	require.Error(t, err)
}

func TestNewAlwaysIncludesUnmapped(t *testing.T) {
	r, err := New([]model.Category{model.CategoryFruit}, nil)
	require.NoError(t, err)
	assert.True(t, r.Contains(model.CategoryUnmapped))
}
