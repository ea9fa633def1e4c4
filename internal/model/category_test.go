package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountsMissingKeyIsZero(t *testing.T) {
	c := Counts{CategoryFruit: 2}
	assert.Equal(t, 2, c.Get(CategoryFruit))
	assert.Equal(t, 0, c.Get(CategoryOilyFish))
}

func TestCountsMerge(t *testing.T) {
	a := Counts{CategoryFruit: 2, CategoryVegetables: 1}
	b := Counts{CategoryFruit: 1, CategorySugaryDrinks: 3}

	a.Merge(b)

	assert.Equal(t, Counts{
		CategoryFruit:        3,
		CategoryVegetables:   1,
		CategorySugaryDrinks: 3,
	}, a)
	assert.Equal(t, 7, a.Total())
}

func TestCountsCloneIsIndependent(t *testing.T) {
	orig := Counts{CategoryFruit: 1}
	clone := orig.Clone()
	clone.Add(CategoryFruit, 5)

	assert.Equal(t, 1, orig.Get(CategoryFruit))
	assert.Equal(t, 6, clone.Get(CategoryFruit))
}
